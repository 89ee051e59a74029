package spatialir

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// DefaultGeometryColumn is used when a Property carries no name.
const DefaultGeometryColumn = "geom"

// ErrNotGeometry is returned when a literal does not evaluate to a geometry.
var ErrNotGeometry = errors.New("literal is not a geometry")

// Property references the geometry column of the target table.
type Property struct {
	Name string
}

// Column returns the column name, falling back to DefaultGeometryColumn.
func (p Property) Column() string {
	if p.Name == "" {
		return DefaultGeometryColumn
	}
	return p.Name
}

// Literal holds the unevaluated geometry operand.
//
// Value may be a geom.T, a WKT string, or GeoJSON bytes.
type Literal struct {
	Value any
}

// GeometryLiteral wraps an already-built geometry.
func GeometryLiteral(g geom.T) Literal {
	return Literal{Value: g}
}

// WKTLiteral wraps well-known text to be parsed at evaluation time.
func WKTLiteral(text string) Literal {
	return Literal{Value: text}
}

// Evaluate converts the literal into a geometry.
// Every failure wraps ErrNotGeometry.
func (l Literal) Evaluate() (geom.T, error) {
	switch v := l.Value.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrNotGeometry)
	case geom.T:
		return v, nil
	case string:
		g, err := wkt.Unmarshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: parse WKT: %v", ErrNotGeometry, err)
		}
		return g, nil
	case []byte:
		var g geom.T
		if err := geojson.Unmarshal(v, &g); err != nil {
			return nil, fmt.Errorf("%w: parse GeoJSON: %v", ErrNotGeometry, err)
		}
		if g == nil {
			return nil, fmt.Errorf("%w: empty GeoJSON geometry", ErrNotGeometry)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", ErrNotGeometry, l.Value)
	}
}

// Envelope is an axis-aligned bounding rectangle.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

// EnvelopeOf returns the 2D bounds of g.
// Empty geometries yield an envelope for which IsEmpty reports true.
func EnvelopeOf(g geom.T) Envelope {
	b := g.Bounds()
	if b == nil || b.IsEmpty() {
		return Envelope{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	}
	return Envelope{
		MinX: b.Min(0),
		MinY: b.Min(1),
		MaxX: b.Max(0),
		MaxY: b.Max(1),
	}
}

// IsEmpty reports whether the envelope covers no point.
func (e Envelope) IsEmpty() bool {
	return !(e.MinX <= e.MaxX && e.MinY <= e.MaxY)
}
