package spatialsql

import (
	"math"

	"github.com/roach88/tdgeo/internal/dialect"
	"github.com/roach88/tdgeo/internal/spatialir"
)

// DistanceForm is the SQL shape a distance-buffer predicate takes.
type DistanceForm int

const (
	// DistanceWithin renders ST_DWithin(<literal>, d).
	DistanceWithin DistanceForm = iota + 1
	// DistanceBeyond renders ST_Distance(<literal>) > d.
	DistanceBeyond
)

// DistanceFormFor normalizes a distance kind and operand order.
//
//	DWithin, not swapped -> within     Beyond, swapped     -> within
//	DWithin, swapped     -> beyond     Beyond, not swapped -> beyond
//
// Any other kind is a caller bug and is rejected.
func DistanceFormFor(kind spatialir.Kind, swapped bool) (DistanceForm, error) {
	switch {
	case kind == spatialir.KindDWithin && !swapped, kind == spatialir.KindBeyond && swapped:
		return DistanceWithin, nil
	case kind == spatialir.KindDWithin && swapped, kind == spatialir.KindBeyond && !swapped:
		return DistanceBeyond, nil
	default:
		return 0, unsupported(kind, "distance-buffer")
	}
}

// visitDistance writes the distance-buffer clause, prefixed by the index
// restriction when one applies. The distance is emitted as given, in the
// geometry's native unit.
func (t *Translator) visitDistance(sw *sqlWriter, qc *dialect.QueryContext, d spatialir.DistanceBuffer) error {
	form, err := DistanceFormFor(d.Kind, d.Swapped)
	if err != nil {
		return err
	}
	if math.IsNaN(d.Distance) || math.IsInf(d.Distance, 0) || d.Distance < 0 {
		return invalid(d.Kind, "distance must be finite and non-negative, got %v", d.Distance)
	}
	lit, err := prepareLiteral(d.Kind, d.Literal)
	if err != nil {
		return err
	}

	t.writeIndexPrefix(sw, qc, d.Property, lit.envelope)

	sw.WriteString(dialect.Column(t.encoder, d.Property.Column()))
	sw.WriteString(".")
	switch form {
	case DistanceWithin:
		sw.WriteString("ST_DWithin(")
		sw.WriteString(geomFromText)
		sw.WriteString(lit.text)
		sw.WriteString("), ")
		sw.WriteString(formatDecimal(d.Distance))
		sw.WriteString(")")
	case DistanceBeyond:
		sw.WriteString("ST_Distance(")
		sw.WriteString(geomFromText)
		sw.WriteString(lit.text)
		sw.WriteString(")) > ")
		sw.WriteString(formatDecimal(d.Distance))
	}
	return sw.Err()
}
