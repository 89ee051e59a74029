package spatialsql

import (
	"github.com/roach88/tdgeo/internal/dialect"
	"github.com/roach88/tdgeo/internal/spatialir"
)

// geomFromText is the constructor wrapped around every literal.
const geomFromText = "SYSSPATIAL.ST_GEOMFROMTEXT("

// ComparisonFunction returns the Teradata ST_ method for a comparison kind.
//
// Within and Contains are converses of each other, so a swapped operand
// order selects the other one. Every other relation is symmetric.
func ComparisonFunction(kind spatialir.Kind, swapped bool) (string, error) {
	switch kind {
	case spatialir.KindEquals:
		return "ST_Equals", nil
	case spatialir.KindDisjoint:
		return "ST_Disjoint", nil
	case spatialir.KindIntersects, spatialir.KindBBox:
		return "ST_Intersects", nil
	case spatialir.KindCrosses:
		return "ST_Crosses", nil
	case spatialir.KindWithin:
		if swapped {
			return "ST_Contains", nil
		}
		return "ST_Within", nil
	case spatialir.KindContains:
		if swapped {
			return "ST_Within", nil
		}
		return "ST_Contains", nil
	case spatialir.KindOverlaps:
		return "ST_Overlaps", nil
	case spatialir.KindTouches:
		return "ST_Touches", nil
	default:
		return "", unsupported(kind, "comparison")
	}
}

// preparedLiteral is a literal that has been evaluated and encoded.
type preparedLiteral struct {
	text     string
	envelope spatialir.Envelope
}

func prepareLiteral(kind spatialir.Kind, lit spatialir.Literal) (preparedLiteral, error) {
	g, err := lit.Evaluate()
	if err != nil {
		return preparedLiteral{}, geometryError(kind, err)
	}
	text, err := literalText(g)
	if err != nil {
		return preparedLiteral{}, geometryError(kind, err)
	}
	return preparedLiteral{text: text, envelope: spatialir.EnvelopeOf(g)}, nil
}

// visitComparison writes
//
//	[index prefix] <column>.<fn>(SYSSPATIAL.ST_GEOMFROMTEXT('<wkt>')) = 1
//
// The function and literal are resolved before the first write.
func (t *Translator) visitComparison(sw *sqlWriter, qc *dialect.QueryContext, c spatialir.Comparison) error {
	fn, err := ComparisonFunction(c.Kind, c.Swapped)
	if err != nil {
		return err
	}
	lit, err := prepareLiteral(c.Kind, c.Literal)
	if err != nil {
		return err
	}

	if c.Kind != spatialir.KindDisjoint {
		t.writeIndexPrefix(sw, qc, c.Property, lit.envelope)
	}

	sw.WriteString(dialect.Column(t.encoder, c.Property.Column()))
	sw.WriteString(".")
	sw.WriteString(fn)
	sw.WriteString("(")
	sw.WriteString(geomFromText)
	sw.WriteString(lit.text)
	sw.WriteString(")) = 1")
	return sw.Err()
}
