package harness

import (
	"fmt"

	"github.com/roach88/tdgeo/internal/spatialir"
)

// PredicateSpec is the YAML form of a predicate tree.
//
// A leaf sets kind plus a literal (wkt or geojson). Setting distance makes
// the leaf a DistanceBuffer node; otherwise it is a Comparison. Branches set
// exactly one of and, or, not and nothing else.
type PredicateSpec struct {
	Kind     string   `yaml:"kind,omitempty"`
	Property string   `yaml:"property,omitempty"`
	WKT      string   `yaml:"wkt,omitempty"`
	GeoJSON  string   `yaml:"geojson,omitempty"`
	Distance *float64 `yaml:"distance,omitempty"`
	Swapped  bool     `yaml:"swapped,omitempty"`

	And []PredicateSpec `yaml:"and,omitempty"`
	Or  []PredicateSpec `yaml:"or,omitempty"`
	Not *PredicateSpec  `yaml:"not,omitempty"`
}

// Build converts the YAML predicate into a predicate tree.
func (s PredicateSpec) Build() (spatialir.Predicate, error) {
	return s.build("$")
}

func (s PredicateSpec) build(path string) (spatialir.Predicate, error) {
	branches := 0
	if s.And != nil {
		branches++
	}
	if s.Or != nil {
		branches++
	}
	if s.Not != nil {
		branches++
	}

	if branches > 1 {
		return nil, fmt.Errorf("%s: and, or and not are mutually exclusive", path)
	}
	if branches == 1 {
		if s.isLeaf() {
			return nil, fmt.Errorf("%s: a logical node cannot carry leaf fields", path)
		}
		return s.buildBranch(path)
	}
	return s.buildLeaf(path)
}

func (s PredicateSpec) isLeaf() bool {
	return s.Kind != "" || s.Property != "" || s.WKT != "" || s.GeoJSON != "" || s.Distance != nil || s.Swapped
}

func (s PredicateSpec) buildBranch(path string) (spatialir.Predicate, error) {
	switch {
	case s.Not != nil:
		child, err := s.Not.build(path + ".not")
		if err != nil {
			return nil, err
		}
		return spatialir.Not{Predicate: child}, nil
	case s.And != nil:
		children, err := buildChildren(s.And, path+".and")
		if err != nil {
			return nil, err
		}
		return spatialir.And{Predicates: children}, nil
	default:
		children, err := buildChildren(s.Or, path+".or")
		if err != nil {
			return nil, err
		}
		return spatialir.Or{Predicates: children}, nil
	}
}

func buildChildren(specs []PredicateSpec, path string) ([]spatialir.Predicate, error) {
	children := make([]spatialir.Predicate, len(specs))
	for i, spec := range specs {
		child, err := spec.build(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

func (s PredicateSpec) buildLeaf(path string) (spatialir.Predicate, error) {
	if s.Kind == "" {
		return nil, fmt.Errorf("%s: kind is required", path)
	}
	kind, err := spatialir.ParseKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.WKT != "" && s.GeoJSON != "" {
		return nil, fmt.Errorf("%s: wkt and geojson are mutually exclusive", path)
	}

	lit := spatialir.Literal{}
	switch {
	case s.WKT != "":
		lit = spatialir.WKTLiteral(s.WKT)
	case s.GeoJSON != "":
		lit = spatialir.Literal{Value: []byte(s.GeoJSON)}
	}
	prop := spatialir.Property{Name: s.Property}

	if s.Distance != nil {
		return spatialir.DistanceBuffer{
			Kind:     kind,
			Property: prop,
			Literal:  lit,
			Distance: *s.Distance,
			Swapped:  s.Swapped,
		}, nil
	}
	return spatialir.Comparison{
		Kind:     kind,
		Property: prop,
		Literal:  lit,
		Swapped:  s.Swapped,
	}, nil
}
