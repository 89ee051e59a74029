package spatialir

import (
	"fmt"
	"math"
)

// ValidationResult lists the structural problems found in a predicate tree.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems holds one message per defect, in traversal order.
	Problems []string
}

// Validate checks a predicate tree before translation.
//
// Rules:
//  1. No nil nodes anywhere in the tree
//  2. Comparison nodes carry a non-distance kind
//  3. DistanceBuffer nodes carry DWithin or Beyond
//  4. Distances are finite and non-negative
//  5. Not wraps exactly one predicate
//
// Literal evaluation is not attempted here; a literal that is not a geometry
// surfaces during translation.
//
// Validate is a pure function with no side effects.
func Validate(p Predicate) ValidationResult {
	v := &validator{problems: []string{}}
	v.validatePredicate(p, "$")

	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validatePredicate(p Predicate, path string) {
	if IsNil(p) {
		v.addProblem("%s: nil predicate", path)
		return
	}

	switch pred := p.(type) {
	case Comparison:
		v.validateComparison(pred, path)
	case *Comparison:
		v.validateComparison(*pred, path)
	case DistanceBuffer:
		v.validateDistance(pred, path)
	case *DistanceBuffer:
		v.validateDistance(*pred, path)
	case And:
		v.validateChildren(pred.Predicates, path+".and")
	case *And:
		v.validateChildren(pred.Predicates, path+".and")
	case Or:
		v.validateChildren(pred.Predicates, path+".or")
	case *Or:
		v.validateChildren(pred.Predicates, path+".or")
	case Not:
		v.validatePredicate(pred.Predicate, path+".not")
	case *Not:
		v.validatePredicate(pred.Predicate, path+".not")
	default:
		v.addProblem("%s: unknown predicate type %T", path, p)
	}
}

func (v *validator) validateComparison(c Comparison, path string) {
	switch {
	case c.Kind.IsDistanceBuffer():
		v.addProblem("%s: %s is a distance kind and needs a DistanceBuffer node", path, c.Kind)
	case c.Kind == KindUnknown:
		v.addProblem("%s: comparison kind is not set", path)
	}
}

func (v *validator) validateDistance(d DistanceBuffer, path string) {
	if !d.Kind.IsDistanceBuffer() {
		v.addProblem("%s: %s is not a distance kind", path, d.Kind)
	}
	if math.IsNaN(d.Distance) || math.IsInf(d.Distance, 0) {
		v.addProblem("%s: distance must be finite, got %v", path, d.Distance)
	} else if d.Distance < 0 {
		v.addProblem("%s: distance must be non-negative, got %v", path, d.Distance)
	}
}

func (v *validator) validateChildren(children []Predicate, path string) {
	for i, child := range children {
		v.validatePredicate(child, fmt.Sprintf("%s[%d]", path, i))
	}
}
