package spatialsql

import (
	"sort"

	"github.com/roach88/tdgeo/internal/spatialir"
)

// BaseOperators are the scalar and logical filters every JDBC-style dialect
// pushes down, independent of spatial support.
var BaseOperators = []string{
	"And",
	"Or",
	"Not",
	"PropertyIsEqualTo",
	"PropertyIsNotEqualTo",
	"PropertyIsLessThan",
	"PropertyIsLessThanOrEqualTo",
	"PropertyIsGreaterThan",
	"PropertyIsGreaterThanOrEqualTo",
	"PropertyIsNull",
	"PropertyIsBetween",
	"Id",
	"Include",
	"Exclude",
}

// Capabilities is the closed set of filters the translator accepts.
// Upstream planners consult it to decide what to push down to SQL.
type Capabilities struct {
	base    map[string]struct{}
	spatial map[spatialir.Kind]struct{}
}

// DefaultCapabilities returns the base operators plus every spatial kind.
func DefaultCapabilities() Capabilities {
	c := Capabilities{
		base:    make(map[string]struct{}, len(BaseOperators)),
		spatial: make(map[spatialir.Kind]struct{}),
	}
	for _, op := range BaseOperators {
		c.base[op] = struct{}{}
	}
	for _, k := range []spatialir.Kind{
		spatialir.KindBBox,
		spatialir.KindContains,
		spatialir.KindCrosses,
		spatialir.KindDisjoint,
		spatialir.KindEquals,
		spatialir.KindIntersects,
		spatialir.KindOverlaps,
		spatialir.KindTouches,
		spatialir.KindWithin,
		spatialir.KindDWithin,
		spatialir.KindBeyond,
	} {
		c.spatial[k] = struct{}{}
	}
	return c
}

// Supports reports whether a spatial kind can be pushed down.
func (c Capabilities) Supports(kind spatialir.Kind) bool {
	_, ok := c.spatial[kind]
	return ok
}

// SupportsOperator reports whether a base operator can be pushed down.
func (c Capabilities) SupportsOperator(name string) bool {
	_, ok := c.base[name]
	return ok
}

// SpatialKinds returns the supported spatial kinds in declaration order.
func (c Capabilities) SpatialKinds() []spatialir.Kind {
	kinds := make([]spatialir.Kind, 0, len(c.spatial))
	for k := range c.spatial {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Operators returns the supported base operator names, sorted.
func (c Capabilities) Operators() []string {
	ops := make([]string, 0, len(c.base))
	for op := range c.base {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// SupportsPredicate reports whether every node of a tree can be pushed down.
func (c Capabilities) SupportsPredicate(p spatialir.Predicate) bool {
	if spatialir.IsNil(p) {
		return false
	}
	switch pred := p.(type) {
	case spatialir.Spatial:
		return c.Supports(pred.SpatialKind())
	case spatialir.And:
		return c.SupportsOperator("And") && c.supportsAll(pred.Predicates)
	case *spatialir.And:
		return c.SupportsOperator("And") && c.supportsAll(pred.Predicates)
	case spatialir.Or:
		return c.SupportsOperator("Or") && c.supportsAll(pred.Predicates)
	case *spatialir.Or:
		return c.SupportsOperator("Or") && c.supportsAll(pred.Predicates)
	case spatialir.Not:
		return c.SupportsOperator("Not") && c.SupportsPredicate(pred.Predicate)
	case *spatialir.Not:
		return c.SupportsOperator("Not") && c.SupportsPredicate(pred.Predicate)
	default:
		return false
	}
}

func (c Capabilities) supportsAll(children []spatialir.Predicate) bool {
	for _, child := range children {
		if !c.SupportsPredicate(child) {
			return false
		}
	}
	return true
}
