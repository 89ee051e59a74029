package spatialir

// Predicate represents a filter condition in the spatial IR.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Comparison: boolean spatial relation between a column and a literal
//   - DistanceBuffer: distance threshold between a column and a literal
//   - And, Or, Not: logical composition
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Spatial is implemented by the two leaf node types.
// It lets callers handle operands without caring which leaf they hold.
type Spatial interface {
	Predicate
	SpatialKind() Kind
	Operands() (Property, Literal, bool)
}

// Comparison represents a boolean spatial relation.
//
// Semantics:
//
//	<Kind>(<property>, <literal>)     when Swapped is false
//	<Kind>(<literal>, <property>)     when Swapped is true
//
// Kind must not be a distance-buffer kind.
//
// Example:
//
//	Comparison{
//	  Kind:     KindWithin,
//	  Property: Property{Name: "geom"},
//	  Literal:  WKTLiteral("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"),
//	}
//
// Translates to Teradata SQL:
//
//	geom.ST_Within(SYSSPATIAL.ST_GEOMFROMTEXT('POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))')) = 1
type Comparison struct {
	Kind     Kind
	Property Property
	Literal  Literal
	Swapped  bool
}

func (Comparison) predicateNode() {}

// SpatialKind returns the relation kind.
func (c Comparison) SpatialKind() Kind { return c.Kind }

// Operands returns the property, the literal and the swap flag.
func (c Comparison) Operands() (Property, Literal, bool) {
	return c.Property, c.Literal, c.Swapped
}

// DistanceBuffer represents a distance-threshold relation.
//
// Semantics:
//
//	DWithin: distance(<property>, <literal>) <= Distance
//	Beyond:  distance(<property>, <literal>) >  Distance
//
// Distance is in the native linear unit of the stored geometry and must be
// non-negative. No unit conversion happens anywhere downstream.
type DistanceBuffer struct {
	Kind     Kind
	Property Property
	Literal  Literal
	Distance float64
	Swapped  bool
}

func (DistanceBuffer) predicateNode() {}

// SpatialKind returns the relation kind.
func (d DistanceBuffer) SpatialKind() Kind { return d.Kind }

// Operands returns the property, the literal and the swap flag.
func (d DistanceBuffer) Operands() (Property, Literal, bool) {
	return d.Property, d.Literal, d.Swapped
}

// And represents a conjunction of predicates.
// An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Or represents a disjunction of predicates.
// An empty Or is always false.
type Or struct {
	Predicates []Predicate
}

func (Or) predicateNode() {}

// Not negates a single predicate.
type Not struct {
	Predicate Predicate
}

func (Not) predicateNode() {}

// IsNil reports whether p is a nil interface or a typed nil pointer to one
// of the node types.
func IsNil(p Predicate) bool {
	switch n := p.(type) {
	case nil:
		return true
	case *Comparison:
		return n == nil
	case *DistanceBuffer:
		return n == nil
	case *And:
		return n == nil
	case *Or:
		return n == nil
	case *Not:
		return n == nil
	default:
		return false
	}
}
