package spatialir

import (
	"fmt"
	"strings"
)

// Kind identifies a spatial relation.
//
// The set is closed. Backends switch on Kind with a default arm that fails,
// so adding a kind here forces every backend to be revisited.
type Kind int

const (
	KindUnknown Kind = iota
	KindEquals
	KindDisjoint
	KindIntersects
	KindBBox
	KindCrosses
	KindWithin
	KindContains
	KindOverlaps
	KindTouches
	KindDWithin
	KindBeyond
)

var kindNames = map[Kind]string{
	KindEquals:     "Equals",
	KindDisjoint:   "Disjoint",
	KindIntersects: "Intersects",
	KindBBox:       "BBOX",
	KindCrosses:    "Crosses",
	KindWithin:     "Within",
	KindContains:   "Contains",
	KindOverlaps:   "Overlaps",
	KindTouches:    "Touches",
	KindDWithin:    "DWithin",
	KindBeyond:     "Beyond",
}

// String returns the OGC filter name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsDistanceBuffer reports whether k compares a distance against a threshold.
func (k Kind) IsDistanceBuffer() bool {
	return k == KindDWithin || k == KindBeyond
}

// Kinds returns every defined spatial kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindEquals, KindDisjoint, KindIntersects, KindBBox, KindCrosses,
		KindWithin, KindContains, KindOverlaps, KindTouches,
		KindDWithin, KindBeyond,
	}
}

// ParseKind resolves a kind by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown spatial kind %q", name)
}
