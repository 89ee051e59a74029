package spatialir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ValidTree(t *testing.T) {
	tree := And{Predicates: []Predicate{
		Comparison{Kind: KindIntersects, Literal: WKTLiteral("POINT (0 0)")},
		&DistanceBuffer{Kind: KindDWithin, Literal: WKTLiteral("POINT (0 0)"), Distance: 5},
		Not{Predicate: Comparison{Kind: KindTouches}},
		Or{},
	}}

	result := Validate(tree)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Problems)
}

func TestValidate_Problems(t *testing.T) {
	testCases := []struct {
		name    string
		pred    Predicate
		problem string
	}{
		{"nil root", nil, "$: nil predicate"},
		{"distance kind on comparison", Comparison{Kind: KindBeyond}, "needs a DistanceBuffer node"},
		{"unset kind", Comparison{}, "kind is not set"},
		{"comparison kind on distance", DistanceBuffer{Kind: KindEquals}, "Equals is not a distance kind"},
		{"negative distance", DistanceBuffer{Kind: KindDWithin, Distance: -1}, "non-negative"},
		{"nan distance", DistanceBuffer{Kind: KindBeyond, Distance: math.NaN()}, "finite"},
		{"nil not", Not{}, "$.not: nil predicate"},
		{"nested nil", Or{Predicates: []Predicate{Comparison{Kind: KindEquals}, nil}}, "$.or[1]: nil predicate"},
		{"typed nil comparison", (*Comparison)(nil), "$: nil predicate"},
		{"typed nil distance buffer", (*DistanceBuffer)(nil), "$: nil predicate"},
		{"typed nil and", (*And)(nil), "$: nil predicate"},
		{"typed nil or", (*Or)(nil), "$: nil predicate"},
		{"typed nil not", (*Not)(nil), "$: nil predicate"},
		{"typed nil child", And{Predicates: []Predicate{(*Comparison)(nil)}}, "$.and[0]: nil predicate"},
		{"typed nil under not", Not{Predicate: (*Or)(nil)}, "$.not: nil predicate"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(tc.pred)
			assert.False(t, result.Valid)
			assert.Len(t, result.Problems, 1)
			assert.Contains(t, result.Problems[0], tc.problem)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	tree := And{Predicates: []Predicate{
		DistanceBuffer{Kind: KindEquals, Distance: -3},
		nil,
	}}

	result := Validate(tree)
	assert.False(t, result.Valid)
	assert.Len(t, result.Problems, 3)
}

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil((*Comparison)(nil)))
	assert.True(t, IsNil((*DistanceBuffer)(nil)))
	assert.True(t, IsNil((*And)(nil)))
	assert.True(t, IsNil((*Or)(nil)))
	assert.True(t, IsNil((*Not)(nil)))

	assert.False(t, IsNil(Comparison{}))
	assert.False(t, IsNil(&And{}))
	assert.False(t, IsNil(Not{}))
}
