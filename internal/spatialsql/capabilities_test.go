package spatialsql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tdgeo/internal/spatialir"
)

func TestDefaultCapabilities_SpatialKinds(t *testing.T) {
	caps := DefaultCapabilities()

	for _, k := range spatialir.Kinds() {
		assert.True(t, caps.Supports(k), "kind %s", k)
	}
	assert.False(t, caps.Supports(spatialir.KindUnknown))
	assert.Equal(t, spatialir.Kinds(), caps.SpatialKinds())
}

func TestDefaultCapabilities_BaseOperators(t *testing.T) {
	caps := DefaultCapabilities()

	assert.True(t, caps.SupportsOperator("And"))
	assert.True(t, caps.SupportsOperator("PropertyIsBetween"))
	assert.False(t, caps.SupportsOperator("PropertyIsLike"))
	assert.Len(t, caps.Operators(), len(BaseOperators))
}

func TestCapabilities_SupportsPredicate(t *testing.T) {
	caps := New(nil).Capabilities()
	pt := spatialir.WKTLiteral("POINT (0 0)")

	assert.True(t, caps.SupportsPredicate(spatialir.And{Predicates: []spatialir.Predicate{
		spatialir.Comparison{Kind: spatialir.KindWithin, Literal: pt},
		&spatialir.Not{Predicate: spatialir.DistanceBuffer{Kind: spatialir.KindBeyond, Literal: pt}},
	}}))

	assert.False(t, caps.SupportsPredicate(spatialir.Or{Predicates: []spatialir.Predicate{
		spatialir.Comparison{Kind: spatialir.Kind(77), Literal: pt},
	}}))
	assert.False(t, caps.SupportsPredicate(spatialir.Not{}))
	assert.False(t, caps.SupportsPredicate((*spatialir.Comparison)(nil)))
	assert.False(t, caps.SupportsPredicate((*spatialir.DistanceBuffer)(nil)))
	assert.False(t, caps.SupportsPredicate((*spatialir.And)(nil)))
	assert.False(t, caps.SupportsPredicate(spatialir.Or{Predicates: []spatialir.Predicate{(*spatialir.Not)(nil)}}))
	assert.False(t, caps.SupportsPredicate(nil))
}

func TestComparisonFunction(t *testing.T) {
	fn, err := ComparisonFunction(spatialir.KindWithin, true)
	assert.NoError(t, err)
	assert.Equal(t, "ST_Contains", fn)

	_, err = ComparisonFunction(spatialir.KindBeyond, false)
	assert.True(t, IsUnsupportedPredicate(err))
}

func TestDistanceFormFor(t *testing.T) {
	testCases := []struct {
		kind    spatialir.Kind
		swapped bool
		want    DistanceForm
	}{
		{spatialir.KindDWithin, false, DistanceWithin},
		{spatialir.KindBeyond, true, DistanceWithin},
		{spatialir.KindDWithin, true, DistanceBeyond},
		{spatialir.KindBeyond, false, DistanceBeyond},
	}
	for _, tc := range testCases {
		got, err := DistanceFormFor(tc.kind, tc.swapped)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s swapped=%v", tc.kind, tc.swapped)
	}

	_, err := DistanceFormFor(spatialir.KindIntersects, false)
	assert.True(t, IsUnsupportedPredicate(err))
}
