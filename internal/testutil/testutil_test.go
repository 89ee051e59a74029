package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom/encoding/wkt"
)

func TestFixedTraceGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedTraceGenerator("trace-123")

	assert.Equal(t, "trace-123", gen.Generate())
	assert.Equal(t, "trace-123", gen.Generate())
}

func TestFixedTraceGenerator_EmptyIDDefault(t *testing.T) {
	assert.Equal(t, "test-trace-default", NewFixedTraceGenerator("").Generate())
}

func TestSequenceTraceGenerator(t *testing.T) {
	gen := NewSequenceTraceGenerator("run")

	assert.Equal(t, "run-0001", gen.Generate())
	assert.Equal(t, "run-0002", gen.Generate())

	gen.Reset()
	assert.Equal(t, "run-0001", gen.Generate())
}

func TestSequenceTraceGenerator_ThreadSafe(t *testing.T) {
	gen := NewSequenceTraceGenerator("")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				gen.Generate()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "trace-1001", gen.Generate())
}

func TestUnitSquare_MatchesWKT(t *testing.T) {
	text, err := wkt.Marshal(UnitSquare())
	require.NoError(t, err)
	assert.Equal(t, UnitSquareWKT, text)
}

func TestRing_Closes(t *testing.T) {
	r := Ring(0, 0, 1, 0, 1, 1)
	assert.Equal(t, 4, r.NumCoords())
	assert.Equal(t, r.Coord(0), r.Coord(3))
}

func TestMustParseWKT(t *testing.T) {
	g := MustParseWKT(t, "POINT (1 2)")
	assert.Equal(t, []float64{1, 2}, g.FlatCoords())
}

func TestPoint(t *testing.T) {
	assert.Equal(t, []float64{3, 4}, Point(3, 4).FlatCoords())
}
