package testutil

import (
	"testing"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// UnitSquareWKT is a 10x10 square anchored at the origin.
const UnitSquareWKT = "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"

// UnitSquare returns UnitSquareWKT as a polygon.
func UnitSquare() *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY, []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}, []int{10})
}

// Point returns a 2D point.
func Point(x, y float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{x, y})
}

// Ring returns a closed linear ring through the given XY pairs.
// The first pair is appended again to close it.
func Ring(coords ...float64) *geom.LinearRing {
	flat := make([]float64, 0, len(coords)+2)
	flat = append(flat, coords...)
	if len(coords) >= 2 {
		flat = append(flat, coords[0], coords[1])
	}
	return geom.NewLinearRingFlat(geom.XY, flat)
}

// MustParseWKT parses WKT or fails the test.
func MustParseWKT(t testing.TB, text string) geom.T {
	t.Helper()
	g, err := wkt.Unmarshal(text)
	if err != nil {
		t.Fatalf("parse WKT %q: %v", text, err)
	}
	return g
}
