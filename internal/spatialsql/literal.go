package spatialsql

import (
	"fmt"
	"io"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// EncodeLiteral writes g as single-quoted well-known text.
//
// Teradata rejects LINEARRING literals, so a LinearRing is written as the
// LineString over the same coordinate sequence.
func EncodeLiteral(w io.Writer, g geom.T) error {
	text, err := literalText(g)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return ioError(err)
	}
	return nil
}

// literalText renders the quoted WKT without writing it, so callers can
// fail before any SQL reaches the sink.
func literalText(g geom.T) (string, error) {
	if g == nil {
		return "", fmt.Errorf("nil geometry")
	}
	if ring, ok := g.(*geom.LinearRing); ok {
		g = ringToLineString(ring)
	}
	text, err := wkt.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode WKT: %w", err)
	}
	return "'" + text + "'", nil
}

// ringToLineString shares the ring's flat coordinates.
func ringToLineString(ring *geom.LinearRing) *geom.LineString {
	return geom.NewLineStringFlat(ring.Layout(), ring.FlatCoords())
}
