package spatialsql

import "strconv"

// formatExtent renders envelope and universe coordinates with one fractional
// digit, the precision tessellate_search is called with.
func formatExtent(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatDecimal renders the shortest plain decimal that round-trips,
// without an exponent and without a forced fraction digit.
func formatDecimal(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}
