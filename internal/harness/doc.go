// Package harness runs translation scenarios described in YAML.
//
// A scenario names a query context (inline or loaded from a CUE dialect
// configuration), a predicate tree and the expected outcome: an exact SQL
// string, substrings that must or must not appear, or an error code.
//
//	name: dwithin_indexed
//	description: DWithin narrows through the tessellation index
//	context:
//	  table: parcels
//	  primary_key: id
//	  indexes: [geom]
//	  grid: { u_xmin: 0, u_ymin: 0, u_xmax: 100, u_ymax: 100, nx: 4, ny: 4, levels: 2, scale: 1 }
//	predicate:
//	  kind: DWithin
//	  wkt: POINT (0 0)
//	  distance: 10.5
//	expect:
//	  contains: ["tessellate_search", "ST_DWithin"]
//
// Each run uses a fresh translator with a discarded logger, so results are
// deterministic and can be compared against golden files with RunWithGolden.
package harness
