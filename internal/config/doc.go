// Package config loads dialect configuration written in CUE.
//
// A configuration file declares identifier quoting, the loose-bbox flag,
// the tessellation grid and the tables a translation may target:
//
//	dialect: {
//		quoting: "ansi"
//		grid: { u_xmin: 0, u_ymin: 0, u_xmax: 100, u_ymax: 100, nx: 10, ny: 10, levels: 1, scale: 1, shift: 0 }
//		tables: parcels: { primary_key: "id", indexes: ["geom"] }
//	}
//
// The file is unified with an embedded schema, so unknown fields and
// out-of-range values are reported with their source position.
package config
