// Package spatialsql translates spatial IR predicates into Teradata SQL.
//
// Each spatial leaf becomes a call on the geometry column's UDT method:
//
//	geom.ST_Within(SYSSPATIAL.ST_GEOMFROMTEXT('POINT (1 2)')) = 1
//
// When the target table has a tessellation index table
// (<table>_<column>_idx) the clause is prefixed with a primary-key restriction
// derived from SYSSPATIAL.tessellate_search, so the exact test runs only on
// candidate rows:
//
//	id IN (SELECT DISTINCT ti.id FROM parcels_geom_idx ti, TABLE(...) AS i
//	WHERE ti.cellid = i.cellid) AND geom.ST_Within(...) = 1
//
// Disjoint never gets the prefix: the candidate set is built from cells the
// literal overlaps, and disjoint rows are exactly the ones outside it.
//
// Output is streamed to the caller's io.Writer in traversal order. Any
// failure aborts the translation; the partial output must be discarded.
package spatialsql
