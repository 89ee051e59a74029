package spatialsql

import (
	"strings"

	"github.com/roach88/tdgeo/internal/dialect"
	"github.com/roach88/tdgeo/internal/spatialir"
)

// tessellateSearchFn is the table function that maps a search box to grid cells.
const tessellateSearchFn = "SYSSPATIAL.tessellate_search"

// SearchArg is one bound argument of the tessellate_search call.
type SearchArg struct {
	Role string
	Text string
}

// IndexClause is the primary-key restriction placed in front of an exact
// spatial predicate when a tessellation index table exists.
type IndexClause struct {
	KeyColumn  string // encoded primary key column
	IndexTable string // encoded, schema-qualified index table
	Envelope   spatialir.Envelope
	Grid       dialect.Grid

	// BaseTable is the encoded, schema-qualified target table. It is
	// reported in diagnostics and is not part of the SQL; the clause
	// relies on the outer query's FROM for the target table.
	BaseTable string
}

// Args returns the tessellate_search arguments in call order.
// Each value is bound to its role here and nowhere else.
func (c *IndexClause) Args() []SearchArg {
	env, g := c.Envelope, c.Grid
	return []SearchArg{
		{"key", "1"},
		{"envelope.min_x", formatExtent(env.MinX)},
		{"envelope.min_y", formatExtent(env.MinY)},
		{"envelope.max_x", formatExtent(env.MaxX)},
		{"envelope.max_y", formatExtent(env.MaxY)},
		{"universe.u_xmin", formatExtent(g.UXMin)},
		{"universe.u_ymin", formatExtent(g.UYMin)},
		{"universe.u_xmax", formatExtent(g.UXMax)},
		{"universe.u_ymax", formatExtent(g.UYMax)},
		{"grid.nx", formatInt(g.NX)},
		{"grid.ny", formatInt(g.NY)},
		{"grid.levels", formatInt(g.Levels)},
		{"grid.scale", formatDecimal(g.Scale)},
		{"grid.shift", formatInt(g.Shift)},
	}
}

// String renders the clause, including the trailing "AND " that joins it to
// the exact predicate.
func (c *IndexClause) String() string {
	args := c.Args()
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.Text
	}

	var sb strings.Builder
	sb.WriteString(c.KeyColumn)
	sb.WriteString(" IN (SELECT DISTINCT ti.id FROM ")
	sb.WriteString(c.IndexTable)
	sb.WriteString(" ti, TABLE(")
	sb.WriteString(tessellateSearchFn)
	sb.WriteString("(")
	sb.WriteString(strings.Join(texts, ", "))
	sb.WriteString(")) AS i WHERE ti.cellid = i.cellid) AND ")
	return sb.String()
}

// indexClause returns the restriction for prop, or nil when no narrowing
// applies: no context, no index table, no primary key, or an empty envelope.
func (t *Translator) indexClause(qc *dialect.QueryContext, prop spatialir.Property, env spatialir.Envelope) *IndexClause {
	if qc == nil {
		return nil
	}

	indexTable := qc.IndexTableName(prop.Column())
	if !qc.HasIndex(indexTable) {
		t.logger.Debug("tessellation index skipped: no index table",
			"table", qc.Table,
			"index_table", indexTable)
		return nil
	}
	if qc.PrimaryKey == "" {
		t.logger.Warn("tessellation index skipped: primary key unknown",
			"table", qc.Table,
			"index_table", indexTable)
		return nil
	}
	if env.IsEmpty() {
		t.logger.Debug("tessellation index skipped: empty literal envelope",
			"table", qc.Table)
		return nil
	}

	clause := &IndexClause{
		KeyColumn:  dialect.Column(t.encoder, qc.PrimaryKey),
		IndexTable: dialect.Qualify(t.encoder, qc.Schema, indexTable),
		BaseTable:  dialect.Qualify(t.encoder, qc.Schema, qc.Table),
		Envelope:   env,
		Grid:       qc.Grid,
	}

	t.logger.Debug("tessellation index applied",
		"table", clause.BaseTable,
		"index_table", clause.IndexTable)

	return clause
}
