package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/tdgeo/internal/dialect"
)

//go:embed schema.cue
var schemaCUE string

// Dialect is a loaded configuration.
type Dialect struct {
	Quoting   dialect.Quoting
	LooseBBox bool
	Grid      dialect.Grid
	HasGrid   bool
	Tables    map[string]Table
}

// Table is one configured target table.
type Table struct {
	Name       string
	Schema     string
	PrimaryKey string
	Indexes    []string // geometry columns carrying a tessellation index
}

// ConfigError reports an invalid or missing configuration field.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates a CUE configuration file.
func Load(path string) (*Dialect, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return compile(src, path)
}

// LoadString validates configuration source held in memory.
func LoadString(src string) (*Dialect, error) {
	return compile([]byte(src), "config.cue")
}

func compile(src []byte, filename string) (*Dialect, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if !v.LookupPath(cue.ParsePath("dialect")).Exists() {
		return nil, &ConfigError{Field: "dialect", Message: "dialect block is required", Pos: v.Pos()}
	}

	unified := schema.Unify(v)
	if err := unified.Validate(); err != nil {
		return nil, formatCUEError(err)
	}

	return parseDialect(unified.LookupPath(cue.ParsePath("dialect")))
}

func parseDialect(v cue.Value) (*Dialect, error) {
	d := &Dialect{Tables: make(map[string]Table)}

	quoting, err := v.LookupPath(cue.ParsePath("quoting")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	d.Quoting = dialect.Quoting(quoting)

	d.LooseBBox, err = v.LookupPath(cue.ParsePath("loose_bbox")).Bool()
	if err != nil {
		return nil, formatCUEError(err)
	}

	gridVal := v.LookupPath(cue.ParsePath("grid"))
	if gridVal.Exists() {
		d.Grid, err = parseGrid(gridVal)
		if err != nil {
			return nil, err
		}
		d.HasGrid = true
	}

	tablesVal := v.LookupPath(cue.ParsePath("tables"))
	if tablesVal.Exists() {
		iter, err := tablesVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			t, err := parseTable(iter.Label(), iter.Value())
			if err != nil {
				return nil, err
			}
			if len(t.Indexes) > 0 && !d.HasGrid {
				return nil, &ConfigError{
					Field:   "dialect.grid",
					Message: fmt.Sprintf("grid is required when table %s declares indexes", t.Name),
					Pos:     iter.Value().Pos(),
				}
			}
			d.Tables[t.Name] = t
		}
	}

	return d, nil
}

func parseGrid(v cue.Value) (dialect.Grid, error) {
	var g dialect.Grid
	floats := []struct {
		field string
		dst   *float64
	}{
		{"u_xmin", &g.UXMin},
		{"u_ymin", &g.UYMin},
		{"u_xmax", &g.UXMax},
		{"u_ymax", &g.UYMax},
		{"scale", &g.Scale},
	}
	for _, f := range floats {
		val, err := concrete(v, f.field)
		if err != nil {
			return g, err
		}
		if *f.dst, err = val.Float64(); err != nil {
			return g, formatCUEError(err)
		}
	}

	ints := []struct {
		field string
		dst   *int
	}{
		{"nx", &g.NX},
		{"ny", &g.NY},
		{"levels", &g.Levels},
		{"shift", &g.Shift},
	}
	for _, f := range ints {
		val, err := concrete(v, f.field)
		if err != nil {
			return g, err
		}
		n, err := val.Int64()
		if err != nil {
			return g, formatCUEError(err)
		}
		*f.dst = int(n)
	}

	if g.UXMin >= g.UXMax || g.UYMin >= g.UYMax {
		return g, &ConfigError{
			Field:   "dialect.grid",
			Message: "universe minimum must be below maximum on both axes",
			Pos:     v.Pos(),
		}
	}
	return g, nil
}

func parseTable(name string, v cue.Value) (Table, error) {
	t := Table{Name: name}

	pk, err := concrete(v, "primary_key")
	if err != nil {
		return t, err
	}
	if t.PrimaryKey, err = pk.String(); err != nil {
		return t, formatCUEError(err)
	}

	if t.Schema, err = v.LookupPath(cue.ParsePath("schema")).String(); err != nil {
		return t, formatCUEError(err)
	}

	indexesVal := v.LookupPath(cue.ParsePath("indexes"))
	if indexesVal.Exists() {
		iter, err := indexesVal.List()
		if err != nil {
			return t, formatCUEError(err)
		}
		for iter.Next() {
			col, err := iter.Value().String()
			if err != nil {
				return t, formatCUEError(err)
			}
			t.Indexes = append(t.Indexes, col)
		}
	}
	return t, nil
}

// concrete looks up a required field and rejects it when the schema left it
// open.
func concrete(v cue.Value, field string) (cue.Value, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if d, ok := f.Default(); ok {
		f = d
	}
	if !f.Exists() || !f.IsConcrete() {
		return f, &ConfigError{
			Field:   pathOf(v, field),
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	return f, nil
}

func pathOf(v cue.Value, field string) string {
	p := v.Path().String()
	if p == "" {
		return field
	}
	return p + "." + field
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "cue"
	if path := first.Path(); len(path) > 0 {
		field = cue.MakePath(selectors(path)...).String()
	}
	return &ConfigError{Field: field, Message: first.Error(), Pos: userPos(errors.Positions(first))}
}

// userPos picks the first position outside the embedded schema.
func userPos(positions []token.Pos) token.Pos {
	for _, p := range positions {
		if p.Filename() != "schema.cue" {
			return p
		}
	}
	if len(positions) > 0 {
		return positions[0]
	}
	return token.NoPos
}

func selectors(path []string) []cue.Selector {
	sels := make([]cue.Selector, len(path))
	for i, p := range path {
		sels[i] = cue.Str(p)
	}
	return sels
}

// Encoder returns the identifier encoder for the configured quoting mode.
func (d *Dialect) Encoder() dialect.IdentifierEncoder {
	enc, err := dialect.EncoderFor(d.Quoting)
	if err != nil {
		// The schema restricts quoting to known modes.
		return dialect.QuotedIdentifiers{}
	}
	return enc
}

// TableNames returns the configured table names in sorted order.
func (d *Dialect) TableNames() []string {
	names := make([]string, 0, len(d.Tables))
	for n := range d.Tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// QueryContext builds the translation context for a configured table.
func (d *Dialect) QueryContext(table string) (*dialect.QueryContext, error) {
	t, ok := d.Tables[table]
	if !ok {
		return nil, &ConfigError{
			Field:   "dialect.tables",
			Message: fmt.Sprintf("table %q is not configured", table),
		}
	}

	qc := &dialect.QueryContext{
		Table:      t.Name,
		Schema:     t.Schema,
		PrimaryKey: t.PrimaryKey,
		Grid:       d.Grid,
	}
	names := make([]string, len(t.Indexes))
	for i, col := range t.Indexes {
		names[i] = qc.IndexTableName(col)
	}
	qc.Indexes = dialect.NewIndexSet(names...)
	return qc, nil
}
