package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tdgeo/internal/dialect"
)

// ErrTableNotFound is returned when a lookup names an unregistered table.
var ErrTableNotFound = errors.New("table not registered")

// Table is a registered target table.
type Table struct {
	Schema     string `json:"schema,omitempty"`
	Name       string `json:"name"`
	PrimaryKey string `json:"primary_key"`
}

// IndexTable is a registered tessellation index table.
type IndexTable struct {
	Schema string `json:"schema,omitempty"`
	Name   string `json:"name"`
	Table  string `json:"table"`
	Column string `json:"column"`
}

// RegisterTable inserts a target table, or updates its primary key when it
// is already registered.
func (c *Catalog) RegisterTable(ctx context.Context, t Table) error {
	if t.Name == "" {
		return fmt.Errorf("register table: name is required")
	}
	if t.PrimaryKey == "" {
		return fmt.Errorf("register table %s: primary key is required", t.Name)
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO target_tables (schema_name, table_name, primary_key)
		VALUES (?, ?, ?)
		ON CONFLICT(schema_name, table_name) DO UPDATE SET primary_key = excluded.primary_key
	`, t.Schema, t.Name, t.PrimaryKey)
	if err != nil {
		return fmt.Errorf("register table %s: %w", t.Name, err)
	}
	return nil
}

// RegisterIndex records the tessellation index table for a geometry column
// of a registered table. The index name follows <table>_<column>_idx.
// Registering the same index twice is a no-op.
func (c *Catalog) RegisterIndex(ctx context.Context, schema, table, column string) (IndexTable, error) {
	if column == "" {
		return IndexTable{}, fmt.Errorf("register index on %s: column is required", table)
	}
	if _, err := c.Table(ctx, schema, table); err != nil {
		return IndexTable{}, fmt.Errorf("register index on %s: %w", table, err)
	}

	qc := dialect.QueryContext{Table: table, Schema: schema}
	idx := IndexTable{
		Schema: schema,
		Name:   qc.IndexTableName(column),
		Table:  table,
		Column: column,
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO index_tables (schema_name, index_name, table_name, column_name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(schema_name, index_name) DO NOTHING
	`, idx.Schema, idx.Name, idx.Table, idx.Column)
	if err != nil {
		return IndexTable{}, fmt.Errorf("register index %s: %w", idx.Name, err)
	}
	return idx, nil
}

// DropTable removes a table and, by cascade, its index tables.
func (c *Catalog) DropTable(ctx context.Context, schema, name string) error {
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM target_tables WHERE schema_name = ? AND table_name = ?
	`, schema, name)
	if err != nil {
		return fmt.Errorf("drop table %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("drop table %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("drop table %s: %w", name, ErrTableNotFound)
	}
	return nil
}

// Table returns a registered table. Unknown tables yield ErrTableNotFound.
func (c *Catalog) Table(ctx context.Context, schema, name string) (Table, error) {
	t := Table{Schema: schema, Name: name}
	err := c.db.QueryRowContext(ctx, `
		SELECT primary_key FROM target_tables
		WHERE schema_name = ? AND table_name = ?
	`, schema, name).Scan(&t.PrimaryKey)
	if errors.Is(err, sql.ErrNoRows) {
		return Table{}, fmt.Errorf("%s: %w", qualifiedName(schema, name), ErrTableNotFound)
	}
	if err != nil {
		return Table{}, fmt.Errorf("query table %s: %w", name, err)
	}
	return t, nil
}

// Tables lists every registered table ordered by schema, then name.
// Returns an empty slice (not nil) when nothing is registered.
func (c *Catalog) Tables(ctx context.Context) ([]Table, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT schema_name, table_name, primary_key
		FROM target_tables
		ORDER BY schema_name COLLATE BINARY ASC, table_name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	tables := []Table{}
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Schema, &t.Name, &t.PrimaryKey); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}

// IndexTables lists the index tables of one schema ordered by name.
func (c *Catalog) IndexTables(ctx context.Context, schema string) ([]IndexTable, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT schema_name, index_name, table_name, column_name
		FROM index_tables
		WHERE schema_name = ?
		ORDER BY index_name COLLATE BINARY ASC
	`, schema)
	if err != nil {
		return nil, fmt.Errorf("query index tables: %w", err)
	}
	defer rows.Close()

	indexes := []IndexTable{}
	for rows.Next() {
		var idx IndexTable
		if err := rows.Scan(&idx.Schema, &idx.Name, &idx.Table, &idx.Column); err != nil {
			return nil, fmt.Errorf("scan index table: %w", err)
		}
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate index tables: %w", err)
	}
	return indexes, nil
}

// IndexSnapshot returns the index tables of a schema as an in-memory oracle.
// Later catalog writes do not affect the returned set.
func (c *Catalog) IndexSnapshot(ctx context.Context, schema string) (*dialect.IndexSet, error) {
	indexes, err := c.IndexTables(ctx, schema)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(indexes))
	for i, idx := range indexes {
		names[i] = idx.Name
	}
	return dialect.NewIndexSet(names...), nil
}

// QueryContext builds the translation context for a registered table.
func (c *Catalog) QueryContext(ctx context.Context, schema, table string, grid dialect.Grid) (*dialect.QueryContext, error) {
	t, err := c.Table(ctx, schema, table)
	if err != nil {
		return nil, err
	}
	indexes, err := c.IndexSnapshot(ctx, schema)
	if err != nil {
		return nil, err
	}
	return &dialect.QueryContext{
		Table:      t.Name,
		Schema:     t.Schema,
		PrimaryKey: t.PrimaryKey,
		Grid:       grid,
		Indexes:    indexes,
	}, nil
}

func qualifiedName(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}
