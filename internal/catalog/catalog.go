package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// migration upgrades the catalog from version-1 to version.
type migration struct {
	version int
	stmt    string
}

// migrations run in order against catalogs whose user_version is behind.
// schema.sql always describes version 0; anything added later lands here so
// catalogs written by older binaries keep opening.
var migrations = []migration{
	// Index lookups during QueryContext filter by (schema, table).
	{1, `CREATE INDEX IF NOT EXISTS idx_index_tables_target
		ON index_tables(schema_name, table_name)`},
}

// currentSchemaVersion is the user_version of a fully migrated catalog.
var currentSchemaVersion = migrations[len(migrations)-1].version

// pragmas configure every catalog connection.
//
//   - WAL lets `tdgeo translate` read while `tdgeo catalog` registers
//   - NORMAL synchronous is enough for a registry that can be rebuilt
//   - busy_timeout waits out a concurrent registration instead of failing
//   - foreign_keys makes DropTable cascade to index_tables
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// Catalog is the durable table and index registry.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens a catalog database at the given path.
// Use ":memory:" for a throwaway catalog.
//
// The embedded schema is applied and pending migrations run, so opening an
// existing catalog twice is harmless.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}

	// One connection: SQLite has a single writer, and a ":memory:" catalog
	// only exists on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initialize(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func initialize(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return migrate(db)
}

// migrate applies each pending migration in its own transaction, bumping
// user_version alongside it.
func migrate(db *sql.DB) error {
	version, err := userVersion(context.Background(), db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: set user_version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
	}

	return nil
}

func userVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

// schemaVersion reports the applied migration level. Used for testing.
func (c *Catalog) schemaVersion(ctx context.Context) (int, error) {
	return userVersion(ctx, c.db)
}
