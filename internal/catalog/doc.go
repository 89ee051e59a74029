// Package catalog provides a SQLite-backed registry of the Teradata tables a
// translator targets and of their tessellation index tables.
//
// The catalog answers two questions for a translation call: which column is
// the primary key of the target table, and does <table>_<column>_idx exist.
// Both are read once into a dialect.QueryContext; the translator itself never
// touches the database.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: index rows are removed with their table
//
// All reads ORDER BY name COLLATE BINARY so listings are deterministic.
package catalog
