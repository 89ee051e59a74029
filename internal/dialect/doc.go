// Package dialect holds the Teradata-side collaborators of the spatial
// translator: the per-call query context, the tessellation grid, the
// index-table existence oracle, and identifier encoding.
//
// A QueryContext is a value. The caller builds one for the table being
// targeted and passes it to each translation call; nothing in this module
// remembers "the last table" between calls.
package dialect
