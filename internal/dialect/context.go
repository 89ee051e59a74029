package dialect

import "sort"

// Grid describes the tessellation universe and cell layout used by
// SYSSPATIAL.tessellate_search.
type Grid struct {
	UXMin float64 `json:"u_xmin" yaml:"u_xmin"`
	UYMin float64 `json:"u_ymin" yaml:"u_ymin"`
	UXMax float64 `json:"u_xmax" yaml:"u_xmax"`
	UYMax float64 `json:"u_ymax" yaml:"u_ymax"`

	NX     int `json:"nx" yaml:"nx"`
	NY     int `json:"ny" yaml:"ny"`
	Levels int `json:"levels" yaml:"levels"`

	Scale float64 `json:"scale" yaml:"scale"`
	Shift int     `json:"shift" yaml:"shift"`
}

// IndexOracle answers whether a tessellation index table exists.
type IndexOracle interface {
	IndexTableExists(name string) bool
}

// QueryContext is the read-only state of one translation call.
type QueryContext struct {
	Table      string
	Schema     string // empty when the table is unqualified
	PrimaryKey string
	Grid       Grid
	Indexes    IndexOracle // nil disables index narrowing
}

// IndexTableName returns the tessellation index table for a geometry column.
func (qc *QueryContext) IndexTableName(column string) string {
	return qc.Table + "_" + column + "_idx"
}

// HasIndex consults the oracle for the given index table name.
func (qc *QueryContext) HasIndex(name string) bool {
	if qc.Indexes == nil {
		return false
	}
	return qc.Indexes.IndexTableExists(name)
}

// IndexSet is an in-memory IndexOracle.
// It is a snapshot: mutating the source it was built from has no effect on it.
type IndexSet struct {
	names map[string]struct{}
}

// NewIndexSet builds an IndexSet holding the given table names.
func NewIndexSet(names ...string) *IndexSet {
	s := &IndexSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// IndexTableExists implements IndexOracle.
func (s *IndexSet) IndexTableExists(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[name]
	return ok
}

// Names returns the index table names in sorted order.
func (s *IndexSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
