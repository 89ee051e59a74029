package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tdgeo/internal/dialect"
)

// Scenario defines one translation test case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is an optional path to a CUE dialect configuration.
	// Relative paths are resolved against the scenario file location.
	// When set, Table selects the configured table and Context must be empty.
	Config string `yaml:"config,omitempty"`

	// Table is the configured table used with Config.
	Table string `yaml:"table,omitempty"`

	// Context is an inline query context. Omitted means no context at all,
	// which disables index narrowing.
	Context *ContextSpec `yaml:"context,omitempty"`

	// Quoting selects the identifier encoder for inline contexts.
	// Defaults to "none" so expected SQL stays readable.
	Quoting string `yaml:"quoting,omitempty"`

	// Predicate is the tree to translate.
	Predicate PredicateSpec `yaml:"predicate"`

	// Expect is the expected outcome.
	Expect Expect `yaml:"expect"`
}

// ContextSpec is the inline form of a query context.
type ContextSpec struct {
	Table      string       `yaml:"table"`
	Schema     string       `yaml:"schema,omitempty"`
	PrimaryKey string       `yaml:"primary_key,omitempty"`
	Grid       dialect.Grid `yaml:"grid,omitempty"`

	// Indexes lists geometry columns that carry a tessellation index table.
	Indexes []string `yaml:"indexes,omitempty"`
}

// QueryContext converts the inline context into a translation context.
func (c *ContextSpec) QueryContext() *dialect.QueryContext {
	if c == nil {
		return nil
	}
	qc := &dialect.QueryContext{
		Table:      c.Table,
		Schema:     c.Schema,
		PrimaryKey: c.PrimaryKey,
		Grid:       c.Grid,
	}
	names := make([]string, len(c.Indexes))
	for i, col := range c.Indexes {
		names[i] = qc.IndexTableName(col)
	}
	qc.Indexes = dialect.NewIndexSet(names...)
	return qc
}

// Expect specifies the expected translation outcome.
// SQL, Contains and NotContains apply to successful translations;
// Error names the expected TranslateError code and excludes the others.
type Expect struct {
	SQL         string   `yaml:"sql,omitempty"`
	Contains    []string `yaml:"contains,omitempty"`
	NotContains []string `yaml:"not_contains,omitempty"`
	Error       string   `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) {
		scenario.Config = filepath.Join(filepath.Dir(path), scenario.Config)
	}
	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "predicat:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file under dir, sorted by path.
// A non-empty filter is matched against scenario file base names with
// filepath.Match.
func LoadScenarios(dir, filter string) ([]*Scenario, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
		}
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			base := strings.TrimSuffix(filepath.Base(path), ext)
			if ok, _ := filepath.Match(filter, base); !ok {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and consistent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Config != "" {
		if s.Context != nil {
			return fmt.Errorf("config and context are mutually exclusive")
		}
		if s.Table == "" {
			return fmt.Errorf("table is required with config")
		}
		if s.Quoting != "" {
			return fmt.Errorf("quoting comes from config when config is set")
		}
	} else if s.Table != "" {
		return fmt.Errorf("table requires config; use context.table for inline contexts")
	}

	e := s.Expect
	hasText := e.SQL != "" || len(e.Contains) > 0 || len(e.NotContains) > 0
	if e.Error != "" && hasText {
		return fmt.Errorf("expect.error cannot be combined with sql, contains or not_contains")
	}
	if e.Error == "" && !hasText {
		return fmt.Errorf("expect requires sql, contains, not_contains or error")
	}

	return nil
}
