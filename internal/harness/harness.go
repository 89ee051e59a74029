package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/tdgeo/internal/config"
	"github.com/roach88/tdgeo/internal/dialect"
	"github.com/roach88/tdgeo/internal/spatialsql"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass is true when every expectation holds.
	Pass bool `json:"pass"`

	// SQL is the translated text; empty when translation failed.
	SQL string `json:"sql,omitempty"`

	// ErrorCode is the TranslateError code when translation failed.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors lists failed expectations.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{Name: name, Pass: true, Errors: []string{}}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Output is the text compared against golden files: the SQL on success and
// "error: <code>" on failure.
func (r *Result) Output() string {
	if r.ErrorCode != "" {
		return "error: " + r.ErrorCode + "\n"
	}
	return r.SQL + "\n"
}

// Run translates a scenario and checks its expectations.
//
// A returned error means the scenario itself could not be set up (bad
// config, malformed predicate). Translation failures are part of the
// result and are checked against expect.error.
func Run(scenario *Scenario) (*Result, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	enc, qc, looseBBox, err := resolveContext(scenario)
	if err != nil {
		return nil, err
	}

	pred, err := scenario.Predicate.Build()
	if err != nil {
		return nil, fmt.Errorf("build predicate: %w", err)
	}

	tr := spatialsql.New(enc,
		spatialsql.WithLooseBBox(looseBBox),
		spatialsql.WithLogger(logger),
	)

	result := NewResult(scenario.Name)
	sql, err := tr.TranslateString(qc, pred)
	if err != nil {
		var te *spatialsql.TranslateError
		if !errors.As(err, &te) {
			return nil, fmt.Errorf("translate: %w", err)
		}
		result.ErrorCode = string(te.Code)
	} else {
		result.SQL = sql
	}

	for _, msg := range checkExpect(result, scenario.Expect) {
		result.AddError(msg)
	}

	logger.Info("scenario completed",
		"name", scenario.Name,
		"pass", result.Pass,
	)
	return result, nil
}

func resolveContext(s *Scenario) (dialect.IdentifierEncoder, *dialect.QueryContext, bool, error) {
	if s.Config != "" {
		cfg, err := config.Load(s.Config)
		if err != nil {
			return nil, nil, false, fmt.Errorf("load config: %w", err)
		}
		qc, err := cfg.QueryContext(s.Table)
		if err != nil {
			return nil, nil, false, err
		}
		return cfg.Encoder(), qc, cfg.LooseBBox, nil
	}

	quoting := dialect.Quoting(s.Quoting)
	if quoting == "" {
		quoting = dialect.QuotingNone
	}
	enc, err := dialect.EncoderFor(quoting)
	if err != nil {
		return nil, nil, false, err
	}
	return enc, s.Context.QueryContext(), false, nil
}

// checkExpect returns one message per failed expectation.
func checkExpect(r *Result, e Expect) []string {
	var failures []string

	if e.Error != "" {
		if r.ErrorCode != e.Error {
			failures = append(failures, fmt.Sprintf("expected error %s, got %s", e.Error, describe(r)))
		}
		return failures
	}

	if r.ErrorCode != "" {
		return append(failures, fmt.Sprintf("expected success, got error %s", r.ErrorCode))
	}
	if e.SQL != "" && r.SQL != e.SQL {
		failures = append(failures, fmt.Sprintf("sql mismatch\n  Expected: %s\n  Actual: %s", e.SQL, r.SQL))
	}
	for _, sub := range e.Contains {
		if !strings.Contains(r.SQL, sub) {
			failures = append(failures, fmt.Sprintf("expected sql to contain %q\n  Actual: %s", sub, r.SQL))
		}
	}
	for _, sub := range e.NotContains {
		if strings.Contains(r.SQL, sub) {
			failures = append(failures, fmt.Sprintf("expected sql not to contain %q\n  Actual: %s", sub, r.SQL))
		}
	}
	return failures
}

func describe(r *Result) string {
	if r.ErrorCode != "" {
		return "error " + r.ErrorCode
	}
	return fmt.Sprintf("success: %s", r.SQL)
}
