package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tdgeo/internal/catalog"
	"github.com/roach88/tdgeo/internal/config"
	"github.com/roach88/tdgeo/internal/dialect"
	"github.com/roach88/tdgeo/internal/spatialsql"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Config  string // CUE dialect configuration
	Table   string // target table
	Schema  string // schema of the target table, catalog lookups only
	Catalog string // SQLite catalog; overrides the configured tables
	predicateFlags
}

// TranslateResult is the JSON payload of a successful translation.
type TranslateResult struct {
	SQL   string `json:"sql"`
	Table string `json:"table,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a spatial predicate into SQL",
		Long: `Translate a spatial predicate into a Teradata WHERE-clause fragment.

The query context comes from the CUE configuration (--config) or, with
--catalog, from the SQLite catalog of registered tables and index tables.
Without --table no context is used and no index narrowing happens.

Examples:
  tdgeo translate --kind Within --wkt "POINT (1 2)"
  tdgeo translate --config tdgeo.cue --table parcels --kind DWithin --wkt "POINT (0 0)" --distance 50
  tdgeo translate --config tdgeo.cue --catalog tdgeo.db --table parcels --predicate tree.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to CUE dialect configuration")
	cmd.Flags().StringVar(&opts.Table, "table", "", "target table")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "schema of the target table (catalog only)")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "path to SQLite catalog")
	opts.predicateFlags.register(cmd)

	return cmd
}

func runTranslate(opts *TranslateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	pred, err := opts.predicateFlags.build(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}

	cfg, err := loadDialect(opts.Config)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	qc, code, err := resolveQueryContext(cmdContext(cmd), opts, cfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, code, err.Error(), nil)
	}

	tr := spatialsql.New(cfg.Encoder(),
		spatialsql.WithLooseBBox(cfg.LooseBBox),
		spatialsql.WithLogger(logger),
	)
	if caps := tr.Capabilities(); !caps.SupportsPredicate(pred) {
		formatter.VerboseLog("predicate uses kinds outside %v", caps.SpatialKinds())
	}

	sql, err := tr.TranslateString(qc, pred)
	if err != nil {
		details := map[string]string{}
		var te *spatialsql.TranslateError
		if errors.As(err, &te) {
			details["code"] = string(te.Code)
		}
		return formatter.Fail(ExitFailure, ErrCodeTranslate, err.Error(), details)
	}

	return formatter.SuccessText(TranslateResult{SQL: sql, Table: opts.Table}, sql+"\n")
}

// loadDialect loads the configuration, or returns the defaults (quoted
// identifiers, no grid, no tables) when path is empty.
func loadDialect(path string) (*config.Dialect, error) {
	if path == "" {
		return &config.Dialect{Quoting: dialect.QuotingANSI, Tables: map[string]config.Table{}}, nil
	}
	return config.Load(path)
}

// resolveQueryContext picks the context source. It returns the CLI error
// code to report alongside any failure.
func resolveQueryContext(ctx context.Context, opts *TranslateOptions, cfg *config.Dialect) (*dialect.QueryContext, string, error) {
	if opts.Table == "" {
		if opts.Catalog != "" || opts.Schema != "" {
			return nil, ErrCodeUsage, fmt.Errorf("--catalog and --schema require --table")
		}
		return nil, "", nil
	}

	if opts.Catalog == "" {
		if opts.Schema != "" {
			return nil, ErrCodeUsage, fmt.Errorf("--schema requires --catalog; configured tables carry their own schema")
		}
		qc, err := cfg.QueryContext(opts.Table)
		if err != nil {
			return nil, ErrCodeNotFound, err
		}
		return qc, "", nil
	}

	if _, err := os.Stat(opts.Catalog); err != nil {
		return nil, ErrCodeNotFound, fmt.Errorf("catalog not found: %s", opts.Catalog)
	}
	cat, err := catalog.Open(opts.Catalog)
	if err != nil {
		return nil, ErrCodeCatalog, err
	}
	defer cat.Close()

	qc, err := cat.QueryContext(ctx, opts.Schema, opts.Table, cfg.Grid)
	if errors.Is(err, catalog.ErrTableNotFound) {
		return nil, ErrCodeNotFound, err
	}
	if err != nil {
		return nil, ErrCodeCatalog, err
	}
	if !cfg.HasGrid {
		indexes, err := cat.IndexTables(ctx, opts.Schema)
		if err != nil {
			return nil, ErrCodeCatalog, err
		}
		for _, idx := range indexes {
			if idx.Table == opts.Table {
				return nil, ErrCodeConfig, fmt.Errorf("table %s has index tables but the configuration has no grid", opts.Table)
			}
		}
	}
	return qc, "", nil
}

// cmdContext returns the command's context, or Background when run outside Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
