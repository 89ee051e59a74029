package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tdgeo/internal/catalog"
)

// CatalogOptions holds flags shared by the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	Database string
	Schema   string
	Table    string
}

// CatalogListing is the JSON payload of catalog list.
type CatalogListing struct {
	Tables  []catalog.Table      `json:"tables"`
	Indexes []catalog.IndexTable `json:"indexes"`
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the table and index catalog",
		Long: `Manage the SQLite catalog of target tables and tessellation index tables.

The catalog is created on first use. Index tables are named
<table>_<column>_idx and must belong to a registered table.

Examples:
  tdgeo catalog register-table --db tdgeo.db --table parcels --primary-key parcel_id
  tdgeo catalog register-index --db tdgeo.db --table parcels --column geom
  tdgeo catalog list --db tdgeo.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite catalog (required)")
	cmd.PersistentFlags().StringVar(&opts.Schema, "schema", "", "schema name")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newRegisterTableCommand(opts))
	cmd.AddCommand(newRegisterIndexCommand(opts))
	cmd.AddCommand(newCatalogListCommand(opts))

	return cmd
}

func newRegisterTableCommand(opts *CatalogOptions) *cobra.Command {
	var primaryKey string

	cmd := &cobra.Command{
		Use:           "register-table",
		Short:         "Register a target table and its primary key",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			cat, err := catalog.Open(opts.Database)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}
			defer cat.Close()

			t := catalog.Table{Schema: opts.Schema, Name: opts.Table, PrimaryKey: primaryKey}
			if err := cat.RegisterTable(cmdContext(cmd), t); err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}
			return formatter.SuccessText(t, fmt.Sprintf("✓ registered table %s (primary key %s)\n", displayName(t.Schema, t.Name), t.PrimaryKey))
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "table name (required)")
	cmd.Flags().StringVar(&primaryKey, "primary-key", "", "primary key column (required)")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("primary-key")

	return cmd
}

func newRegisterIndexCommand(opts *CatalogOptions) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:           "register-index",
		Short:         "Register the tessellation index table of a geometry column",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			cat, err := catalog.Open(opts.Database)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}
			defer cat.Close()

			idx, err := cat.RegisterIndex(cmdContext(cmd), opts.Schema, opts.Table, column)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}
			return formatter.SuccessText(idx, fmt.Sprintf("✓ registered index table %s\n", displayName(idx.Schema, idx.Name)))
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "table name (required)")
	cmd.Flags().StringVar(&column, "column", "", "geometry column (required)")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List registered tables and index tables",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
			ctx := cmdContext(cmd)

			cat, err := catalog.Open(opts.Database)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}
			defer cat.Close()

			listing := CatalogListing{}
			if listing.Tables, err = cat.Tables(ctx); err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}
			if listing.Indexes, err = cat.IndexTables(ctx, opts.Schema); err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}

			return formatter.SuccessText(listing, listingText(listing))
		},
	}
}

func listingText(l CatalogListing) string {
	if len(l.Tables) == 0 {
		return "No tables registered.\n"
	}

	var sb strings.Builder
	sb.WriteString("Tables:\n")
	for _, t := range l.Tables {
		fmt.Fprintf(&sb, "  %s (primary key %s)\n", displayName(t.Schema, t.Name), t.PrimaryKey)
	}
	if len(l.Indexes) > 0 {
		sb.WriteString("Index tables:\n")
		for _, idx := range l.Indexes {
			fmt.Fprintf(&sb, "  %s -> %s.%s\n", displayName(idx.Schema, idx.Name), idx.Table, idx.Column)
		}
	}
	return sb.String()
}

func displayName(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}
