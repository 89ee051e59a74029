package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tdgeo/internal/spatialir"
	"github.com/roach88/tdgeo/internal/spatialsql"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	predicateFlags
}

// ValidationReport is the JSON payload of the validate command.
type ValidationReport struct {
	Valid     bool     `json:"valid"`
	Supported bool     `json:"supported"`
	Problems  []string `json:"problems,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a predicate without translating it",
		Long: `Check a predicate tree for structural problems (nil children, unset
kinds, negative or non-finite distances) and for kinds the translator
cannot express. Literals are not evaluated.

Exit codes:
  0 - Predicate is valid and supported
  1 - Predicate has problems
  2 - Command error`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	opts.predicateFlags.register(cmd)
	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	pred, err := opts.predicateFlags.build(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}

	res := spatialir.Validate(pred)
	report := ValidationReport{
		Valid:     res.Valid,
		Supported: spatialsql.DefaultCapabilities().SupportsPredicate(pred),
		Problems:  res.Problems,
	}
	if !report.Supported {
		report.Problems = append(report.Problems, "predicate uses a kind the translator cannot express")
	}

	var text strings.Builder
	if report.Valid && report.Supported {
		text.WriteString("✓ predicate is valid\n")
	} else {
		text.WriteString("✗ predicate has problems\n")
		for _, p := range report.Problems {
			fmt.Fprintf(&text, "  %s\n", p)
		}
	}
	if err := formatter.SuccessText(report, text.String()); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	if !report.Valid || !report.Supported {
		return NewExitError(ExitFailure, "predicate has problems")
	}
	return nil
}
