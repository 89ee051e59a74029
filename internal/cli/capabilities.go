package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tdgeo/internal/spatialsql"
)

// CapabilitiesReport is the JSON payload of the capabilities command.
type CapabilitiesReport struct {
	Spatial   []string `json:"spatial"`
	Operators []string `json:"operators"`
}

// NewCapabilitiesCommand creates the capabilities command.
func NewCapabilitiesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "capabilities",
		Short:         "List the filters the translator can push down",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			report := capabilitiesReport(spatialsql.DefaultCapabilities())

			var text strings.Builder
			fmt.Fprintf(&text, "Spatial: %s\n", strings.Join(report.Spatial, ", "))
			fmt.Fprintf(&text, "Operators: %s\n", strings.Join(report.Operators, ", "))
			return formatter.SuccessText(report, text.String())
		},
	}
}

func capabilitiesReport(c spatialsql.Capabilities) CapabilitiesReport {
	kinds := c.SpatialKinds()
	report := CapabilitiesReport{
		Spatial:   make([]string, len(kinds)),
		Operators: c.Operators(),
	}
	for i, k := range kinds {
		report.Spatial[i] = k.String()
	}
	return report
}
