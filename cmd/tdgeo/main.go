// Command tdgeo translates spatial predicates into Teradata SQL.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/tdgeo/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report ExitErrors through their formatter before returning.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
