// Package cmdutil provides shared CLI helpers for the hopcycle command
// tree.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExactlyOneInputArg validates that find receives exactly one positional
// argument: the local path or URL to read.
func ExactlyOneInputArg() cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("requires an input file path or URL")
		}
		if len(args) > 1 {
			return fmt.Errorf("accepts exactly 1 arg, received %d", len(args))
		}
		return nil
	}
}
