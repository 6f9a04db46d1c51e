package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireTablePath validates that exactly one table argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireTablePath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <table>

Usage: %s

Example:
  %s ./shortlist.csv --column image`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// OptionalTablePath accepts zero or one table argument. The table may also
// come from --table style sources (environment, imgpick.yaml, the form).
func OptionalTablePath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 arg(s), received %d", len(args))
	}
	return nil
}
