package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireInputFile validates that exactly one input_file argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireInputFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <input_file>

Usage: %s <input_file>

Example:
  %s sales.csv --tier pro

Supported formats: .csv, .xlsx, .xls, .json, .parquet, .txt`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
