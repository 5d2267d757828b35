package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoinsight",
	Short: "Automated exploratory analysis for tabular data",
	Long: asciiLogo + `

autoinsight loads a CSV, Excel, JSON or Parquet file, cleans missing
values, computes descriptive statistics and correlations, renders charts,
and assembles everything into a PDF report. One command, no notebooks.

The subscription tier caps the input file size and gates PDF output.

Exit Codes:
  0  - Success
  1  - General error (analysis failed)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or reader options
  11 - Input file not found
  12 - File size over the tier limit
  13 - Unsupported file format
  14 - File could not be parsed
  15 - PDF requested on a tier without PDF support
  16 - User denied overwrite approval`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for autoinsight")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
