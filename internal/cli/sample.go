package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/sampledata"
	"github.com/autoinsight-io/autoinsight/internal/tui"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [output_path]",
	Short: "Write a demo dataset for trying the analyzer",
	Long: `Sample writes a synthetic sales dataset as CSV: daily dates, region
and product categories, units, prices and revenue, with a few missing
cells and planted outliers so every pipeline stage has work to do.

The dataset is small enough for the free tier.

Examples:
  autoinsight sample                   # Writes ./sample.csv
  autoinsight sample data/demo.csv     # Custom path, directories created`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	outputPath := "sample.csv"
	if len(args) > 0 {
		outputPath = args[0]
	}

	progress := tui.NewProgressDisplay()
	progress.Start(fmt.Sprintf("Generating sample dataset at %s", outputPath))

	provider := filesystem.NewOSFileSystem()
	if err := sampledata.WriteCSV(context.Background(), provider, outputPath); err != nil {
		progress.Error("Sample generation failed")
		return err
	}

	progress.Success(fmt.Sprintf("Sample dataset written to %s", outputPath))
	fmt.Fprintf(os.Stderr, "\nTry: autoinsight analyze %s --tier free\n", outputPath)
	return nil
}
