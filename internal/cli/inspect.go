package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/autoinsight-io/autoinsight/internal/cleaning"
	"github.com/autoinsight-io/autoinsight/internal/config"
	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/internal/tui"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input_file>",
	Short: "Preview a data file without running analysis",
	Long: `Inspect loads a data file and prints its shape, detected encoding,
column types and a small sample of rows. Nothing is cleaned, analyzed
or written to disk.

The tier size limit still applies; inspect defaults to the free tier
when nothing else is configured, so any readable file passes the most
conservative check first.

Examples:
  autoinsight inspect sales.csv
  autoinsight inspect export.txt --delimiter tab --rows 10
  autoinsight inspect workbook.xlsx --sheet Q1`,
	Args: RequireInputFile,
	RunE: runInspect,
}

type inspectFlagValues struct {
	tier      string
	rows      int
	delimiter string
	headerRow int
	columns   []string
	sheet     string
}

var inspectFlags inspectFlagValues

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFlags.tier, "tier", "t", "",
		"Subscription tier for the size check: free|pro|business\n"+
			"(default: $AUTOINSIGHT_TIER, autoinsight.yaml, or free)")
	inspectCmd.Flags().IntVar(&inspectFlags.rows, "rows", autoinsight.DefaultSampleRows,
		"Number of sample rows to print")
	inspectCmd.Flags().StringVar(&inspectFlags.delimiter, "delimiter", "",
		"CSV field separator, a single character or 'tab'")
	inspectCmd.Flags().IntVar(&inspectFlags.headerRow, "header-row", 0,
		"Index of the CSV header line, lines above it are skipped")
	inspectCmd.Flags().StringSliceVar(&inspectFlags.columns, "columns", nil,
		"Subset of columns to load (comma separated)")
	inspectCmd.Flags().StringVar(&inspectFlags.sheet, "sheet", "",
		"Excel sheet name (default: first sheet)")

	registerInspectCompletions(inspectCmd)
}

// resolveInspectTier picks the tier for the size check: flag, then
// environment, then autoinsight.yaml, then free.
func resolveInspectTier(cmd *cobra.Command) (autoinsight.Tier, error) {
	if cmd.Flags().Changed("tier") {
		tier := autoinsight.ParseTier(inspectFlags.tier)
		if !tier.IsValid() {
			return "", fmt.Errorf("unknown tier %q, expected one of %v: %w", inspectFlags.tier, autoinsight.Tiers(), autoinsight.ErrInvalidConfig)
		}
		return tier, nil
	}

	_ = godotenv.Load()
	projectCfg, err := config.Load(".")
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return "", fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
		projectCfg = &config.ProjectConfig{}
	}
	projectCfg.ApplyEnv()

	if projectCfg.Tier != "" {
		tier := autoinsight.ParseTier(projectCfg.Tier)
		if !tier.IsValid() {
			return "", fmt.Errorf("unknown tier %q in %s: %w", projectCfg.Tier, config.ConfigFileName, autoinsight.ErrInvalidConfig)
		}
		return tier, nil
	}
	return autoinsight.TierFree, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	verbose := getVerboseFlag(cmd)

	tier, err := resolveInspectTier(cmd)
	if err != nil {
		return err
	}

	delimiter, err := parseDelimiter(inspectFlags.delimiter)
	if err != nil {
		return err
	}
	opts := autoinsight.LoadOptions{
		Delimiter: delimiter,
		HeaderRow: inspectFlags.headerRow,
		Columns:   inspectFlags.columns,
		Sheet:     inspectFlags.sheet,
	}

	provider := filesystem.NewOSFileSystem()
	logger := logging.NewConsoleLogger(verbose)
	loader := dataset.NewLoader(provider, logger, tier)

	encoding, err := loader.DetectEncoding(inputPath)
	if err != nil {
		return err
	}

	df, meta, err := loader.Load(context.Background(), inputPath, opts)
	if err != nil {
		return err
	}

	fmt.Println(tui.TitleStyle.Render(meta.Filename))
	printSummaryRow("Format", fmt.Sprintf("%s (%s)", meta.Format, encoding))
	printSummaryRow("Size", fmt.Sprintf("%.2f MB on disk, %.2f MB in memory", meta.SizeMB, meta.MemoryUsageMB))
	printSummaryRow("Table", fmt.Sprintf("%d rows x %d columns", meta.Rows, meta.Columns))
	printSummaryRow("Tier check", fmt.Sprintf("%s (limit %g MB)", tier, tier.LimitMB()))

	fmt.Println()
	fmt.Println(tui.SubtitleStyle.Render("Columns"))
	kinds := cleaning.Classify(df)
	rows := df.NRows()
	for _, s := range df.Series {
		missing := dataset.MissingCount(s)
		pct := 0.0
		if rows > 0 {
			pct = float64(missing) / float64(rows) * 100
		}
		fmt.Printf("  %-24s %-12s %d missing (%.1f%%)\n", s.Name(), kinds[s.Name()], missing, pct)
	}

	if inspectFlags.rows > 0 {
		fmt.Println()
		fmt.Println(tui.SubtitleStyle.Render(fmt.Sprintf("First %d rows", min(inspectFlags.rows, rows))))
		fmt.Println(loader.Sample(df, inspectFlags.rows).Table())
	}

	return nil
}
