package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/autoinsight-io/autoinsight/internal/analysis"
	"github.com/autoinsight-io/autoinsight/internal/charts"
	"github.com/autoinsight-io/autoinsight/internal/cleaning"
	"github.com/autoinsight-io/autoinsight/internal/config"
	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/internal/pipeline"
	"github.com/autoinsight-io/autoinsight/internal/report"
	"github.com/autoinsight-io/autoinsight/internal/tui"
	"github.com/autoinsight-io/autoinsight/internal/tui/wizards"
	"github.com/autoinsight-io/autoinsight/internal/ui"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input_file>",
	Short: "Run the full analysis pipeline on a data file",
	Long: `Analyze loads a data file, cleans it, computes statistics and
correlations, renders charts, and optionally assembles a PDF report.

The analyze command:
1. Checks the file size against the subscription tier limit
2. Loads the file based on its extension (CSV, Excel, JSON, Parquet)
3. Handles missing values with the selected cleaning strategy
4. Computes descriptive statistics, correlations and insights
5. Renders distribution, correlation and trend charts as PNGs
6. Builds a PDF report on the pro and business tiers

Configuration precedence (highest wins):
  command-line flags > AUTOINSIGHT_* environment > autoinsight.yaml > defaults

The autoinsight.yaml is read from the working directory. Run
'autoinsight init' to scaffold one.

When no tier is configured and the terminal is interactive, a setup
wizard collects the tier, cleaning strategy and output settings.

Examples:
  # Analyze with an explicit tier
  autoinsight analyze sales.csv --tier pro

  # Full report with PDF, custom title
  autoinsight analyze sales.csv --tier business --pdf --title "Q1 Revenue"

  # Tab-separated file, keep only three columns
  autoinsight analyze export.txt --tier free --delimiter tab \
    --columns date,region,revenue

  # CI run: no prompts, overwrite previous outputs
  autoinsight analyze sales.csv --tier pro --pdf --force --non-interactive`,
	Args: RequireInputFile,
	RunE: runAnalyze,
}

type analyzeFlagValues struct {
	tier           string
	output         string
	strategy       string
	dropThreshold  float64
	outlierMethod  string
	corrMethod     string
	corrThreshold  float64
	title          string
	pdf            bool
	noCharts       bool
	delimiter      string
	headerRow      int
	columns        []string
	rows           int
	sheet          string
	timeout        time.Duration
	force          bool
	nonInteractive bool
}

var analyzeFlags analyzeFlagValues

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.tier, "tier", "t", "",
		"Subscription tier: free|pro|business\n"+
			"Controls the file size limit and PDF availability.\n"+
			"Precedence: --tier > $AUTOINSIGHT_TIER > autoinsight.yaml")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.output, "output", "o", "",
		"Output directory for charts and the report\n"+
			"(default \""+autoinsight.DefaultOutputDir+"\", or $AUTOINSIGHT_OUTPUT)")

	// Cleaning flags
	analyzeCmd.Flags().StringVarP(&analyzeFlags.strategy, "strategy", "s", "",
		"Missing-value strategy: auto|drop|mean|median|mode|forward_fill\n"+
			"auto drops mostly-empty columns, fills numbers with the median\n"+
			"and everything else with the mode (default \"auto\")")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.dropThreshold, "drop-threshold", autoinsight.DefaultDropThreshold,
		"Missing ratio above which the auto strategy drops a column\n"+
			"Must be within [0, 1]")
	analyzeCmd.Flags().StringVar(&analyzeFlags.outlierMethod, "outliers", "",
		"Outlier detection for the cleaning report: iqr|zscore (default \"iqr\")")

	// Analysis flags
	analyzeCmd.Flags().StringVar(&analyzeFlags.corrMethod, "corr-method", "",
		"Correlation coefficient: pearson|spearman|kendall (default \"pearson\")")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.corrThreshold, "corr-threshold", autoinsight.DefaultCorrelationThreshold,
		"Minimum absolute correlation for a pair to be reported\n"+
			"Must be within [0, 1]")

	// Output flags
	analyzeCmd.Flags().BoolVar(&analyzeFlags.pdf, "pdf", false,
		"Generate the PDF report (pro and business tiers only)")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.noCharts, "no-charts", false,
		"Skip PNG chart rendering")
	analyzeCmd.Flags().StringVar(&analyzeFlags.title, "title", "",
		"Report title (default derives from the input file name)")

	// Reader flags
	analyzeCmd.Flags().StringVar(&analyzeFlags.delimiter, "delimiter", "",
		"CSV field separator, a single character or 'tab'\n"+
			"Only valid for CSV and TXT inputs")
	analyzeCmd.Flags().IntVar(&analyzeFlags.headerRow, "header-row", 0,
		"Index of the CSV header line, lines above it are skipped")
	analyzeCmd.Flags().StringSliceVar(&analyzeFlags.columns, "columns", nil,
		"Subset of columns to load (comma separated)\n"+
			"Example: --columns date,region,revenue")
	analyzeCmd.Flags().IntVar(&analyzeFlags.rows, "rows", 0,
		"Maximum number of data rows to load, 0 keeps all")
	analyzeCmd.Flags().StringVar(&analyzeFlags.sheet, "sheet", "",
		"Excel sheet name (default: first sheet)\n"+
			"Only valid for .xlsx and .xls inputs")

	// Workflow flags
	analyzeCmd.Flags().BoolVar(&analyzeFlags.force, "force", false,
		"Overwrite previous outputs without interactive confirmation\n"+
			"Use for CI/CD pipelines")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.nonInteractive, "non-interactive", false,
		"Never start the setup wizard, fail instead when the tier is missing")
	analyzeCmd.Flags().DurationVar(&analyzeFlags.timeout, "timeout", 10*time.Minute,
		"Catastrophic failure protection timeout (default 10m)\n"+
			"Prevents indefinite hangs on pathological inputs; 0 disables it\n"+
			"Examples: 30s, 5m, 1h30m")

	registerAnalyzeCompletions(analyzeCmd)
}

// parseDelimiter converts the --delimiter flag value to a rune.
// The literal 'tab' and the escape sequence '\t' both mean a tab.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q: %w", s, autoinsight.ErrInvalidConfig)
	}
	return runes[0], nil
}

// buildRunConfig assembles a RunConfig from defaults, autoinsight.yaml,
// environment variables and CLI flags, in that precedence order.
// This function is extracted for testability and separation of concerns.
func buildRunConfig(cmd *cobra.Command, inputPath string, verbose bool) (autoinsight.RunConfig, error) {
	_ = godotenv.Load()

	cfg := autoinsight.RunConfig{
		InputPath: inputPath,
		OutputDir: autoinsight.DefaultOutputDir,
		Cleaning: autoinsight.CleaningConfig{
			Strategy:      autoinsight.StrategyAuto,
			DropThreshold: autoinsight.DefaultDropThreshold,
			OutlierMethod: autoinsight.OutlierIQR,
		},
		Analysis: autoinsight.AnalysisConfig{
			CorrelationMethod:    autoinsight.CorrelationPearson,
			CorrelationThreshold: autoinsight.DefaultCorrelationThreshold,
		},
		RenderCharts: true,
		Verbose:      verbose,
	}

	projectCfg, err := config.Load(".")
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return autoinsight.RunConfig{}, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
		projectCfg = &config.ProjectConfig{}
	} else if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Loaded %s\n", config.ConfigFileName)
	}
	projectCfg.ApplyEnv()
	if err := projectCfg.Validate(); err != nil {
		return autoinsight.RunConfig{}, fmt.Errorf("invalid %s: %v: %w", config.ConfigFileName, err, autoinsight.ErrInvalidConfig)
	}

	applyProjectConfig(&cfg, projectCfg)
	if err := applyAnalyzeFlags(&cfg, cmd); err != nil {
		return autoinsight.RunConfig{}, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
		fmt.Fprintf(os.Stderr, "  Tier: %s\n", cfg.Tier)
		fmt.Fprintf(os.Stderr, "  Output: %s\n", cfg.OutputDir)
		fmt.Fprintf(os.Stderr, "  Strategy: %s\n", cfg.Cleaning.Strategy)
		fmt.Fprintf(os.Stderr, "  Correlation: %s (threshold %.2f)\n", cfg.Analysis.CorrelationMethod, cfg.Analysis.CorrelationThreshold)
		fmt.Fprintf(os.Stderr, "  Charts: %t, PDF: %t\n", cfg.RenderCharts, cfg.GeneratePDF)
	}

	return cfg, nil
}

// applyProjectConfig overlays the values set in autoinsight.yaml onto the
// defaults. Unset fields leave the defaults in place.
func applyProjectConfig(cfg *autoinsight.RunConfig, projectCfg *config.ProjectConfig) {
	if projectCfg.Tier != "" {
		cfg.Tier = autoinsight.ParseTier(projectCfg.Tier)
	}
	if projectCfg.Output != "" {
		cfg.OutputDir = projectCfg.Output
	}

	if d := projectCfg.DelimiterRune(); d != 0 {
		cfg.Load.Delimiter = d
	}
	if projectCfg.CSV.HeaderRow > 0 {
		cfg.Load.HeaderRow = projectCfg.CSV.HeaderRow
	}
	if len(projectCfg.CSV.Columns) > 0 {
		cfg.Load.Columns = projectCfg.CSV.Columns
	}
	if projectCfg.CSV.RowLimit > 0 {
		cfg.Load.RowLimit = projectCfg.CSV.RowLimit
	}
	if projectCfg.Excel.Sheet != "" {
		cfg.Load.Sheet = projectCfg.Excel.Sheet
	}

	if projectCfg.Cleaning.Strategy != "" {
		cfg.Cleaning.Strategy = autoinsight.ParseCleaningStrategy(projectCfg.Cleaning.Strategy)
	}
	if projectCfg.Cleaning.DropThreshold > 0 {
		cfg.Cleaning.DropThreshold = projectCfg.Cleaning.DropThreshold
	}
	if projectCfg.Cleaning.OutlierMethod != "" {
		cfg.Cleaning.OutlierMethod = autoinsight.OutlierMethod(projectCfg.Cleaning.OutlierMethod)
	}

	if projectCfg.Analysis.CorrelationMethod != "" {
		cfg.Analysis.CorrelationMethod = autoinsight.ParseCorrelationMethod(projectCfg.Analysis.CorrelationMethod)
	}
	if projectCfg.Analysis.CorrelationThreshold > 0 {
		cfg.Analysis.CorrelationThreshold = projectCfg.Analysis.CorrelationThreshold
	}

	if projectCfg.Charts.Enabled != nil {
		cfg.RenderCharts = *projectCfg.Charts.Enabled
	}
	if projectCfg.Report.Enabled != nil {
		cfg.GeneratePDF = *projectCfg.Report.Enabled
	}
	if projectCfg.Report.Title != "" {
		cfg.ReportTitle = projectCfg.Report.Title
	}
}

// applyAnalyzeFlags overlays explicitly set CLI flags onto the config.
// Flags win over both autoinsight.yaml and the environment.
func applyAnalyzeFlags(cfg *autoinsight.RunConfig, cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("tier") {
		cfg.Tier = autoinsight.ParseTier(analyzeFlags.tier)
		if !cfg.Tier.IsValid() {
			return fmt.Errorf("unknown tier %q, expected one of %v: %w", analyzeFlags.tier, autoinsight.Tiers(), autoinsight.ErrInvalidConfig)
		}
	}
	if flags.Changed("output") {
		cfg.OutputDir = analyzeFlags.output
	}

	if flags.Changed("strategy") {
		cfg.Cleaning.Strategy = autoinsight.ParseCleaningStrategy(analyzeFlags.strategy)
	}
	if flags.Changed("drop-threshold") {
		cfg.Cleaning.DropThreshold = analyzeFlags.dropThreshold
	}
	if flags.Changed("outliers") {
		cfg.Cleaning.OutlierMethod = autoinsight.OutlierMethod(analyzeFlags.outlierMethod)
	}
	if flags.Changed("corr-method") {
		cfg.Analysis.CorrelationMethod = autoinsight.ParseCorrelationMethod(analyzeFlags.corrMethod)
	}
	if flags.Changed("corr-threshold") {
		cfg.Analysis.CorrelationThreshold = analyzeFlags.corrThreshold
	}

	if flags.Changed("pdf") {
		cfg.GeneratePDF = analyzeFlags.pdf
	}
	if flags.Changed("no-charts") {
		cfg.RenderCharts = !analyzeFlags.noCharts
	}
	if flags.Changed("title") {
		cfg.ReportTitle = analyzeFlags.title
	}

	if flags.Changed("delimiter") {
		delimiter, err := parseDelimiter(analyzeFlags.delimiter)
		if err != nil {
			return err
		}
		cfg.Load.Delimiter = delimiter
	}
	if flags.Changed("header-row") {
		cfg.Load.HeaderRow = analyzeFlags.headerRow
	}
	if flags.Changed("columns") {
		cfg.Load.Columns = analyzeFlags.columns
	}
	if flags.Changed("rows") {
		cfg.Load.RowLimit = analyzeFlags.rows
	}
	if flags.Changed("sheet") {
		cfg.Load.Sheet = analyzeFlags.sheet
	}

	cfg.Timeout = analyzeFlags.timeout
	cfg.Force = analyzeFlags.force
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	verbose := getVerboseFlag(cmd)

	cfg, err := buildRunConfig(cmd, inputPath, verbose)
	if err != nil {
		return err
	}

	// No tier from flags, environment or config file. Interactive
	// sessions get the wizard; everything else must be explicit.
	if cfg.Tier == "" {
		if !tui.IsInteractive() || analyzeFlags.nonInteractive {
			return fmt.Errorf("tier is required: set --tier, $%s, or tier in %s: %w",
				config.EnvTier, config.ConfigFileName, autoinsight.ErrInvalidConfig)
		}

		result, err := wizards.RunAnalyzeWizard(inputPath, wizards.AnalyzeDefaults{
			Tier:      cfg.Tier,
			Strategy:  cfg.Cleaning.Strategy,
			PDF:       cfg.GeneratePDF,
			OutputDir: cfg.OutputDir,
		})
		if err != nil {
			return fmt.Errorf("setup wizard failed: %w", err)
		}
		if result.Cancelled {
			return fmt.Errorf("analysis cancelled")
		}
		cfg.Tier = result.Tier
		cfg.Cleaning.Strategy = result.Strategy
		cfg.GeneratePDF = result.PDF
		cfg.OutputDir = result.OutputDir
	}

	// Create dependencies
	// Select approver implementation based on --force flag
	var approver autoinsight.Approver
	if cfg.Force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}
	var logger autoinsight.Logger
	if tui.IsInteractive() {
		logger = logging.NewColorConsoleLogger(verbose)
	} else {
		logger = logging.NewConsoleLogger(verbose)
	}
	provider := filesystem.NewOSFileSystem()

	runner := pipeline.NewRunner(
		dataset.NewLoader(provider, logger, cfg.Tier),
		cleaning.New(logger),
		analysis.New(logger),
		charts.New(provider, logger),
		report.New(provider, logger),
		approver,
		provider,
		logger,
	)

	// The runner applies cfg.Timeout itself; the CLI only wires signal
	// handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling analysis...")
		cancel()
	}()

	result, err := runner.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printRunSummary(result, cfg)
	return nil
}

// printRunSummary renders the run outcome. The summary goes to stdout so
// it can be captured; it is the primary output of the command.
func printRunSummary(result *pipeline.RunResult, cfg autoinsight.RunConfig) {
	fmt.Println()
	fmt.Println(tui.TitleStyle.Render("Analysis complete"))

	meta := result.Metadata
	printSummaryRow("Input", fmt.Sprintf("%s (%s, %.2f MB)", meta.Filename, meta.Format, meta.SizeMB))
	printSummaryRow("Table", fmt.Sprintf("%d rows x %d columns", meta.Rows, meta.Columns))
	printSummaryRow("Tier", cfg.Tier.String())

	if rep := result.CleaningReport; rep != nil {
		resolved := rep.MissingBefore - rep.MissingAfter
		printSummaryRow("Cleaning", fmt.Sprintf("%s strategy, %d missing cells resolved", rep.Strategy, resolved))
		if len(rep.DroppedColumns) > 0 {
			printSummaryRow("Dropped", fmt.Sprintf("%v", rep.DroppedColumns))
		}
	}
	if a := result.Analysis; a != nil {
		printSummaryRow("Statistics", fmt.Sprintf("%d numeric, %d categorical columns profiled", len(a.Stats), len(a.Categoricals)))
		if len(a.NotablePairs) > 0 {
			printSummaryRow("Correlations", fmt.Sprintf("%d notable pairs (%s)", len(a.NotablePairs), a.Method))
		}
	}
	if result.Charts != nil {
		chartDir := filepath.Join(cfg.OutputDir, autoinsight.ChartsSubdir)
		printSummaryRow("Charts", fmt.Sprintf("%d PNGs in %s", len(result.Charts.Paths()), chartDir))
	}
	if result.ReportPath != "" {
		printSummaryRow("Report", result.ReportPath)
	}
	printSummaryRow("Duration", result.Duration.Round(time.Millisecond).String())

	if a := result.Analysis; a != nil && len(a.Insights) > 0 {
		fmt.Println()
		fmt.Println(tui.SubtitleStyle.Render("Insights"))
		for _, insight := range a.Insights {
			fmt.Printf("  %s %s\n", tui.SymbolBullet, insight)
		}
	}
}

func printSummaryRow(label, value string) {
	fmt.Printf("  %s %s\n", tui.LabelStyle.Render(fmt.Sprintf("%-13s", label)), value)
}
