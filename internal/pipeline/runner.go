package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/autoinsight-io/autoinsight/internal/checksum"
	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/internal/metadata"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// RunResult collects everything a completed pipeline run produced.
type RunResult struct {
	RunID     string
	DatasetID string

	Metadata       *autoinsight.LoadMetadata
	CleaningReport *autoinsight.CleaningReport
	Analysis       *autoinsight.AnalysisResult
	Charts         *autoinsight.ChartSet
	ReportPath     string

	Duration time.Duration
}

// Runner executes the analysis pipeline with injected stage
// implementations. A Runner is safe for sequential reuse; create
// separate instances for concurrent runs.
type Runner struct {
	loader   autoinsight.DataLoader
	cleaner  autoinsight.Cleaner
	analyzer autoinsight.Analyzer
	renderer autoinsight.ChartRenderer
	reporter autoinsight.ReportBuilder
	approver autoinsight.Approver
	fs       filesystem.Provider
	checksum checksum.SHA256
	logger   autoinsight.Logger
}

// NewRunner creates a Runner with all dependencies injected. It panics
// on nil stage implementations; these are programmer errors that should
// fail loudly at startup rather than as nil dereferences mid-run. A nil
// logger is replaced with a no-op logger.
func NewRunner(
	loader autoinsight.DataLoader,
	cleaner autoinsight.Cleaner,
	analyzer autoinsight.Analyzer,
	renderer autoinsight.ChartRenderer,
	reporter autoinsight.ReportBuilder,
	approver autoinsight.Approver,
	provider filesystem.Provider,
	logger autoinsight.Logger,
) *Runner {
	if loader == nil {
		panic("loader cannot be nil")
	}
	if cleaner == nil {
		panic("cleaner cannot be nil")
	}
	if analyzer == nil {
		panic("analyzer cannot be nil")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if provider == nil {
		panic("filesystem provider cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	return &Runner{
		loader:   loader,
		cleaner:  cleaner,
		analyzer: analyzer,
		renderer: renderer,
		reporter: reporter,
		approver: approver,
		fs:       provider,
		checksum: checksum.New(),
		logger:   logger,
	}
}

// Run executes load, clean, analyze, charts, and report for the given
// configuration. Cancellation is honored between stages; each stage
// itself runs to completion once started.
func (r *Runner) Run(ctx context.Context, cfg autoinsight.RunConfig) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.GeneratePDF && !cfg.Tier.AllowsPDF() {
		return nil, fmt.Errorf("tier %q does not include PDF reports: %w", cfg.Tier, autoinsight.ErrReportNotAllowed)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	result := &RunResult{
		RunID:     metadata.NewRunID().String(),
		DatasetID: metadata.DatasetID(cfg.InputPath).String(),
	}
	r.logger.Verbose("run %s: analyzing %s", result.RunID, cfg.InputPath)

	if err := r.approveOverwrite(ctx, cfg); err != nil {
		return nil, err
	}

	df, meta, err := r.loader.Load(ctx, cfg.InputPath, cfg.Load)
	if err != nil {
		return nil, err
	}
	if err := metadata.Validate(meta, df.NRows(), len(df.Series)); err != nil {
		return nil, fmt.Errorf("load metadata inconsistent: %w", err)
	}
	result.Metadata = meta
	r.logger.Verbose("loaded %d rows x %d columns (%.2f MB in memory)", meta.Rows, meta.Columns, meta.MemoryUsageMB)

	fingerprint, err := r.checksum.FingerprintFile(r.fs, cfg.InputPath)
	if err != nil {
		return nil, err
	}
	r.logger.Verbose("source fingerprint %s", checksum.Short(fingerprint))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleaned, cleaningReport, err := r.cleaner.Clean(ctx, df, cfg.Cleaning)
	if err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}
	result.CleaningReport = cleaningReport

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	analysis, err := r.analyzer.Analyze(ctx, cleaned, cfg.Analysis)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	result.Analysis = analysis

	if cfg.RenderCharts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chartDir := filepath.Join(cfg.OutputDir, autoinsight.ChartsSubdir)
		charts, err := r.renderer.Render(ctx, cleaned, analysis, chartDir)
		if err != nil {
			return nil, fmt.Errorf("chart rendering failed: %w", err)
		}
		result.Charts = charts
	}

	if cfg.GeneratePDF {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input := autoinsight.ReportInput{
			Title:       cfg.ReportTitle,
			RunID:       result.RunID,
			Fingerprint: fingerprint,
			Metadata:    *meta,
			Cleaning:    cleaningReport,
			Analysis:    analysis,
			Charts:      result.Charts,
			GeneratedAt: time.Now(),
		}
		path, err := r.reporter.Build(ctx, input, cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("report generation failed: %w", err)
		}
		result.ReportPath = path
	}

	result.Duration = time.Since(start)
	r.logger.Info("✓ Run %s completed in %s", result.RunID, result.Duration.Round(time.Millisecond))
	return result, nil
}

// approveOverwrite asks before clobbering the report a previous run
// left in the output directory. The forced approver answers yes
// without prompting.
func (r *Runner) approveOverwrite(ctx context.Context, cfg autoinsight.RunConfig) error {
	if !cfg.GeneratePDF {
		return nil
	}
	target := filepath.Join(cfg.OutputDir, autoinsight.ReportFileName)
	if _, err := r.fs.Stat(target); err != nil {
		return nil
	}

	r.logger.Verbose("output %s exists, requesting approval", target)
	approved, err := r.approver.RequestApproval(ctx, target)
	if err != nil {
		return fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return autoinsight.ErrApprovalDenied
	}
	return nil
}
