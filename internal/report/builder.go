package report

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// Section limits keep the report readable on wide tables.
const (
	maxReportInsights     = 5
	maxReportStats        = 15
	maxReportCategoricals = 5
	maxReportCorrelations = 10
	chartsPerPage         = 2
)

// Builder assembles the PDF report. It implements
// autoinsight.ReportBuilder.
type Builder struct {
	fs     filesystem.Provider
	logger autoinsight.Logger
}

// New creates a Builder backed by the given filesystem provider.
// It panics if the provider is nil. A nil logger is replaced with a
// no-op logger.
func New(provider filesystem.Provider, logger autoinsight.Logger) *Builder {
	if provider == nil {
		panic("filesystem provider cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Builder{fs: provider, logger: logger}
}

// Build writes report.pdf into outputDir and returns its path. Tiers
// without PDF support are rejected with ErrReportNotAllowed before any
// page is drawn.
func (b *Builder) Build(ctx context.Context, input autoinsight.ReportInput, outputDir string) (string, error) {
	tier := input.Metadata.Package
	if !tier.AllowsPDF() {
		return "", fmt.Errorf("tier %q does not include PDF reports: %w", tier, autoinsight.ErrReportNotAllowed)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := b.fs.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	generated := input.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	title := reportTitle(input)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(63, 8, "run "+input.RunID, "", 0, "L", false, 0, "")
		pdf.CellFormat(64, 8, generated.Format("2006-01-02"), "", 0, "C", false, 0, "")
		pdf.CellFormat(63, 8, fmt.Sprintf("page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	b.coverPage(pdf, title, input, generated)
	b.runSummary(pdf, input)
	b.executiveSummary(pdf, input.Analysis)
	b.statsTable(pdf, input.Analysis)
	b.categoricalTable(pdf, input.Analysis)
	b.correlationTable(pdf, input.Analysis)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if input.Charts != nil {
		if err := b.chartPages(pdf, input.Charts); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("assembling PDF: %w", err)
	}

	path := filepath.Join(outputDir, autoinsight.ReportFileName)
	if err := b.fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	b.logger.Verbose("wrote %s (%d pages)", path, pdf.PageCount())
	return path, nil
}

// reportTitle returns the configured title, or one derived from the
// source filename.
func reportTitle(input autoinsight.ReportInput) string {
	if input.Title != "" {
		return input.Title
	}
	name := filepath.Base(input.Metadata.Filename)
	if name == "" || name == "." || name == "/" {
		return "AutoInsight Report"
	}
	return "AutoInsight Report: " + name
}
