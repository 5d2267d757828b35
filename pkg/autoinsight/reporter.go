package autoinsight

import (
	"context"
	"time"
)

// ReportInput collects everything the PDF report renders.
type ReportInput struct {
	// Title of the report. A default derived from the filename is used
	// when empty.
	Title string

	// RunID identifies the pipeline run that produced the report.
	RunID string

	// Fingerprint is the SHA-256 of the source file, echoed on the cover
	// so a report can be matched to its exact input.
	Fingerprint string

	Metadata LoadMetadata
	Cleaning *CleaningReport
	Analysis *AnalysisResult
	Charts   *ChartSet

	GeneratedAt time.Time
}

// ReportBuilder assembles the PDF report. Build fails with
// ErrReportNotAllowed when the metadata's tier has no PDF support, and
// returns the written file path on success.
type ReportBuilder interface {
	Build(ctx context.Context, input ReportInput, outputDir string) (string, error)
}
