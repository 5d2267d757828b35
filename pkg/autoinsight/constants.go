package autoinsight

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Run completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or reader options
	ExitNotFound          = 11 // Input file does not exist
	ExitQuotaExceeded     = 12 // File size over the tier limit
	ExitUnsupportedFormat = 13 // Extension outside the format mapping
	ExitReadFailure       = 14 // Format reader failed to parse the file
	ExitReportDenied      = 15 // PDF requested on a tier without PDF support
	ExitApprovalDenied    = 16 // User denied overwrite approval
)

const (
	// FallbackLimitMB is the conservative size limit applied when the
	// configured tier name is not one of the defined tiers.
	FallbackLimitMB = 1.0

	// EncodingSampleBytes is the maximum number of leading bytes read by
	// the character-encoding detector.
	EncodingSampleBytes = 100_000

	// DefaultEncoding is returned when the encoding detector has no
	// confident answer, an empty file included.
	DefaultEncoding = "utf-8"

	// DefaultSampleRows is the number of rows returned by table previews.
	DefaultSampleRows = 5

	// DefaultDropThreshold is the missing-value ratio above which the auto
	// cleaning strategy drops a column entirely.
	DefaultDropThreshold = 0.5

	// DefaultCorrelationThreshold is the minimum absolute correlation for
	// a pair of columns to be reported as notable.
	DefaultCorrelationThreshold = 0.5

	// DefaultOutputDir receives charts, reports and exported tables when
	// no output directory is configured.
	DefaultOutputDir = "outputs"

	// ReportFileName is the fixed name of the PDF report inside the
	// output directory.
	ReportFileName = "report.pdf"

	// ChartsSubdir is the output subdirectory that receives rendered
	// chart PNGs.
	ChartsSubdir = "charts"
)
