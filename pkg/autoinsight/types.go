// Package autoinsight defines the public types, interfaces and error
// taxonomy shared by the AutoInsight pipeline components.
package autoinsight

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Tier identifies a subscription level. The tier controls the maximum
// file size a caller may load and whether PDF reports are available.
type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"
)

// tierLimitsMB maps each known tier to its maximum input size in megabytes.
var tierLimitsMB = map[Tier]float64{
	TierFree:     2.5,
	TierPro:      25,
	TierBusiness: 200,
}

// tierPDF maps each known tier to its PDF report entitlement.
var tierPDF = map[Tier]bool{
	TierFree:     false,
	TierPro:      true,
	TierBusiness: true,
}

// ParseTier normalizes a tier name to lower case. The result may be an
// unknown tier; callers that require a defined one must check IsValid.
func ParseTier(s string) Tier {
	return Tier(strings.ToLower(strings.TrimSpace(s)))
}

func (t Tier) String() string { return string(t) }

// IsValid returns true if the tier is one of the defined subscription levels.
func (t Tier) IsValid() bool {
	_, ok := tierLimitsMB[t]
	return ok
}

// LimitMB returns the maximum input file size for the tier in megabytes.
// Unknown tiers fall back to the conservative FallbackLimitMB.
func (t Tier) LimitMB() float64 {
	if limit, ok := tierLimitsMB[t]; ok {
		return limit
	}
	return FallbackLimitMB
}

// AllowsPDF reports whether the tier includes PDF report generation.
func (t Tier) AllowsPDF() bool { return tierPDF[t] }

// Tiers returns the defined tiers in ascending limit order.
func Tiers() []Tier {
	return []Tier{TierFree, TierPro, TierBusiness}
}

// Format identifies the parsed representation of a data file.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatExcel   Format = "excel"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// formatByExtension is the fixed extension dispatch table.
// Matching is case-insensitive; .txt files are read as CSV.
var formatByExtension = map[string]Format{
	".csv":     FormatCSV,
	".xlsx":    FormatExcel,
	".xls":     FormatExcel,
	".json":    FormatJSON,
	".parquet": FormatParquet,
	".txt":     FormatCSV,
}

// FormatForPath resolves the format for a file path from its lower-cased
// extension. The second return value is false for unrecognized extensions.
func FormatForPath(path string) (Format, bool) {
	f, ok := formatByExtension[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

func (f Format) String() string { return string(f) }

// IsValid returns true if the format is one of the defined values.
func (f Format) IsValid() bool {
	switch f {
	case FormatCSV, FormatExcel, FormatJSON, FormatParquet:
		return true
	}
	return false
}

// SupportedExtensions returns the recognized file extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formatByExtension))
	for ext := range formatByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LoadOptions carries the recognized per-format reader options. Only the
// fields that apply to the dispatched format may be set; anything else is
// rejected with ErrInvalidOptions before the file is read.
type LoadOptions struct {
	// CSV and TXT inputs.
	Delimiter rune     // field separator, comma when zero
	HeaderRow int      // index of the header line, lines above it are skipped
	Columns   []string // subset of columns to keep, all when empty
	RowLimit  int      // maximum number of data rows, 0 keeps all

	// Excel inputs.
	Sheet string // sheet name, first sheet when empty
}

// ValidateFor rejects option fields that do not apply to the given format,
// and option values that are out of range.
func (o LoadOptions) ValidateFor(format Format) error {
	var errs []error

	if format != FormatCSV {
		if o.Delimiter != 0 {
			errs = append(errs, &OptionError{Option: "delimiter", Format: format})
		}
		if o.HeaderRow != 0 {
			errs = append(errs, &OptionError{Option: "header_row", Format: format})
		}
		if len(o.Columns) != 0 {
			errs = append(errs, &OptionError{Option: "columns", Format: format})
		}
		if o.RowLimit != 0 {
			errs = append(errs, &OptionError{Option: "row_limit", Format: format})
		}
	}
	if format != FormatExcel && o.Sheet != "" {
		errs = append(errs, &OptionError{Option: "sheet", Format: format})
	}

	if o.HeaderRow < 0 {
		errs = append(errs, fmt.Errorf("header_row cannot be negative: %w", ErrInvalidOptions))
	}
	if o.RowLimit < 0 {
		errs = append(errs, fmt.Errorf("row_limit cannot be negative: %w", ErrInvalidOptions))
	}

	return errors.Join(errs...)
}

// LoadMetadata describes a completed load. It is produced fresh on every
// successful Load call and never cached or persisted.
type LoadMetadata struct {
	Filename      string
	Format        Format
	SizeMB        float64
	Rows          int
	Columns       int
	Package       Tier
	MemoryUsageMB float64
}

// Map returns the metadata under its canonical reporting keys.
func (m LoadMetadata) Map() map[string]interface{} {
	return map[string]interface{}{
		"filename":        m.Filename,
		"format":          string(m.Format),
		"size_mb":         m.SizeMB,
		"rows":            m.Rows,
		"columns":         m.Columns,
		"package":         string(m.Package),
		"memory_usage_mb": m.MemoryUsageMB,
	}
}

// ColumnKind classifies a column for cleaning and analysis purposes.
type ColumnKind string

const (
	ColumnNumeric     ColumnKind = "numeric"
	ColumnCategorical ColumnKind = "categorical"
	ColumnDatetime    ColumnKind = "datetime"
	ColumnText        ColumnKind = "text"
)

// RunConfig contains all parameters for a full analysis run.
type RunConfig struct {
	// InputPath is the data file to analyze.
	InputPath string

	// Tier is the subscription tier the run executes under.
	Tier Tier

	// OutputDir receives charts, the report and any exported tables.
	OutputDir string

	// Load carries the per-format reader options.
	Load LoadOptions

	// Cleaning configures the missing-value handling pass.
	Cleaning CleaningConfig

	// Analysis configures correlation computation.
	Analysis AnalysisConfig

	// RenderCharts toggles PNG chart generation.
	RenderCharts bool

	// GeneratePDF requests the PDF report. Requires a tier with PDF support.
	GeneratePDF bool

	// ReportTitle overrides the default report title.
	ReportTitle string

	// Force overwrites existing outputs without interactive approval.
	Force bool

	// Verbose enables detailed logging.
	Verbose bool

	// Timeout is the global timeout for the entire run. Zero disables it.
	Timeout time.Duration
}

// Validate checks the RunConfig for missing or inconsistent fields.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.InputPath == "" {
		errs = append(errs, fmt.Errorf("InputPath is required: %w", ErrInvalidConfig))
	}
	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}
	if c.Tier == "" {
		errs = append(errs, fmt.Errorf("Tier is required: %w", ErrInvalidConfig))
	}
	if !c.Cleaning.Strategy.IsValid() {
		errs = append(errs, fmt.Errorf("unknown cleaning strategy %q: %w", c.Cleaning.Strategy, ErrInvalidConfig))
	}
	if c.Cleaning.DropThreshold < 0 || c.Cleaning.DropThreshold > 1 {
		errs = append(errs, fmt.Errorf("drop threshold must be within [0, 1]: %w", ErrInvalidConfig))
	}
	if !c.Cleaning.OutlierMethod.IsValid() {
		errs = append(errs, fmt.Errorf("unknown outlier method %q: %w", c.Cleaning.OutlierMethod, ErrInvalidConfig))
	}
	if !c.Analysis.CorrelationMethod.IsValid() {
		errs = append(errs, fmt.Errorf("unknown correlation method %q: %w", c.Analysis.CorrelationMethod, ErrInvalidConfig))
	}
	if c.Analysis.CorrelationThreshold < 0 || c.Analysis.CorrelationThreshold > 1 {
		errs = append(errs, fmt.Errorf("correlation threshold must be within [0, 1]: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
