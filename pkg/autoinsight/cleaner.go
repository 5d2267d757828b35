package autoinsight

import (
	"context"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// CleaningStrategy selects how missing values are handled.
type CleaningStrategy string

const (
	// StrategyAuto drops columns that are mostly missing, fills numeric
	// columns with their median, categorical and text columns with their
	// mode, and datetime columns by forward fill.
	StrategyAuto CleaningStrategy = "auto"

	// StrategyDrop removes every row containing a missing value.
	StrategyDrop CleaningStrategy = "drop"

	// StrategyMean fills numeric columns with their mean.
	StrategyMean CleaningStrategy = "mean"

	// StrategyMedian fills numeric columns with their median.
	StrategyMedian CleaningStrategy = "median"

	// StrategyMode fills every column with its most frequent value.
	StrategyMode CleaningStrategy = "mode"

	// StrategyForwardFill propagates the last seen value into gaps.
	// Leading gaps stay missing.
	StrategyForwardFill CleaningStrategy = "forward_fill"
)

// ParseCleaningStrategy normalizes a strategy name to lower case.
func ParseCleaningStrategy(s string) CleaningStrategy {
	return CleaningStrategy(strings.ToLower(strings.TrimSpace(s)))
}

func (s CleaningStrategy) String() string { return string(s) }

// IsValid returns true if the strategy is one of the defined values.
func (s CleaningStrategy) IsValid() bool {
	switch s {
	case StrategyAuto, StrategyDrop, StrategyMean, StrategyMedian, StrategyMode, StrategyForwardFill:
		return true
	}
	return false
}

// OutlierMethod selects how outliers are flagged in the cleaning report.
type OutlierMethod string

const (
	// OutlierIQR flags values outside 1.5 interquartile ranges from the
	// first and third quartiles.
	OutlierIQR OutlierMethod = "iqr"

	// OutlierZScore flags values more than three standard deviations from
	// the mean.
	OutlierZScore OutlierMethod = "zscore"
)

func (m OutlierMethod) String() string { return string(m) }

// IsValid returns true if the method is one of the defined values.
func (m OutlierMethod) IsValid() bool {
	return m == OutlierIQR || m == OutlierZScore
}

// CleaningConfig configures a cleaning pass.
type CleaningConfig struct {
	// Strategy is the missing-value strategy to apply.
	Strategy CleaningStrategy

	// DropThreshold is the missing ratio above which the auto strategy
	// drops a column outright.
	DropThreshold float64

	// OutlierMethod selects the outlier detection used for reporting.
	OutlierMethod OutlierMethod
}

// ColumnAction records what the cleaner did to one column.
type ColumnAction struct {
	Column string
	Kind   ColumnKind
	Action string // "median fill", "dropped", "forward fill", ...
	Filled int    // cells filled by the action
}

// OutlierSummary counts flagged outliers in one numeric column.
type OutlierSummary struct {
	Column string
	Count  int
	Pct    float64
}

// CleaningReport describes the effects of a cleaning pass.
type CleaningReport struct {
	Strategy       CleaningStrategy
	RowsBefore     int
	RowsAfter      int
	MissingBefore  int
	MissingAfter   int
	DroppedColumns []string
	Actions        []ColumnAction
	Outliers       []OutlierSummary
	Downcast       []string // columns converted from float to integer storage
	MemoryBeforeMB float64
	MemoryAfterMB  float64
}

// Cleaner applies a missing-value strategy to a loaded table.
// The input table is never mutated; Clean returns a new table.
type Cleaner interface {
	Clean(ctx context.Context, df *dataframe.DataFrame, cfg CleaningConfig) (*dataframe.DataFrame, *CleaningReport, error)
}
