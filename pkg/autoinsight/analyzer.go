package autoinsight

import (
	"context"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// CorrelationMethod selects the correlation coefficient computed between
// numeric columns.
type CorrelationMethod string

const (
	CorrelationPearson  CorrelationMethod = "pearson"
	CorrelationSpearman CorrelationMethod = "spearman"
	CorrelationKendall  CorrelationMethod = "kendall"
)

// ParseCorrelationMethod normalizes a method name to lower case.
func ParseCorrelationMethod(s string) CorrelationMethod {
	return CorrelationMethod(strings.ToLower(strings.TrimSpace(s)))
}

func (m CorrelationMethod) String() string { return string(m) }

// IsValid returns true if the method is one of the defined values.
func (m CorrelationMethod) IsValid() bool {
	switch m {
	case CorrelationPearson, CorrelationSpearman, CorrelationKendall:
		return true
	}
	return false
}

// AnalysisConfig configures an analysis pass.
type AnalysisConfig struct {
	// CorrelationMethod selects the coefficient for the correlation matrix.
	CorrelationMethod CorrelationMethod

	// CorrelationThreshold is the minimum absolute coefficient for a pair
	// to appear among the notable correlations.
	CorrelationThreshold float64
}

// ColumnStats holds the descriptive statistics of one numeric column.
// All values are rounded to two decimals.
type ColumnStats struct {
	Column     string
	Count      int // non-missing observations
	Missing    int
	MissingPct float64
	Mean       float64
	Std        float64
	Min        float64
	Q25        float64
	Median     float64
	Q75        float64
	Max        float64
	Variance   float64
	Skewness   float64
	Kurtosis   float64 // excess kurtosis
}

// ValueCount pairs a categorical value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// CategoricalProfile summarizes one categorical column.
type CategoricalProfile struct {
	Column           string
	Unique           int
	Top              []ValueCount // up to five most frequent values
	MostCommon       string
	ConcentrationPct float64 // share of the most common value
}

// CorrelationPair is one notable correlation between two columns.
type CorrelationPair struct {
	A        string
	B        string
	R        float64
	Strength string // "very strong", "strong", "moderate", "weak"
}

// VarianceEntry ranks a numeric column by spread.
type VarianceEntry struct {
	Column   string
	Variance float64
	CV       float64 // coefficient of variation, std over mean
}

// NormalityCheck is the result of a Jarque-Bera screen on one column.
type NormalityCheck struct {
	Column    string
	Statistic float64
	PValue    float64
	Normal    bool // true when the p-value exceeds 0.05
}

// TrendResult reports a monotonic drift of a numeric column over row order.
type TrendResult struct {
	Column    string
	Slope     float64
	Direction string // "increasing" or "decreasing"
}

// AnalysisResult is the full output of an analysis pass.
type AnalysisResult struct {
	Stats        []ColumnStats
	Categoricals []CategoricalProfile

	// Correlation matrix over CorrelationColumns, row and column order
	// matching the slice. Nil when fewer than two numeric columns exist.
	CorrelationColumns []string
	CorrelationMatrix  [][]float64
	Method             CorrelationMethod
	NotablePairs       []CorrelationPair

	VarianceRanking []VarianceEntry
	Normality       []NormalityCheck
	Trends          []TrendResult

	// Insights are ordered, human-readable findings derived from the above.
	Insights []string
}

// Analyzer computes descriptive statistics, correlations and insights
// from a cleaned table.
type Analyzer interface {
	Analyze(ctx context.Context, df *dataframe.DataFrame, cfg AnalysisConfig) (*AnalysisResult, error)
}
