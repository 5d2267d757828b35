package analysis

import (
	"context"
	"errors"
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/cleaning"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// Analyzer computes the full analysis pass over a cleaned table.
// It implements autoinsight.Analyzer.
type Analyzer struct {
	logger autoinsight.Logger
}

// New creates an Analyzer. A nil logger is replaced with a no-op logger.
func New(logger autoinsight.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Analyzer{logger: logger}
}

// Analyze computes statistics, profiles, correlations, normality,
// trends and insights for df.
func (a *Analyzer) Analyze(ctx context.Context, df *dataframe.DataFrame, cfg autoinsight.AnalysisConfig) (*autoinsight.AnalysisResult, error) {
	if df == nil {
		return nil, errors.New("table is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method := cfg.CorrelationMethod
	if method == "" {
		method = autoinsight.CorrelationPearson
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("unknown correlation method %q: %w", method, autoinsight.ErrInvalidConfig)
	}

	threshold := cfg.CorrelationThreshold
	if threshold <= 0 {
		threshold = autoinsight.DefaultCorrelationThreshold
	}

	kinds := cleaning.Classify(df)
	cols := numericColumns(df)

	a.logger.Verbose("analyzing %d numeric columns with the %s method", len(cols), method)

	result := &autoinsight.AnalysisResult{
		Stats:        describeColumns(cols, df.NRows()),
		Categoricals: profileCategoricals(df, kinds),
		Method:       method,
	}
	result.CorrelationColumns, result.CorrelationMatrix = correlationMatrix(cols, method)
	result.NotablePairs = notablePairs(result.CorrelationColumns, result.CorrelationMatrix, threshold)
	result.VarianceRanking = varianceRanking(result.Stats)
	result.Normality = checkNormality(cols)
	result.Trends = detectTrends(cols)
	result.Insights = buildInsights(df, result)

	a.logger.Verbose("analysis produced %d insights", len(result.Insights))
	return result, nil
}
