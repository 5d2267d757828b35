package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

func newTestAnalyzer() *Analyzer {
	return New(logging.NewNullLogger())
}

// insightFrame builds a table with one clear finding of every kind:
// a permuted id column, a spiky spend column, two collinear measures
// and a measure with a gap.
func insightFrame() *dataframe.DataFrame {
	code := []interface{}{int64(6), int64(4), int64(8), int64(2), int64(10), int64(1), int64(9), int64(3), int64(7), int64(5)}

	spend := make([]interface{}, 10)
	for i := 0; i < 9; i++ {
		spend[i] = 0.5
	}
	spend[9] = 18.5

	x := make([]interface{}, 10)
	y := make([]interface{}, 10)
	gaps := make([]interface{}, 10)
	for i := 0; i < 10; i++ {
		xv := float64(i) + 0.5
		x[i] = xv
		y[i] = 2*xv + 1
		gaps[i] = xv + 1
	}
	gaps[1] = math.NaN()

	return dataframe.NewDataFrame(
		dataframe.NewSeriesInt64("code", nil, code...),
		dataframe.NewSeriesFloat64("spend", nil, spend...),
		dataframe.NewSeriesFloat64("x", nil, x...),
		dataframe.NewSeriesFloat64("y", nil, y...),
		dataframe.NewSeriesFloat64("gaps", nil, gaps...),
	)
}

func TestAnalyzer_InsightsOrdered(t *testing.T) {
	result, err := newTestAnalyzer().Analyze(context.Background(), insightFrame(), autoinsight.AnalysisConfig{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := []string{
		`Dataset has 10 rows and 5 columns`,
		`Column "gaps" is missing 10.0% of its values`,
		`Column "code" looks like an identifier: 100% of its values are unique`,
		`Very strong positive correlation between "x" and "y" (r = 1.00)`,
		`Column "spend" has the highest relative variability (CV = 2.47)`,
		`Column "spend" shows an upward trend over the row order`,
		`Column "x" shows an upward trend over the row order`,
		`Column "y" shows an upward trend over the row order`,
		`Column "gaps" shows an upward trend over the row order`,
	}
	if len(result.Insights) != len(want) {
		t.Fatalf("insights = %q, want %d entries", result.Insights, len(want))
	}
	for i := range want {
		if result.Insights[i] != want[i] {
			t.Errorf("insight[%d] = %q, want %q", i, result.Insights[i], want[i])
		}
	}
}

func TestAnalyzer_ResultShape(t *testing.T) {
	result, err := newTestAnalyzer().Analyze(context.Background(), insightFrame(), autoinsight.AnalysisConfig{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.Method != autoinsight.CorrelationPearson {
		t.Errorf("Method = %q, want pearson by default", result.Method)
	}
	if len(result.Stats) != 5 {
		t.Errorf("Stats has %d rows, want 5", len(result.Stats))
	}
	wantCols := []string{"code", "spend", "x", "y", "gaps"}
	if len(result.CorrelationColumns) != len(wantCols) {
		t.Fatalf("CorrelationColumns = %v", result.CorrelationColumns)
	}
	for i, name := range wantCols {
		if result.CorrelationColumns[i] != name {
			t.Errorf("CorrelationColumns[%d] = %q, want %q", i, result.CorrelationColumns[i], name)
		}
	}
	if len(result.NotablePairs) != 6 {
		t.Errorf("NotablePairs = %+v, want 6 entries", result.NotablePairs)
	}
	if top := result.NotablePairs[0]; top.A != "x" || top.B != "y" || top.R != 1.0 {
		t.Errorf("strongest pair = %+v, want x/y at 1.00", top)
	}
	if result.VarianceRanking[0].Column != "spend" {
		t.Errorf("most variable = %+v, want spend", result.VarianceRanking[0])
	}
	if len(result.Trends) != 4 {
		t.Errorf("Trends = %+v, want 4 entries", result.Trends)
	}
}

func TestAnalyzer_NormalityScreen(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("balanced", nil, 2.0, 4.0, 4.0, 4.0, 6.0, 6.0, 6.0, 8.0),
		dataframe.NewSeriesFloat64("spiked", nil, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 100.0),
	)

	result, err := newTestAnalyzer().Analyze(context.Background(), df, autoinsight.AnalysisConfig{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(result.Normality) != 2 {
		t.Fatalf("Normality = %+v, want 2 entries", result.Normality)
	}

	balanced := result.Normality[0]
	if balanced.Column != "balanced" || !balanced.Normal {
		t.Errorf("balanced check = %+v, want normal", balanced)
	}
	if balanced.Statistic != 0.0 || balanced.PValue != 1.0 {
		t.Errorf("balanced JB = %v p = %v, want 0 and 1", balanced.Statistic, balanced.PValue)
	}

	spiked := result.Normality[1]
	if spiked.Column != "spiked" || spiked.Normal {
		t.Errorf("spiked check = %+v, want not normal", spiked)
	}
	if spiked.PValue >= 0.05 {
		t.Errorf("spiked p = %v, want below 0.05", spiked.PValue)
	}
}

func TestAnalyzer_SkipsNormalityOnSmallSamples(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("tiny", nil, 1.5, 2.5, 3.5),
	)

	result, err := newTestAnalyzer().Analyze(context.Background(), df, autoinsight.AnalysisConfig{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(result.Normality) != 0 {
		t.Errorf("Normality = %+v, want empty for three observations", result.Normality)
	}
}

func TestDetectTrends_Directions(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("up", nil, 1.5, 2.5, 3.5, 4.5, 5.5),
		dataframe.NewSeriesFloat64("down", nil, 5.5, 4.5, 3.5, 2.5, 1.5),
		dataframe.NewSeriesFloat64("flat", nil, 5.0, 5.1, 4.9, 5.1, 5.0),
	)

	trends := detectTrends(numericColumns(df))
	if len(trends) != 2 {
		t.Fatalf("trends = %+v, want 2", trends)
	}
	if trends[0].Column != "up" || trends[0].Direction != "increasing" || math.Abs(trends[0].Slope-1.0) > 1e-9 {
		t.Errorf("up trend = %+v", trends[0])
	}
	if trends[1].Column != "down" || trends[1].Direction != "decreasing" || math.Abs(trends[1].Slope+1.0) > 1e-9 {
		t.Errorf("down trend = %+v", trends[1])
	}
}

func TestAnalyzer_SingleNumericColumn(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("only", nil, 1.5, 2.5, 3.5),
		dataframe.NewSeriesString("tag", nil, "a", "b", "a"),
	)

	result, err := newTestAnalyzer().Analyze(context.Background(), df, autoinsight.AnalysisConfig{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.CorrelationMatrix != nil || result.CorrelationColumns != nil {
		t.Errorf("matrix over one numeric column should be nil, got %v", result.CorrelationMatrix)
	}
	if len(result.NotablePairs) != 0 {
		t.Errorf("NotablePairs = %+v, want none", result.NotablePairs)
	}
	if len(result.Categoricals) != 1 || result.Categoricals[0].MostCommon != "a" {
		t.Errorf("Categoricals = %+v, want tag led by a", result.Categoricals)
	}
}

func TestAnalyzer_InvalidMethod(t *testing.T) {
	df := dataframe.NewDataFrame(dataframe.NewSeriesFloat64("v", nil, 1.5))

	_, err := newTestAnalyzer().Analyze(context.Background(), df, autoinsight.AnalysisConfig{
		CorrelationMethod: autoinsight.CorrelationMethod("cosine"),
	})
	if !errors.Is(err, autoinsight.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestAnalyzer_NilFrame(t *testing.T) {
	if _, err := newTestAnalyzer().Analyze(context.Background(), nil, autoinsight.AnalysisConfig{}); err == nil {
		t.Fatal("expected an error for a nil table")
	}
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	df := dataframe.NewDataFrame(dataframe.NewSeriesFloat64("v", nil, 1.5))
	if _, err := newTestAnalyzer().Analyze(ctx, df, autoinsight.AnalysisConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
