package cleaning

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

func newTestCleaner() *Cleaner {
	return New(logging.NewNullLogger())
}

func findAction(report *autoinsight.CleaningReport, column, action string) *autoinsight.ColumnAction {
	for i := range report.Actions {
		a := &report.Actions[i]
		if a.Column == column && a.Action == action {
			return a
		}
	}
	return nil
}

func TestCleaner_AutoFillsAndDropsColumns(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("amount", nil, 10.5, math.NaN(), 12.5, 13.5, math.NaN(), 15.5),
		dataframe.NewSeriesString("region", nil, "north", nil, "north", "south", "north", nil),
		dataframe.NewSeriesString("mostly_gone", nil, nil, nil, nil, nil, "x", nil),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if report.Strategy != autoinsight.StrategyAuto {
		t.Errorf("Strategy = %q, want auto", report.Strategy)
	}
	if report.RowsBefore != 6 || report.RowsAfter != 6 {
		t.Errorf("rows = %d -> %d, want 6 -> 6", report.RowsBefore, report.RowsAfter)
	}
	if report.MissingBefore != 9 {
		t.Errorf("MissingBefore = %d, want 9", report.MissingBefore)
	}
	if report.MissingAfter != 0 {
		t.Errorf("MissingAfter = %d, want 0", report.MissingAfter)
	}
	if len(report.DroppedColumns) != 1 || report.DroppedColumns[0] != "mostly_gone" {
		t.Errorf("DroppedColumns = %v, want [mostly_gone]", report.DroppedColumns)
	}
	if len(out.Series) != 2 {
		t.Fatalf("output has %d columns, want 2", len(out.Series))
	}

	a := findAction(report, "amount", "median fill")
	if a == nil || a.Filled != 2 {
		t.Fatalf("median fill action = %+v, want Filled=2", a)
	}
	amount := out.Series[0].(*dataframe.SeriesFloat64)
	if amount.Values[1] != 13.0 {
		t.Errorf("filled amount = %v, want 13", amount.Values[1])
	}

	a = findAction(report, "region", "mode fill")
	if a == nil || a.Filled != 2 {
		t.Fatalf("mode fill action = %+v, want Filled=2", a)
	}
	if v := out.Series[1].Value(1); v != "north" {
		t.Errorf("filled region = %v, want north", v)
	}
}

func TestCleaner_AutoForwardFillsPromotedDates(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesString("when", nil,
			"2024-01-01", nil, "2024-01-03", "2024-01-04", "2024-01-05"),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	when, ok := out.Series[0].(*dataframe.SeriesTime)
	if !ok {
		t.Fatalf("column type = %T, want *dataframe.SeriesTime", out.Series[0])
	}
	got, ok := when.Value(1).(time.Time)
	if !ok || !got.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("filled date = %v, want 2024-01-01", when.Value(1))
	}

	a := findAction(report, "when", "forward fill")
	if a == nil || a.Filled != 1 || a.Kind != autoinsight.ColumnDatetime {
		t.Fatalf("forward fill action = %+v", a)
	}
}

func TestCleaner_DropRemovesIncompleteRows(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("a", nil, 1.5, math.NaN(), 3.5, 4.5),
		dataframe.NewSeriesString("b", nil, "x", "y", nil, "w"),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.StrategyDrop,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if report.RowsBefore != 4 || report.RowsAfter != 2 {
		t.Fatalf("rows = %d -> %d, want 4 -> 2", report.RowsBefore, report.RowsAfter)
	}
	if report.MissingAfter != 0 {
		t.Errorf("MissingAfter = %d, want 0", report.MissingAfter)
	}

	a := out.Series[0].(*dataframe.SeriesFloat64)
	if a.Values[0] != 1.5 || a.Values[1] != 4.5 {
		t.Errorf("kept values = %v, want [1.5 4.5]", a.Values)
	}

	// The input keeps its missing cells.
	orig := df.Series[0].(*dataframe.SeriesFloat64)
	if !math.IsNaN(orig.Values[1]) {
		t.Errorf("input frame mutated: %v", orig.Values[1])
	}
}

func TestCleaner_MeanFillsNumeric(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("v", nil, 1.5, 2.5, math.NaN(), 5.0),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.StrategyMean,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	v := out.Series[0].(*dataframe.SeriesFloat64)
	if v.Values[2] != 3.0 {
		t.Errorf("filled value = %v, want 3", v.Values[2])
	}
	if a := findAction(report, "v", "mean fill"); a == nil || a.Filled != 1 {
		t.Errorf("mean fill action = %+v", a)
	}
}

func TestCleaner_MedianFillsNumeric(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("v", nil, 1.5, math.NaN(), 2.5, 9.5),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.StrategyMedian,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	v := out.Series[0].(*dataframe.SeriesFloat64)
	if v.Values[1] != 2.5 {
		t.Errorf("filled value = %v, want 2.5", v.Values[1])
	}
	if a := findAction(report, "v", "median fill"); a == nil || a.Filled != 1 {
		t.Errorf("median fill action = %+v", a)
	}
}

func TestCleaner_ModeFillsEveryColumn(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("n", nil, 2.5, 2.5, math.NaN(), 4.5),
		dataframe.NewSeriesString("s", nil, "a", "a", nil, "b"),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.StrategyMode,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	n := out.Series[0].(*dataframe.SeriesFloat64)
	if n.Values[2] != 2.5 {
		t.Errorf("numeric mode fill = %v, want 2.5", n.Values[2])
	}
	if v := out.Series[1].Value(2); v != "a" {
		t.Errorf("string mode fill = %v, want a", v)
	}
	if a := findAction(report, "n", "mode fill"); a == nil {
		t.Errorf("missing mode fill action for n")
	}
	if a := findAction(report, "s", "mode fill"); a == nil {
		t.Errorf("missing mode fill action for s")
	}
}

func TestCleaner_ForwardFillKeepsLeadingGap(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesString("s", nil, nil, "a", nil, "b"),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.StrategyForwardFill,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if v := out.Series[0].Value(0); v != nil {
		t.Errorf("leading gap = %v, want missing", v)
	}
	if v := out.Series[0].Value(2); v != "a" {
		t.Errorf("filled cell = %v, want a", v)
	}
	if report.MissingAfter != 1 {
		t.Errorf("MissingAfter = %d, want 1", report.MissingAfter)
	}
	if a := findAction(report, "s", "forward fill"); a == nil || a.Filled != 1 {
		t.Errorf("forward fill action = %+v", a)
	}
}

func TestCleaner_ReportsIQROutliers(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("v", nil, 10.5, 11.5, 12.5, 13.5, 100.5),
		dataframe.NewSeriesFloat64("clean", nil, 1.5, 2.5, 3.5, 4.5, 5.5),
	)

	_, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.StrategyDrop,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if len(report.Outliers) != 1 {
		t.Fatalf("Outliers = %+v, want one entry", report.Outliers)
	}
	o := report.Outliers[0]
	if o.Column != "v" || o.Count != 1 || o.Pct != 20.0 {
		t.Errorf("outlier summary = %+v, want v/1/20.0", o)
	}
}

func TestCleaner_ReportsZScoreOutliers(t *testing.T) {
	vals := make([]interface{}, 21)
	for i := 0; i < 20; i++ {
		vals[i] = 10.5
	}
	vals[20] = 1000.5

	df := dataframe.NewDataFrame(dataframe.NewSeriesFloat64("v", nil, vals...))

	_, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy:      autoinsight.StrategyDrop,
		OutlierMethod: autoinsight.OutlierZScore,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if len(report.Outliers) != 1 {
		t.Fatalf("Outliers = %+v, want one entry", report.Outliers)
	}
	o := report.Outliers[0]
	if o.Column != "v" || o.Count != 1 || o.Pct != 4.76 {
		t.Errorf("outlier summary = %+v, want v/1/4.76", o)
	}
}

func TestCleaner_DowncastsIntegralColumns(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("units", nil, 1.0, 2.0, 3.0, 4.0),
		dataframe.NewSeriesFloat64("price", nil, 1.5, 2.5, 3.5, 4.5),
	)

	out, report, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.StrategyMode,
	})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if len(report.Downcast) != 1 || report.Downcast[0] != "units" {
		t.Fatalf("Downcast = %v, want [units]", report.Downcast)
	}
	units, ok := out.Series[0].(*dataframe.SeriesInt64)
	if !ok {
		t.Fatalf("units type = %T, want *dataframe.SeriesInt64", out.Series[0])
	}
	if v := units.Value(0); v != int64(1) {
		t.Errorf("units[0] = %v, want 1", v)
	}
	if _, ok := out.Series[1].(*dataframe.SeriesFloat64); !ok {
		t.Errorf("price type = %T, want *dataframe.SeriesFloat64", out.Series[1])
	}
}

func TestCleaner_InvalidStrategy(t *testing.T) {
	df := dataframe.NewDataFrame(dataframe.NewSeriesFloat64("v", nil, 1.5))

	_, _, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		Strategy: autoinsight.CleaningStrategy("bogus"),
	})
	if !errors.Is(err, autoinsight.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestCleaner_InvalidOutlierMethod(t *testing.T) {
	df := dataframe.NewDataFrame(dataframe.NewSeriesFloat64("v", nil, 1.5))

	_, _, err := newTestCleaner().Clean(context.Background(), df, autoinsight.CleaningConfig{
		OutlierMethod: autoinsight.OutlierMethod("bogus"),
	})
	if !errors.Is(err, autoinsight.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestCleaner_NilFrame(t *testing.T) {
	if _, _, err := newTestCleaner().Clean(context.Background(), nil, autoinsight.CleaningConfig{}); err == nil {
		t.Fatal("expected an error for a nil table")
	}
}

func TestCleaner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	df := dataframe.NewDataFrame(dataframe.NewSeriesFloat64("v", nil, 1.5))
	if _, _, err := newTestCleaner().Clean(ctx, df, autoinsight.CleaningConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestNew_NilLoggerDoesNotPanic(t *testing.T) {
	c := New(nil)
	df := dataframe.NewDataFrame(dataframe.NewSeriesFloat64("v", nil, 1.5))
	if _, _, err := c.Clean(context.Background(), df, autoinsight.CleaningConfig{}); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
}
