package cleaning

import (
	"context"
	"errors"
	"fmt"
	"math"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// Cleaner applies missing-value strategies to loaded tables.
// It implements autoinsight.Cleaner.
type Cleaner struct {
	logger autoinsight.Logger
}

// New creates a Cleaner. A nil logger is replaced with a no-op logger.
func New(logger autoinsight.Logger) *Cleaner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Cleaner{logger: logger}
}

// Clean applies cfg to df and returns a cleaned copy together with a
// report of every change made. The input table is never mutated.
func (c *Cleaner) Clean(ctx context.Context, df *dataframe.DataFrame, cfg autoinsight.CleaningConfig) (*dataframe.DataFrame, *autoinsight.CleaningReport, error) {
	if df == nil {
		return nil, nil, errors.New("table is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = autoinsight.StrategyAuto
	}
	if !strategy.IsValid() {
		return nil, nil, fmt.Errorf("unknown cleaning strategy %q: %w", strategy, autoinsight.ErrInvalidConfig)
	}

	threshold := cfg.DropThreshold
	if threshold <= 0 {
		threshold = autoinsight.DefaultDropThreshold
	}

	method := cfg.OutlierMethod
	if method == "" {
		method = autoinsight.OutlierIQR
	}
	if !method.IsValid() {
		return nil, nil, fmt.Errorf("unknown outlier method %q: %w", method, autoinsight.ErrInvalidConfig)
	}

	report := &autoinsight.CleaningReport{
		Strategy:       strategy,
		RowsBefore:     df.NRows(),
		MissingBefore:  dataset.MissingCells(df),
		MemoryBeforeMB: round2(dataset.FootprintMB(df)),
	}

	kinds := Classify(df)
	work := promoteDatetimes(df, kinds)

	c.logger.Verbose("cleaning %d rows with the %s strategy", report.RowsBefore, strategy)

	switch strategy {
	case autoinsight.StrategyAuto:
		work = c.applyAuto(work, kinds, threshold, report)
	case autoinsight.StrategyDrop:
		work = c.applyDrop(work)
	case autoinsight.StrategyMean, autoinsight.StrategyMedian:
		work = c.applyNumericFill(work, kinds, strategy, report)
	case autoinsight.StrategyMode:
		work = c.applyMode(work, kinds, report)
	case autoinsight.StrategyForwardFill:
		work = c.applyForwardFill(work, kinds, report)
	}

	report.Outliers = detectOutliers(work, method)
	work, report.Downcast = downcastIntegral(work)

	report.RowsAfter = work.NRows()
	report.MissingAfter = dataset.MissingCells(work)
	report.MemoryAfterMB = round2(dataset.FootprintMB(work))

	c.logger.Verbose("cleaning done: %d missing cells before, %d after", report.MissingBefore, report.MissingAfter)
	return work, report, nil
}

// applyAuto drops columns whose missing ratio exceeds the threshold and
// fills the remaining ones according to their kind.
func (c *Cleaner) applyAuto(df *dataframe.DataFrame, kinds map[string]autoinsight.ColumnKind, threshold float64, report *autoinsight.CleaningReport) *dataframe.DataFrame {
	rows := df.NRows()
	kept := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		missing := dataset.MissingCount(s)
		if rows > 0 && float64(missing)/float64(rows) > threshold {
			report.DroppedColumns = append(report.DroppedColumns, s.Name())
			report.Actions = append(report.Actions, autoinsight.ColumnAction{
				Column: s.Name(),
				Kind:   kinds[s.Name()],
				Action: "dropped",
			})
			c.logger.Verbose("dropping column %q: %d of %d values missing", s.Name(), missing, rows)
			continue
		}
		kept = append(kept, c.fillByKind(s, kinds[s.Name()], report))
	}
	return dataframe.NewDataFrame(kept...)
}

// applyDrop removes every row that contains at least one missing value.
func (c *Cleaner) applyDrop(df *dataframe.DataFrame) *dataframe.DataFrame {
	out := dataset.FilterRows(df, func(row int) bool {
		for _, s := range df.Series {
			if dataset.IsMissing(s, row) {
				return false
			}
		}
		return true
	})
	if removed := df.NRows() - out.NRows(); removed > 0 {
		c.logger.Verbose("removed %d rows containing missing values", removed)
	}
	return out
}

// applyNumericFill handles the mean and median strategies: numeric
// columns get the requested statistic, everything else falls back to
// the mode.
func (c *Cleaner) applyNumericFill(df *dataframe.DataFrame, kinds map[string]autoinsight.ColumnKind, strategy autoinsight.CleaningStrategy, report *autoinsight.CleaningReport) *dataframe.DataFrame {
	out := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		if dataset.MissingCount(s) == 0 {
			out = append(out, s)
			continue
		}
		kind := kinds[s.Name()]
		if kind != autoinsight.ColumnNumeric {
			v, ok := modeOf(s)
			out = append(out, c.fillColumn(s, kind, "mode fill", v, ok, report))
			continue
		}
		if strategy == autoinsight.StrategyMean {
			v, ok := meanOf(s)
			out = append(out, c.fillColumn(s, kind, "mean fill", v, ok, report))
			continue
		}
		v, ok := medianOf(s)
		out = append(out, c.fillColumn(s, kind, "median fill", v, ok, report))
	}
	return dataframe.NewDataFrame(out...)
}

// applyMode fills every column with its most frequent value.
func (c *Cleaner) applyMode(df *dataframe.DataFrame, kinds map[string]autoinsight.ColumnKind, report *autoinsight.CleaningReport) *dataframe.DataFrame {
	out := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		if dataset.MissingCount(s) == 0 {
			out = append(out, s)
			continue
		}
		v, ok := modeOf(s)
		out = append(out, c.fillColumn(s, kinds[s.Name()], "mode fill", v, ok, report))
	}
	return dataframe.NewDataFrame(out...)
}

// applyForwardFill propagates the last seen value into gaps in every
// column. Leading gaps stay missing.
func (c *Cleaner) applyForwardFill(df *dataframe.DataFrame, kinds map[string]autoinsight.ColumnKind, report *autoinsight.CleaningReport) *dataframe.DataFrame {
	out := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		if dataset.MissingCount(s) == 0 {
			out = append(out, s)
			continue
		}
		filled, n := forwardFill(s)
		if n > 0 {
			report.Actions = append(report.Actions, autoinsight.ColumnAction{
				Column: s.Name(),
				Kind:   kinds[s.Name()],
				Action: "forward fill",
				Filled: n,
			})
		}
		out = append(out, filled)
	}
	return dataframe.NewDataFrame(out...)
}

// fillByKind fills one column the way the auto strategy prescribes for
// its kind: median for numeric, forward fill for datetime, mode for
// categorical and text.
func (c *Cleaner) fillByKind(s dataframe.Series, kind autoinsight.ColumnKind, report *autoinsight.CleaningReport) dataframe.Series {
	if dataset.MissingCount(s) == 0 {
		return s
	}
	switch kind {
	case autoinsight.ColumnNumeric:
		v, ok := medianOf(s)
		return c.fillColumn(s, kind, "median fill", v, ok, report)
	case autoinsight.ColumnDatetime:
		filled, n := forwardFill(s)
		if n > 0 {
			report.Actions = append(report.Actions, autoinsight.ColumnAction{
				Column: s.Name(),
				Kind:   kind,
				Action: "forward fill",
				Filled: n,
			})
		}
		return filled
	default:
		v, ok := modeOf(s)
		return c.fillColumn(s, kind, "mode fill", v, ok, report)
	}
}

// fillColumn writes value into the missing cells of s and records the
// action. A column whose fill value cannot be computed, such as an
// all-missing column, passes through unchanged.
func (c *Cleaner) fillColumn(s dataframe.Series, kind autoinsight.ColumnKind, action string, value interface{}, ok bool, report *autoinsight.CleaningReport) dataframe.Series {
	if !ok {
		return s
	}
	filled, n := fillConstant(s, value)
	if n > 0 {
		report.Actions = append(report.Actions, autoinsight.ColumnAction{
			Column: s.Name(),
			Kind:   kind,
			Action: action,
			Filled: n,
		})
		c.logger.Verbose("%s on column %q filled %d cells", action, s.Name(), n)
	}
	return filled
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
