package cleaning

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/gonum/stat"

	"github.com/autoinsight-io/autoinsight/internal/dataset"
)

// fillConstant replaces missing cells with value, returning the new
// series and the number of cells filled.
func fillConstant(s dataframe.Series, value interface{}) (dataframe.Series, int) {
	if _, isInt := s.(*dataframe.SeriesInt64); isInt {
		if f, isFloat := value.(float64); isFloat {
			value = int64(math.Round(f))
		}
	}

	filled := 0
	vals := make([]interface{}, s.NRows())
	for row := 0; row < s.NRows(); row++ {
		if dataset.IsMissing(s, row) {
			vals[row] = value
			filled++
		} else {
			vals[row] = s.Value(row)
		}
	}
	return dataset.BuildLike(s, vals), filled
}

// forwardFill propagates the last seen value into gaps. Leading gaps
// stay missing.
func forwardFill(s dataframe.Series) (dataframe.Series, int) {
	filled := 0
	var last interface{}
	vals := make([]interface{}, s.NRows())
	for row := 0; row < s.NRows(); row++ {
		if dataset.IsMissing(s, row) {
			if last != nil {
				vals[row] = last
				filled++
			}
			continue
		}
		last = s.Value(row)
		vals[row] = last
	}
	return dataset.BuildLike(s, vals), filled
}

// meanOf returns the mean of the non-missing values.
func meanOf(s dataframe.Series) (float64, bool) {
	vals := numericValues(s)
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}

// medianOf returns the median of the non-missing values.
func medianOf(s dataframe.Series) (float64, bool) {
	vals := numericValues(s)
	if len(vals) == 0 {
		return 0, false
	}
	m, err := stats.Median(vals)
	if err != nil {
		return 0, false
	}
	return m, true
}

// modeOf returns the most frequent non-missing value. Numeric columns
// go through the stats package; other columns are counted directly with
// ties broken by the smaller value so the result is deterministic.
func modeOf(s dataframe.Series) (interface{}, bool) {
	if vals := numericValues(s); vals != nil {
		modes, err := stats.Mode(vals)
		if err == nil && len(modes) > 0 {
			return modes[0], true
		}
		// every value unique: fall back to the smallest, matching the
		// sorted-first convention
		m, err := stats.Min(vals)
		if err != nil {
			return nil, false
		}
		return m, true
	}

	if ts, ok := s.(*dataframe.SeriesTime); ok {
		return timeMode(ts)
	}

	counts := make(map[string]int)
	for row := 0; row < s.NRows(); row++ {
		if dataset.IsMissing(s, row) {
			continue
		}
		if v, ok := s.Value(row).(string); ok {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best, true
}

// timeMode counts time values directly, breaking ties toward the
// earliest instant.
func timeMode(s *dataframe.SeriesTime) (interface{}, bool) {
	vals, _ := dataset.TimeValues(s)
	if len(vals) == 0 {
		return nil, false
	}

	counts := make(map[time.Time]int)
	for _, t := range vals {
		counts[t]++
	}

	var best time.Time
	bestCount := -1
	for t, n := range counts {
		if n > bestCount || (n == bestCount && t.Before(best)) {
			best = t
			bestCount = n
		}
	}
	return best, true
}
