package dataset

import (
	"fmt"
	"math"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// IsMissing reports whether the cell at row in s holds no value.
// Float series encode missing cells as NaN, other series as nil.
func IsMissing(s dataframe.Series, row int) bool {
	v := s.Value(row)
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok {
		return math.IsNaN(f)
	}
	return false
}

// MissingCount returns the number of missing cells in s.
func MissingCount(s dataframe.Series) int {
	n := 0
	for row := 0; row < s.NRows(); row++ {
		if IsMissing(s, row) {
			n++
		}
	}
	return n
}

// MissingCells returns the total number of missing cells across df.
func MissingCells(df *dataframe.DataFrame) int {
	total := 0
	for _, s := range df.Series {
		total += MissingCount(s)
	}
	return total
}

// FloatColumn returns the row-aligned float view of a numeric series,
// with NaN in missing cells. ok is false for non-numeric series.
func FloatColumn(s dataframe.Series) ([]float64, bool) {
	switch typed := s.(type) {
	case *dataframe.SeriesFloat64:
		return append([]float64(nil), typed.Values...), true
	case *dataframe.SeriesInt64:
		out := make([]float64, typed.NRows())
		for row := range out {
			if v, ok := typed.Value(row).(int64); ok {
				out[row] = float64(v)
			} else {
				out[row] = math.NaN()
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// FloatValues returns the non-missing values of a float64 series along
// with the row index each value came from.
func FloatValues(s *dataframe.SeriesFloat64) (vals []float64, rows []int) {
	for row, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		vals = append(vals, v)
		rows = append(rows, row)
	}
	return vals, rows
}

// SeriesByName returns the series with the given name.
func SeriesByName(df *dataframe.DataFrame, name string) (dataframe.Series, bool) {
	for _, s := range df.Series {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// SelectColumns builds a new frame containing only the named columns, in
// the given order. The original frame is not modified.
func SelectColumns(df *dataframe.DataFrame, names []string) (*dataframe.DataFrame, error) {
	selected := make([]dataframe.Series, 0, len(names))
	for _, name := range names {
		s, ok := SeriesByName(df, name)
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		selected = append(selected, s.Copy())
	}
	return dataframe.NewDataFrame(selected...), nil
}

// FilterRows builds a new frame containing only the rows for which keep
// returns true. The original frame is not modified.
func FilterRows(df *dataframe.DataFrame, keep func(row int) bool) *dataframe.DataFrame {
	kept := make([]int, 0, df.NRows())
	for row := 0; row < df.NRows(); row++ {
		if keep(row) {
			kept = append(kept, row)
		}
	}

	rebuilt := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		rebuilt = append(rebuilt, copyRows(s, kept))
	}
	return dataframe.NewDataFrame(rebuilt...)
}

// copyRows builds a series of the same type holding only the given rows.
func copyRows(s dataframe.Series, rows []int) dataframe.Series {
	vals := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		if IsMissing(s, row) {
			vals = append(vals, nil)
		} else {
			vals = append(vals, s.Value(row))
		}
	}
	return BuildLike(s, vals)
}

// BuildLike constructs a series of the same concrete type as template
// holding vals, with nil entries marking missing cells.
func BuildLike(template dataframe.Series, vals []interface{}) dataframe.Series {
	switch template.(type) {
	case *dataframe.SeriesFloat64:
		return dataframe.NewSeriesFloat64(template.Name(), nil, vals...)
	case *dataframe.SeriesInt64:
		return dataframe.NewSeriesInt64(template.Name(), nil, vals...)
	case *dataframe.SeriesTime:
		return dataframe.NewSeriesTime(template.Name(), nil, vals...)
	default:
		return dataframe.NewSeriesString(template.Name(), nil, vals...)
	}
}

// Head returns a copy of the first n rows of df. If df has fewer than n
// rows the whole frame is copied. The original frame is not modified.
func Head(df *dataframe.DataFrame, n int) *dataframe.DataFrame {
	if df.NRows() == 0 || n <= 0 {
		return FilterRows(df, func(int) bool { return false })
	}
	if n > df.NRows() {
		n = df.NRows()
	}
	end := n - 1
	return df.Copy(dataframe.Range{End: &end})
}

// TimeValues returns the non-missing values of a time series along with
// the row index each value came from.
func TimeValues(s *dataframe.SeriesTime) (vals []time.Time, rows []int) {
	for row := 0; row < s.NRows(); row++ {
		v := s.Value(row)
		if v == nil {
			continue
		}
		if t, ok := v.(time.Time); ok {
			vals = append(vals, t)
			rows = append(rows, row)
		}
	}
	return vals, rows
}
