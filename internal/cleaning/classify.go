package cleaning

import (
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// categoricalUniqueLimit is the distinct-count ceiling below which a
// string column counts as categorical.
const categoricalUniqueLimit = 20

// categoricalShare is the distinct-to-rows ratio below which a string
// column counts as categorical regardless of the absolute count.
const categoricalShare = 0.05

// dateVoteShare is the fraction of non-missing cells that must parse as
// dates before a string column is reclassified as datetime.
const dateVoteShare = 0.8

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
}

// Classify assigns a kind to every column. Numeric and time series map
// directly; string columns become datetime when enough cells parse as
// dates, categorical when their distinct count is small, and text
// otherwise. The decision is made once per run and never revisited.
func Classify(df *dataframe.DataFrame) map[string]autoinsight.ColumnKind {
	kinds := make(map[string]autoinsight.ColumnKind, len(df.Series))
	for _, s := range df.Series {
		kinds[s.Name()] = classifySeries(s)
	}
	return kinds
}

func classifySeries(s dataframe.Series) autoinsight.ColumnKind {
	switch typed := s.(type) {
	case *dataframe.SeriesFloat64, *dataframe.SeriesInt64:
		return autoinsight.ColumnNumeric
	case *dataframe.SeriesTime:
		return autoinsight.ColumnDatetime
	case *dataframe.SeriesString:
		return classifyStrings(typed)
	default:
		return autoinsight.ColumnText
	}
}

func classifyStrings(s *dataframe.SeriesString) autoinsight.ColumnKind {
	nRows := s.NRows()
	unique := make(map[string]struct{})
	nonMissing := 0
	dateHits := 0

	for row := 0; row < nRows; row++ {
		v := s.Value(row)
		if v == nil {
			continue
		}
		cell := v.(string)
		nonMissing++
		unique[cell] = struct{}{}
		if parsesAsDate(cell) {
			dateHits++
		}
	}

	if nonMissing == 0 {
		return autoinsight.ColumnText
	}
	if float64(dateHits) >= dateVoteShare*float64(nonMissing) {
		return autoinsight.ColumnDatetime
	}
	if len(unique) < categoricalUniqueLimit || float64(len(unique)) < categoricalShare*float64(nRows) {
		return autoinsight.ColumnCategorical
	}
	return autoinsight.ColumnText
}

func parsesAsDate(cell string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return true
		}
	}
	return false
}

// promoteDatetimes copies the frame, converting string columns
// classified as datetime into real time series. Cells that fail to
// parse become missing.
func promoteDatetimes(df *dataframe.DataFrame, kinds map[string]autoinsight.ColumnKind) *dataframe.DataFrame {
	series := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		str, isString := s.(*dataframe.SeriesString)
		if !isString || kinds[s.Name()] != autoinsight.ColumnDatetime {
			series = append(series, s.Copy())
			continue
		}

		vals := make([]interface{}, str.NRows())
		for row := 0; row < str.NRows(); row++ {
			v := str.Value(row)
			if v == nil {
				continue
			}
			if t, ok := parseDateCell(v.(string)); ok {
				vals[row] = t
			}
		}
		series = append(series, dataframe.NewSeriesTime(s.Name(), nil, vals...))
	}
	return dataframe.NewDataFrame(series...)
}

func parseDateCell(cell string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// numericValues extracts the non-missing float values from a numeric
// series of either storage width.
func numericValues(s dataframe.Series) []float64 {
	switch typed := s.(type) {
	case *dataframe.SeriesFloat64:
		vals, _ := dataset.FloatValues(typed)
		return vals
	case *dataframe.SeriesInt64:
		var vals []float64
		for row := 0; row < typed.NRows(); row++ {
			if v := typed.Value(row); v != nil {
				if i, ok := v.(int64); ok {
					vals = append(vals, float64(i))
				}
			}
		}
		return vals
	default:
		return nil
	}
}
