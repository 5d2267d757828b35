package cleaning

import (
	"math"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// downcastIntegral converts float columns whose non-missing values are
// all integral into int64 storage, so count and id-like columns render
// without decimal points. Returns the new frame and the converted
// column names.
func downcastIntegral(df *dataframe.DataFrame) (*dataframe.DataFrame, []string) {
	var converted []string
	series := make([]dataframe.Series, 0, len(df.Series))

	for _, s := range df.Series {
		f, ok := s.(*dataframe.SeriesFloat64)
		if !ok {
			series = append(series, s)
			continue
		}

		integral := true
		hasValue := false
		for _, v := range f.Values {
			if math.IsNaN(v) {
				continue
			}
			hasValue = true
			if v != math.Trunc(v) || math.Abs(v) > float64(math.MaxInt64) {
				integral = false
				break
			}
		}
		if !integral || !hasValue {
			series = append(series, s)
			continue
		}

		vals := make([]interface{}, len(f.Values))
		for i, v := range f.Values {
			if !math.IsNaN(v) {
				vals[i] = int64(v)
			}
		}
		series = append(series, dataframe.NewSeriesInt64(s.Name(), nil, vals...))
		converted = append(converted, s.Name())
	}

	return dataframe.NewDataFrame(series...), converted
}
