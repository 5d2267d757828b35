package dataset

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// FootprintBytes estimates the deep in-memory size of a frame,
// including string contents rather than just slice headers.
func FootprintBytes(df *dataframe.DataFrame) int64 {
	var total int64
	for _, s := range df.Series {
		switch typed := s.(type) {
		case *dataframe.SeriesFloat64:
			total += int64(len(typed.Values)) * 8
		case *dataframe.SeriesInt64:
			// backing slice of pointers plus the pointed-to values
			total += int64(s.NRows()) * 16
		case *dataframe.SeriesTime:
			total += int64(s.NRows()) * 32
		case *dataframe.SeriesString:
			for row := 0; row < s.NRows(); row++ {
				total += 24
				if v := s.Value(row); v != nil {
					if str, ok := v.(string); ok {
						total += int64(len(str))
					}
				}
			}
		default:
			total += int64(s.NRows()) * 16
		}
	}
	return total
}

// FootprintMB returns the estimated frame size in megabytes.
func FootprintMB(df *dataframe.DataFrame) float64 {
	return float64(FootprintBytes(df)) / (1024 * 1024)
}
