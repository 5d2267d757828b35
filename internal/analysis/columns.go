package analysis

import (
	"math"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/dataset"
)

// numericColumn carries the float view of one numeric series. full is
// row aligned with NaN in missing cells; vals and rows hold the
// non-missing observations in order.
type numericColumn struct {
	name string
	full []float64
	vals []float64
	rows []int
}

// numericColumns extracts every numeric series in column order.
func numericColumns(df *dataframe.DataFrame) []numericColumn {
	var cols []numericColumn
	for _, s := range df.Series {
		full, ok := dataset.FloatColumn(s)
		if !ok {
			continue
		}

		col := numericColumn{name: s.Name(), full: full}
		for row, v := range full {
			if math.IsNaN(v) {
				continue
			}
			col.vals = append(col.vals, v)
			col.rows = append(col.rows, row)
		}
		cols = append(cols, col)
	}
	return cols
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// noNaN maps NaN and infinities to zero so degenerate columns report
// neutral statistics instead of propagating NaN into the output.
func noNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
