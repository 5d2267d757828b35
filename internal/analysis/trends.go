package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// trendSlopeShare scales a column's standard deviation into the
// minimum slope magnitude that counts as a trend.
const trendSlopeShare = 0.01

// detectTrends fits a least-squares line over row order for every
// numeric column and keeps the slopes that clear the threshold.
func detectTrends(cols []numericColumn) []autoinsight.TrendResult {
	var trends []autoinsight.TrendResult
	for _, col := range cols {
		if len(col.vals) < 3 {
			continue
		}
		std := stat.StdDev(col.vals, nil)
		if std == 0 || math.IsNaN(std) {
			continue
		}

		xs := make([]float64, len(col.rows))
		for i, row := range col.rows {
			xs[i] = float64(row)
		}
		_, slope := stat.LinearRegression(xs, col.vals, nil, false)
		if math.Abs(slope) <= trendSlopeShare*std {
			continue
		}

		direction := "increasing"
		if slope < 0 {
			direction = "decreasing"
		}
		trends = append(trends, autoinsight.TrendResult{
			Column:    col.name,
			Slope:     slope,
			Direction: direction,
		})
	}
	return trends
}
