package cleaning

import (
	"math"

	"github.com/montanaflynn/stats"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/gonum/stat"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// iqrFence is the multiplier applied to the interquartile range.
const iqrFence = 1.5

// zScoreCutoff flags values more than this many standard deviations
// from the mean.
const zScoreCutoff = 3.0

// detectOutliers flags outliers in every numeric column of the frame.
// Columns without outliers are omitted from the result.
func detectOutliers(df *dataframe.DataFrame, method autoinsight.OutlierMethod) []autoinsight.OutlierSummary {
	var summaries []autoinsight.OutlierSummary
	for _, s := range df.Series {
		vals := numericValues(s)
		if len(vals) < 4 {
			continue
		}

		var count int
		switch method {
		case autoinsight.OutlierZScore:
			count = countZScoreOutliers(vals)
		default:
			count = countIQROutliers(vals)
		}
		if count == 0 {
			continue
		}

		summaries = append(summaries, autoinsight.OutlierSummary{
			Column: s.Name(),
			Count:  count,
			Pct:    round2(float64(count) / float64(len(vals)) * 100),
		})
	}
	return summaries
}

func countIQROutliers(vals []float64) int {
	q1, err1 := stats.Percentile(vals, 25)
	q3, err2 := stats.Percentile(vals, 75)
	if err1 != nil || err2 != nil {
		return 0
	}

	iqr := q3 - q1
	lower := q1 - iqrFence*iqr
	upper := q3 + iqrFence*iqr

	count := 0
	for _, v := range vals {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

func countZScoreOutliers(vals []float64) int {
	mean := stat.Mean(vals, nil)
	std := stat.StdDev(vals, nil)
	if std == 0 || math.IsNaN(std) {
		return 0
	}

	count := 0
	for _, v := range vals {
		if math.Abs(v-mean)/std > zScoreCutoff {
			count++
		}
	}
	return count
}
