package analysis

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// normalityMinObservations is the smallest sample the Jarque-Bera
// screen runs on.
const normalityMinObservations = 8

// normalPValue is the significance level above which a column passes
// the screen.
const normalPValue = 0.05

// checkNormality screens every numeric column with enough observations
// using the Jarque-Bera statistic against a chi-squared distribution
// with two degrees of freedom.
func checkNormality(cols []numericColumn) []autoinsight.NormalityCheck {
	var checks []autoinsight.NormalityCheck
	chi2 := distuv.ChiSquared{K: 2}
	for _, col := range cols {
		if len(col.vals) < normalityMinObservations {
			continue
		}

		skew := noNaN(stat.Skew(col.vals, nil))
		kurt := noNaN(stat.ExKurtosis(col.vals, nil))
		n := float64(len(col.vals))
		jb := n / 6 * (skew*skew + kurt*kurt/4)
		p := chi2.Survival(jb)

		checks = append(checks, autoinsight.NormalityCheck{
			Column:    col.name,
			Statistic: round2(jb),
			PValue:    round2(p),
			Normal:    p > normalPValue,
		})
	}
	return checks
}
