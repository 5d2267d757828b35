package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// correlationMatrix computes pairwise coefficients over the numeric
// columns, using only rows where both values are present. Cells backed
// by fewer than three common observations, or by a constant column,
// hold zero. Returns nil when fewer than two numeric columns exist.
func correlationMatrix(cols []numericColumn, method autoinsight.CorrelationMethod) ([]string, [][]float64) {
	if len(cols) < 2 {
		return nil, nil
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}

	matrix := make([][]float64, len(cols))
	for i := range matrix {
		matrix[i] = make([]float64, len(cols))
		matrix[i][i] = 1.0
	}

	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := pairCorrelation(cols[i], cols[j], method)
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return names, matrix
}

func pairCorrelation(a, b numericColumn, method autoinsight.CorrelationMethod) float64 {
	var x, y []float64
	for row := range a.full {
		av, bv := a.full[row], b.full[row]
		if math.IsNaN(av) || math.IsNaN(bv) {
			continue
		}
		x = append(x, av)
		y = append(y, bv)
	}
	if len(x) < 3 {
		return 0
	}

	var r float64
	switch method {
	case autoinsight.CorrelationSpearman:
		r = stat.Correlation(averageRanks(x), averageRanks(y), nil)
	case autoinsight.CorrelationKendall:
		r = stat.Kendall(x, y, nil)
	default:
		r = stat.Correlation(x, y, nil)
	}
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// averageRanks converts values to 1-based ranks, assigning tied values
// the mean of the ranks they span.
func averageRanks(vals []float64) []float64 {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && vals[idx[j+1]] == vals[idx[i]] {
			j++
		}
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// notablePairs lists the column pairs whose absolute coefficient
// reaches the threshold, strongest first.
func notablePairs(names []string, matrix [][]float64, threshold float64) []autoinsight.CorrelationPair {
	var pairs []autoinsight.CorrelationPair
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			r := matrix[i][j]
			if math.Abs(r) < threshold {
				continue
			}
			pairs = append(pairs, autoinsight.CorrelationPair{
				A:        names[i],
				B:        names[j],
				R:        round2(r),
				Strength: correlationStrength(r),
			})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	return pairs
}

// correlationStrength maps a coefficient to its descriptive band.
func correlationStrength(r float64) string {
	switch abs := math.Abs(r); {
	case abs >= 0.9:
		return "very strong"
	case abs >= 0.7:
		return "strong"
	case abs >= 0.5:
		return "moderate"
	default:
		return "weak"
	}
}
