package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/gonum/stat"

	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// describeColumns computes descriptive statistics for every numeric
// column that still has observations.
func describeColumns(cols []numericColumn, rows int) []autoinsight.ColumnStats {
	var out []autoinsight.ColumnStats
	for _, col := range cols {
		if len(col.vals) == 0 {
			continue
		}
		out = append(out, describeColumn(col, rows))
	}
	return out
}

func describeColumn(col numericColumn, rows int) autoinsight.ColumnStats {
	vals := col.vals
	missing := rows - len(vals)

	cs := autoinsight.ColumnStats{
		Column:  col.name,
		Count:   len(vals),
		Missing: missing,
	}
	if rows > 0 {
		cs.MissingPct = round2(float64(missing) / float64(rows) * 100)
	}

	cs.Mean = round2(stat.Mean(vals, nil))
	if len(vals) > 1 {
		cs.Std = round2(stat.StdDev(vals, nil))
		cs.Variance = round2(stat.Variance(vals, nil))
	}
	if len(vals) > 2 {
		cs.Skewness = round2(noNaN(stat.Skew(vals, nil)))
	}
	if len(vals) > 3 {
		cs.Kurtosis = round2(noNaN(stat.ExKurtosis(vals, nil)))
	}

	if v, err := stats.Min(vals); err == nil {
		cs.Min = round2(v)
	}
	if v, err := stats.Percentile(vals, 25); err == nil {
		cs.Q25 = round2(v)
	}
	if v, err := stats.Median(vals); err == nil {
		cs.Median = round2(v)
	}
	if v, err := stats.Percentile(vals, 75); err == nil {
		cs.Q75 = round2(v)
	}
	if v, err := stats.Max(vals); err == nil {
		cs.Max = round2(v)
	}
	return cs
}

// profileCategoricals summarizes every categorical column: distinct
// count, the five most frequent values, and the share of the leader.
// Ties order by count first, then value.
func profileCategoricals(df *dataframe.DataFrame, kinds map[string]autoinsight.ColumnKind) []autoinsight.CategoricalProfile {
	var out []autoinsight.CategoricalProfile
	for _, s := range df.Series {
		if kinds[s.Name()] != autoinsight.ColumnCategorical {
			continue
		}

		counts := make(map[string]int)
		total := 0
		for row := 0; row < s.NRows(); row++ {
			if dataset.IsMissing(s, row) {
				continue
			}
			if v, ok := s.Value(row).(string); ok {
				counts[v]++
				total++
			}
		}
		if total == 0 {
			continue
		}

		ordered := make([]autoinsight.ValueCount, 0, len(counts))
		for v, n := range counts {
			ordered = append(ordered, autoinsight.ValueCount{Value: v, Count: n})
		}
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].Count != ordered[j].Count {
				return ordered[i].Count > ordered[j].Count
			}
			return ordered[i].Value < ordered[j].Value
		})

		top := ordered
		if len(top) > 5 {
			top = top[:5]
		}

		out = append(out, autoinsight.CategoricalProfile{
			Column:           s.Name(),
			Unique:           len(counts),
			Top:              top,
			MostCommon:       ordered[0].Value,
			ConcentrationPct: round2(float64(ordered[0].Count) / float64(total) * 100),
		})
	}
	return out
}

// varianceRanking orders numeric columns by coefficient of variation,
// most variable first. Columns with a zero mean get a zero CV.
func varianceRanking(columnStats []autoinsight.ColumnStats) []autoinsight.VarianceEntry {
	var entries []autoinsight.VarianceEntry
	for _, cs := range columnStats {
		if cs.Count < 2 {
			continue
		}
		cv := 0.0
		if cs.Mean != 0 {
			cv = round2(math.Abs(cs.Std / cs.Mean))
		}
		entries = append(entries, autoinsight.VarianceEntry{
			Column:   cs.Column,
			Variance: cs.Variance,
			CV:       cv,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CV > entries[j].CV })
	return entries
}
