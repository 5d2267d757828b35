package analysis

import (
	"fmt"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// idUniqueShare is the distinct-value share above which a column reads
// as an identifier.
const idUniqueShare = 0.8

// idMinRows is the smallest table the identifier check runs on.
const idMinRows = 10

// missingInsightPct is the missing percentage above which a column is
// called out.
const missingInsightPct = 5.0

// buildInsights renders the ordered findings: dataset shape, columns
// with notable gaps, identifier-like columns, the strongest
// correlation, the most variable column, and trends.
func buildInsights(df *dataframe.DataFrame, result *autoinsight.AnalysisResult) []string {
	insights := []string{
		fmt.Sprintf("Dataset has %d rows and %d columns", df.NRows(), len(df.Series)),
	}

	rows := df.NRows()
	if rows > 0 {
		for _, s := range df.Series {
			pct := float64(dataset.MissingCount(s)) / float64(rows) * 100
			if pct > missingInsightPct {
				insights = append(insights, fmt.Sprintf("Column %q is missing %.1f%% of its values", s.Name(), pct))
			}
		}
	}
	if rows >= idMinRows {
		for _, s := range df.Series {
			if share, ok := identifierShare(s); ok {
				insights = append(insights, fmt.Sprintf("Column %q looks like an identifier: %.0f%% of its values are unique", s.Name(), share*100))
			}
		}
	}

	if len(result.NotablePairs) > 0 {
		top := result.NotablePairs[0]
		direction := "positive"
		if top.R < 0 {
			direction = "negative"
		}
		insights = append(insights, fmt.Sprintf("%s %s correlation between %q and %q (r = %.2f)",
			capitalize(top.Strength), direction, top.A, top.B, top.R))
	}

	if len(result.VarianceRanking) > 0 && result.VarianceRanking[0].CV > 0 {
		top := result.VarianceRanking[0]
		insights = append(insights, fmt.Sprintf("Column %q has the highest relative variability (CV = %.2f)", top.Column, top.CV))
	}

	for _, tr := range result.Trends {
		word := "an upward"
		if tr.Direction == "decreasing" {
			word = "a downward"
		}
		insights = append(insights, fmt.Sprintf("Column %q shows %s trend over the row order", tr.Column, word))
	}
	return insights
}

// identifierShare reports the distinct share of an integer or string
// column when it crosses the identifier threshold. Continuous float
// and time columns are skipped; near-total uniqueness is expected
// there and says nothing.
func identifierShare(s dataframe.Series) (float64, bool) {
	switch s.(type) {
	case *dataframe.SeriesInt64, *dataframe.SeriesString:
	default:
		return 0, false
	}

	seen := make(map[interface{}]struct{})
	nonMissing := 0
	for row := 0; row < s.NRows(); row++ {
		if dataset.IsMissing(s, row) {
			continue
		}
		nonMissing++
		seen[s.Value(row)] = struct{}{}
	}
	if nonMissing == 0 {
		return 0, false
	}

	share := float64(len(seen)) / float64(nonMissing)
	return share, share > idUniqueShare
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
