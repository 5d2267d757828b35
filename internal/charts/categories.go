package charts

import (
	"sort"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/autoinsight-io/autoinsight/internal/cleaning"
	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// categoryBars renders the top value counts of each categorical column
// as bar charts. Returns nil bytes when the table has no categorical
// columns.
func (r *Renderer) categoryBars(df *dataframe.DataFrame) ([]byte, error) {
	kinds := cleaning.Classify(df)

	var panels []*plot.Plot
	for _, s := range df.Series {
		if kinds[s.Name()] != autoinsight.ColumnCategorical {
			continue
		}
		if len(panels) == maxBarColumns {
			break
		}
		p, err := barPanel(s)
		if err != nil {
			return nil, err
		}
		if p != nil {
			panels = append(panels, p)
		}
	}
	if len(panels) == 0 {
		return nil, nil
	}

	width := barGridWidth
	if len(panels) < width {
		width = len(panels)
	}
	return renderTiles(grid(panels, width), 5*vg.Inch, 3*vg.Inch)
}

// barPanel builds one bar chart of the most common values in a
// categorical column, highest count first.
func barPanel(s dataframe.Series) (*plot.Plot, error) {
	counts := make(map[string]int)
	for row := 0; row < s.NRows(); row++ {
		if dataset.IsMissing(s, row) {
			continue
		}
		if v, ok := s.Value(row).(string); ok {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}

	type valueCount struct {
		value string
		count int
	}
	ordered := make([]valueCount, 0, len(counts))
	for v, n := range counts {
		ordered = append(ordered, valueCount{value: v, count: n})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].value < ordered[j].value
	})
	if len(ordered) > barTopValues {
		ordered = ordered[:barTopValues]
	}

	values := make(plotter.Values, len(ordered))
	labels := make([]string, len(ordered))
	for i, vc := range ordered {
		values[i] = float64(vc.count)
		labels[i] = vc.value
	}

	p := newPanel(s.Name())
	p.Y.Label.Text = "count"

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, err
	}
	bars.Color = fillBlue
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}
