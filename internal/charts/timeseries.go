package charts

import (
	"math"
	"sort"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// timeSeriesPanel plots numeric columns against the first datetime
// column. Returns nil bytes when the table has no datetime column or
// nothing numeric to plot against it.
func (r *Renderer) timeSeriesPanel(df *dataframe.DataFrame) ([]byte, error) {
	var times *dataframe.SeriesTime
	for _, s := range df.Series {
		if ts, ok := s.(*dataframe.SeriesTime); ok {
			times = ts
			break
		}
	}
	if times == nil {
		return nil, nil
	}

	cols := numericChartColumns(df)
	if len(cols) > maxSeriesColumns {
		cols = cols[:maxSeriesColumns]
	}
	if len(cols) == 0 {
		return nil, nil
	}

	p := newPanel("Values over " + times.Name())
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Label.Text = "value"
	p.Legend.Top = true

	drawn := 0
	for i, col := range cols {
		xys := timePoints(times, col.full)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = seriesColors[i%len(seriesColors)]
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(col.name, line)
		drawn++
	}
	if drawn == 0 {
		return nil, nil
	}
	return renderSingle(p, 8*vg.Inch, 4*vg.Inch)
}

// timePoints pairs timestamps with values, dropping rows where either
// side is missing, and sorts by time so the line reads left to right.
func timePoints(times *dataframe.SeriesTime, vals []float64) plotter.XYs {
	var xys plotter.XYs
	rows := times.NRows()
	if len(vals) < rows {
		rows = len(vals)
	}
	for row := 0; row < rows; row++ {
		tv := times.Value(row)
		if tv == nil || math.IsNaN(vals[row]) {
			continue
		}
		t, ok := tv.(time.Time)
		if !ok {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(t.Unix()), Y: vals[row]})
	}
	sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
	return xys
}
