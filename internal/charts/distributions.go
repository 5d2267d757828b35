package charts

import (
	"image/color"

	"github.com/montanaflynn/stats"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// distributionGrid renders a histogram per numeric column with mean and
// median guide lines. Returns nil bytes when no numeric column has a
// spread worth binning.
func (r *Renderer) distributionGrid(df *dataframe.DataFrame) ([]byte, error) {
	cols := numericChartColumns(df)
	if len(cols) > maxHistColumns {
		cols = cols[:maxHistColumns]
	}

	var panels []*plot.Plot
	for _, col := range cols {
		p, err := histogramPanel(col)
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

	width := histGridWidth
	if len(panels) < width {
		width = len(panels)
	}
	return renderTiles(grid(panels, width), 4*vg.Inch, 3*vg.Inch)
}

// histogramPanel builds one histogram plot, or nil for a constant
// column that cannot be binned.
func histogramPanel(col numericChartColumn) (*plot.Plot, error) {
	lo, _ := stats.Min(col.vals)
	hi, _ := stats.Max(col.vals)
	if lo == hi {
		return nil, nil
	}

	p := newPanel(col.name)
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(col.vals), histBins)
	if err != nil {
		return nil, err
	}
	h.FillColor = fillBlue
	p.Add(h)

	_, _, _, ymax := h.DataRange()
	mean := stat.Mean(col.vals, nil)
	if err := addGuide(p, mean, ymax, meanRed); err != nil {
		return nil, err
	}
	if median, merr := stats.Median(col.vals); merr == nil {
		if err := addGuide(p, median, ymax, medianGreen); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// addGuide draws a dashed vertical line at x spanning the histogram
// height.
func addGuide(p *plot.Plot, x, ymax float64, c color.Color) error {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: ymax}})
	if err != nil {
		return err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(line)
	return nil
}
