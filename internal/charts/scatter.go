package charts

import (
	"fmt"
	"math"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// scatterMatrix renders the pairwise scatter grid with histograms on
// the diagonal. Returns nil bytes below two numeric columns.
func (r *Renderer) scatterMatrix(df *dataframe.DataFrame) ([]byte, error) {
	cols := numericChartColumns(df)
	if len(cols) > maxScatterColumns {
		cols = cols[:maxScatterColumns]
	}
	if len(cols) < 2 {
		return nil, nil
	}

	n := len(cols)
	panels := make([][]*plot.Plot, n)
	for i := range panels {
		panels[i] = make([]*plot.Plot, n)
		for j := range panels[i] {
			var p *plot.Plot
			var err error
			if i == j {
				p, err = histogramPanel(cols[i])
				if p == nil && err == nil {
					p = newPanel(cols[i].name)
				}
			} else {
				p, err = scatterPanel(cols[j], cols[i])
			}
			if err != nil {
				return nil, err
			}
			panels[i][j] = p
		}
	}
	return renderTiles(panels, 2.6*vg.Inch, 2.6*vg.Inch)
}

// scatterPanel plots ycol against xcol over rows where both are
// present.
func scatterPanel(xcol, ycol numericChartColumn) (*plot.Plot, error) {
	var xys plotter.XYs
	rows := len(xcol.full)
	if len(ycol.full) < rows {
		rows = len(ycol.full)
	}
	for row := 0; row < rows; row++ {
		x, y := xcol.full[row], ycol.full[row]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
	}

	p := newPanel(fmt.Sprintf("%s vs %s", ycol.name, xcol.name))
	if len(xys) == 0 {
		return p, nil
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = fillBlue
	sc.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(sc)
	return p, nil
}
