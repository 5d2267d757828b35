package charts

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// boxPlotPanel renders one box per numeric column on a shared axis so
// spreads and outliers can be compared at a glance.
func (r *Renderer) boxPlotPanel(df *dataframe.DataFrame) ([]byte, error) {
	cols := numericChartColumns(df)
	if len(cols) > maxBoxColumns {
		cols = cols[:maxBoxColumns]
	}
	if len(cols) == 0 {
		return nil, nil
	}

	p := newPanel("Value spread by column")
	p.Y.Label.Text = "value"

	names := make([]string, 0, len(cols))
	for i, col := range cols {
		box, err := plotter.NewBoxPlot(vg.Points(24), float64(i), plotter.Values(col.vals))
		if err != nil {
			return nil, err
		}
		box.FillColor = fillBlue
		p.Add(box)
		names = append(names, col.name)
	}
	p.NominalX(names...)

	width := vg.Length(len(cols)+2) * vg.Inch
	return renderSingle(p, width, 4*vg.Inch)
}
