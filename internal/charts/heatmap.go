package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// correlationGrid adapts a correlation matrix to the heat map's grid
// interface. Row 0 of the matrix maps to the bottom of the plot.
type correlationGrid struct {
	names []string
	cells [][]float64
}

func (g correlationGrid) Dims() (c, r int)   { return len(g.names), len(g.names) }
func (g correlationGrid) Z(c, r int) float64 { return g.cells[r][c] }
func (g correlationGrid) X(c int) float64    { return float64(c) }
func (g correlationGrid) Y(r int) float64    { return float64(r) }

// correlationHeatmap renders the analyzer's matrix on a fixed -1..1
// diverging scale. Returns nil bytes when the analysis is absent or
// covers fewer than two numeric columns.
func (r *Renderer) correlationHeatmap(analysis *autoinsight.AnalysisResult) ([]byte, error) {
	if analysis == nil || analysis.CorrelationMatrix == nil || len(analysis.CorrelationColumns) < 2 {
		return nil, nil
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	g := correlationGrid{names: analysis.CorrelationColumns, cells: analysis.CorrelationMatrix}
	h := plotter.NewHeatMap(g, colors.Palette(255))
	h.Min = -1
	h.Max = 1

	p := newPanel(fmt.Sprintf("Correlation (%s)", analysis.Method))
	p.Add(h)

	ticks := make([]plot.Tick, len(g.names))
	for i, name := range g.names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	return renderSingle(p, 6*vg.Inch, 5*vg.Inch)
}
