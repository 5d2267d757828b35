package charts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/autoinsight-io/autoinsight/internal/dataset"
	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// Output file names inside the output directory.
const (
	fileDistributions = "distributions.png"
	fileCategories    = "categories.png"
	fileCorrelation   = "correlation.png"
	fileBoxPlots      = "boxplots.png"
	fileTimeSeries    = "timeseries.png"
	fileScatterMatrix = "scatter_matrix.png"
)

// Panel limits.
const (
	maxHistColumns    = 9
	histBins          = 30
	histGridWidth     = 3
	maxBarColumns     = 6
	barTopValues      = 10
	barGridWidth      = 2
	maxBoxColumns     = 9
	maxSeriesColumns  = 3
	maxScatterColumns = 5
)

var (
	fillBlue    = color.RGBA{R: 100, G: 150, B: 220, A: 255}
	meanRed     = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	medianGreen = color.RGBA{R: 60, G: 160, B: 60, A: 255}

	// seriesColors cycles over the lines of the time series panel.
	seriesColors = []color.RGBA{
		{R: 100, G: 150, B: 220, A: 255},
		{R: 220, G: 120, B: 60, A: 255},
		{R: 110, G: 180, B: 110, A: 255},
	}
)

// Renderer draws charts for a cleaned table into an output directory.
// It implements autoinsight.ChartRenderer.
type Renderer struct {
	fs     filesystem.Provider
	logger autoinsight.Logger
}

// New creates a Renderer backed by the given filesystem provider.
// It panics if the provider is nil. A nil logger is replaced with a
// no-op logger.
func New(provider filesystem.Provider, logger autoinsight.Logger) *Renderer {
	if provider == nil {
		panic("filesystem provider cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Renderer{fs: provider, logger: logger}
}

// Render draws every applicable chart into outputDir and returns the
// written paths. Charts without matching columns are skipped and leave
// their ChartSet field empty. Cancellation is honored between charts.
func (r *Renderer) Render(ctx context.Context, df *dataframe.DataFrame, analysis *autoinsight.AnalysisResult, outputDir string) (*autoinsight.ChartSet, error) {
	if df == nil {
		return nil, errors.New("table is nil")
	}
	if err := r.fs.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	set := &autoinsight.ChartSet{}
	steps := []struct {
		name   string
		target *string
		render func() ([]byte, error)
	}{
		{fileDistributions, &set.Distributions, func() ([]byte, error) { return r.distributionGrid(df) }},
		{fileCategories, &set.Categories, func() ([]byte, error) { return r.categoryBars(df) }},
		{fileCorrelation, &set.Correlation, func() ([]byte, error) { return r.correlationHeatmap(analysis) }},
		{fileBoxPlots, &set.BoxPlots, func() ([]byte, error) { return r.boxPlotPanel(df) }},
		{fileTimeSeries, &set.TimeSeries, func() ([]byte, error) { return r.timeSeriesPanel(df) }},
		{fileScatterMatrix, &set.ScatterMatrix, func() ([]byte, error) { return r.scatterMatrix(df) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := step.render()
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", step.name, err)
		}
		if data == nil {
			r.logger.Verbose("skipping %s: no matching columns", step.name)
			continue
		}

		path := filepath.Join(outputDir, step.name)
		if err := r.fs.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", step.name, err)
		}
		*step.target = path
		r.logger.Verbose("wrote %s", path)
	}
	return set, nil
}

// numericChartColumn is the float view of one numeric series prepared
// for plotting.
type numericChartColumn struct {
	name string
	full []float64 // row aligned, NaN in missing cells
	vals []float64 // non-missing values in row order
}

func numericChartColumns(df *dataframe.DataFrame) []numericChartColumn {
	var cols []numericChartColumn
	for _, s := range df.Series {
		full, ok := dataset.FloatColumn(s)
		if !ok {
			continue
		}
		col := numericChartColumn{name: s.Name(), full: full}
		for _, v := range full {
			if !math.IsNaN(v) {
				col.vals = append(col.vals, v)
			}
		}
		if len(col.vals) == 0 {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// newPanel creates a plot with the styling shared by all charts.
func newPanel(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.X.Tick.Label.Font.Size = vg.Points(8)
	p.Y.Tick.Label.Font.Size = vg.Points(8)
	return p
}

// renderTiles lays the plots out on a shared canvas and encodes it as
// PNG. Nil entries leave their tile blank.
func renderTiles(plots [][]*plot.Plot, tileWidth, tileHeight vg.Length) ([]byte, error) {
	rows := len(plots)
	cols := 0
	for _, row := range plots {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if rows == 0 || cols == 0 {
		return nil, errors.New("no panels to draw")
	}

	img := vgimg.New(tileWidth*vg.Length(cols), tileHeight*vg.Length(rows))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 2,
		PadY:      vg.Millimeter * 2,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
	return encodePNG(img)
}

// renderSingle encodes one standalone plot as PNG.
func renderSingle(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	img := vgimg.New(width, height)
	dc := draw.New(img)
	p.Draw(dc)
	return encodePNG(img)
}

func encodePNG(img *vgimg.Canvas) ([]byte, error) {
	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// grid arranges plots into rows of the given width, padding the last
// row with nil tiles.
func grid(plots []*plot.Plot, width int) [][]*plot.Plot {
	if width < 1 {
		width = 1
	}
	var rows [][]*plot.Plot
	for start := 0; start < len(plots); start += width {
		row := make([]*plot.Plot, width)
		copy(row, plots[start:min(start+width, len(plots))])
		rows = append(rows, row)
	}
	return rows
}
