package autoinsight

import (
	"context"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// ChartSet records the PNG files written by a chart rendering pass.
// A field is empty when the corresponding chart was skipped, for example
// the correlation heatmap on a table with fewer than two numeric columns.
type ChartSet struct {
	Distributions string
	Categories    string
	Correlation   string
	BoxPlots      string
	TimeSeries    string
	ScatterMatrix string
}

// Paths returns the written chart files in a stable order, skipping
// charts that were not rendered.
func (c *ChartSet) Paths() []string {
	all := []string{
		c.Distributions,
		c.Categories,
		c.Correlation,
		c.BoxPlots,
		c.TimeSeries,
		c.ScatterMatrix,
	}
	paths := make([]string, 0, len(all))
	for _, p := range all {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// ChartRenderer renders charts for a cleaned table into an output
// directory, creating it if needed.
type ChartRenderer interface {
	Render(ctx context.Context, df *dataframe.DataFrame, analysis *AnalysisResult, outputDir string) (*ChartSet, error)
}
