// Package charts renders the visual summary of a cleaned table as PNG
// files: distribution histograms, categorical bars, a correlation
// heatmap, box plots, a time series panel and a scatter matrix.
//
// Multi-panel figures are composed with plot.Align over draw.Tiles on a
// vgimg canvas and written through the filesystem provider, so tests
// can render into memory.
package charts
