// Package pipeline orchestrates a full analysis run: load, clean,
// analyze, render charts, and build the PDF report. The Runner is wired
// with one implementation per stage and owns nothing but the order, the
// cancellation points between stages, and the overwrite approval for
// outputs a previous run already produced.
package pipeline
