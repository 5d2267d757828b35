// Package cleaning classifies columns and applies missing-value
// strategies to loaded tables.
//
// Classification decides once per run whether each column is numeric,
// datetime, categorical, or text; the decision drives both the fill
// strategy and the downstream analysis. String columns that parse as
// dates are promoted to real time series before any filling happens.
// The input table is never mutated; cleaning always returns a new one
// together with a report of what changed.
package cleaning
