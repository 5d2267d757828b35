// Package sampledata builds the deterministic demo dataset behind the
// sample command. The table is seeded so every invocation produces the
// same 500 rows, with missing cells and revenue outliers baked in so a
// first run of the pipeline has something to find.
package sampledata
