// Package dataset loads tabular files into dataframes and provides the
// shared frame utilities the rest of the pipeline builds on.
//
// The Loader resolves the input format from the file extension, enforces
// the package tier's size quota before reading any content, detects text
// encodings for delimited files, and produces load metadata alongside the
// parsed frame. Numeric columns are materialized as float64 series with
// NaN marking missing cells; datetime detection for delimited input is
// deferred to column classification so loading stays cheap.
package dataset
