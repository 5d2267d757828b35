// Package analysis computes descriptive statistics, categorical
// profiles, correlations, normality screens and trend detection over a
// cleaned table, and condenses them into ordered plain-text insights.
//
// All reported statistics are rounded to two decimals. Correlations are
// computed pairwise over rows where both columns have a value.
package analysis
