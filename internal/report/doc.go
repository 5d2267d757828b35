// Package report assembles the PDF analysis report. It lays out the
// cover, run summary, statistics tables, and chart pages on A4 and
// writes the document through the filesystem provider so tests can
// build reports entirely in memory.
//
// Report generation is a tier entitlement: tiers without PDF support
// are rejected with autoinsight.ErrReportNotAllowed before any page is
// drawn.
package report
