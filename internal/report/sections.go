package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// chartMaxHeightMM caps an embedded chart so two fit on one page with
// their captions.
const chartMaxHeightMM = 110.0

func (b *Builder) coverPage(pdf *fpdf.Fpdf, title string, input autoinsight.ReportInput, generated time.Time) {
	pdf.AddPage()
	pdf.Ln(70)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.MultiCell(0, 10, title, "", "C", false)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Generated", generated.Format("2006-01-02 15:04:05 MST")},
		{"Source file", input.Metadata.Filename},
		{"Fingerprint", input.Fingerprint},
		{"Tier", string(input.Metadata.Package)},
		{"Run ID", input.RunID},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.CellFormat(0, 7, row[0]+": "+row[1], "", 1, "C", false, 0, "")
	}
}

func (b *Builder) runSummary(pdf *fpdf.Fpdf, input autoinsight.ReportInput) {
	pdf.AddPage()
	b.heading(pdf, "Run Summary")

	meta := input.Metadata.Map()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pdf.SetFont("Helvetica", "", 9)
	for i, k := range keys {
		fill := i%2 == 1
		pdf.SetFillColor(243, 243, 248)
		pdf.CellFormat(60, 6, k, "", 0, "L", fill, 0, "")
		pdf.CellFormat(130, 6, formatMetaValue(meta[k]), "", 1, "L", fill, 0, "")
	}
	pdf.Ln(4)

	if input.Cleaning == nil {
		return
	}
	cr := input.Cleaning
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Cleaning", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	dropped := "none"
	if len(cr.DroppedColumns) > 0 {
		dropped = strings.Join(cr.DroppedColumns, ", ")
	}
	outliers := 0
	for _, o := range cr.Outliers {
		outliers += o.Count
	}
	lines := [][2]string{
		{"Strategy", string(cr.Strategy)},
		{"Rows", fmt.Sprintf("%d -> %d", cr.RowsBefore, cr.RowsAfter)},
		{"Missing cells", fmt.Sprintf("%d -> %d", cr.MissingBefore, cr.MissingAfter)},
		{"Dropped columns", dropped},
		{"Columns filled", strconv.Itoa(len(cr.Actions))},
		{"Outliers flagged", strconv.Itoa(outliers)},
		{"Memory", fmt.Sprintf("%s MB -> %s MB", formatFloat(cr.MemoryBeforeMB), formatFloat(cr.MemoryAfterMB))},
	}
	if len(cr.Downcast) > 0 {
		lines = append(lines, [2]string{"Downcast to int", strings.Join(cr.Downcast, ", ")})
	}
	for i, line := range lines {
		fill := i%2 == 1
		pdf.SetFillColor(243, 243, 248)
		pdf.CellFormat(60, 6, line[0], "", 0, "L", fill, 0, "")
		pdf.CellFormat(130, 6, line[1], "", 1, "L", fill, 0, "")
	}
	pdf.Ln(4)
}

func (b *Builder) executiveSummary(pdf *fpdf.Fpdf, analysis *autoinsight.AnalysisResult) {
	if analysis == nil || len(analysis.Insights) == 0 {
		return
	}
	b.heading(pdf, "Executive Summary")

	insights := analysis.Insights
	if len(insights) > maxReportInsights {
		insights = insights[:maxReportInsights]
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range insights {
		pdf.MultiCell(0, 6, "- "+line, "", "L", false)
	}
	pdf.Ln(4)
}

func (b *Builder) statsTable(pdf *fpdf.Fpdf, analysis *autoinsight.AnalysisResult) {
	if analysis == nil || len(analysis.Stats) == 0 {
		return
	}
	b.heading(pdf, "Descriptive Statistics")

	stats := analysis.Stats
	if len(stats) > maxReportStats {
		stats = stats[:maxReportStats]
	}

	widths := []float64{40, 18, 18, 23, 23, 23, 23, 22}
	b.tableHeader(pdf, widths, []string{"Column", "Count", "Missing", "Mean", "Std", "Min", "Median", "Max"})
	for i, cs := range stats {
		b.tableRow(pdf, widths, []string{
			truncate(cs.Column, 24),
			strconv.Itoa(cs.Count),
			strconv.Itoa(cs.Missing),
			formatFloat(cs.Mean),
			formatFloat(cs.Std),
			formatFloat(cs.Min),
			formatFloat(cs.Median),
			formatFloat(cs.Max),
		}, i%2 == 1)
	}
	pdf.Ln(6)
}

func (b *Builder) categoricalTable(pdf *fpdf.Fpdf, analysis *autoinsight.AnalysisResult) {
	if analysis == nil || len(analysis.Categoricals) == 0 {
		return
	}
	b.heading(pdf, "Categorical Columns")

	profiles := analysis.Categoricals
	if len(profiles) > maxReportCategoricals {
		profiles = profiles[:maxReportCategoricals]
	}

	widths := []float64{40, 18, 40, 25, 67}
	b.tableHeader(pdf, widths, []string{"Column", "Unique", "Most common", "Share %", "Top values"})
	for i, p := range profiles {
		tops := make([]string, 0, len(p.Top))
		for _, vc := range p.Top {
			tops = append(tops, fmt.Sprintf("%s (%d)", vc.Value, vc.Count))
		}
		b.tableRow(pdf, widths, []string{
			truncate(p.Column, 24),
			strconv.Itoa(p.Unique),
			truncate(p.MostCommon, 24),
			formatFloat(p.ConcentrationPct),
			truncate(strings.Join(tops, ", "), 42),
		}, i%2 == 1)
	}
	pdf.Ln(6)
}

func (b *Builder) correlationTable(pdf *fpdf.Fpdf, analysis *autoinsight.AnalysisResult) {
	if analysis == nil || len(analysis.NotablePairs) == 0 {
		return
	}
	b.heading(pdf, "Notable Correlations")

	pairs := analysis.NotablePairs
	if len(pairs) > maxReportCorrelations {
		pairs = pairs[:maxReportCorrelations]
	}

	widths := []float64{90, 25, 40, 35}
	b.tableHeader(pdf, widths, []string{"Pair", "r", "Strength", "Direction"})
	for i, pair := range pairs {
		direction := "positive"
		if pair.R < 0 {
			direction = "negative"
		}
		b.tableRow(pdf, widths, []string{
			truncate(pair.A+" / "+pair.B, 56),
			formatFloat(pair.R),
			pair.Strength,
			direction,
		}, i%2 == 1)
	}
	pdf.Ln(6)
}

// chartPages embeds the rendered PNGs, two per page, scaled to the
// content width.
func (b *Builder) chartPages(pdf *fpdf.Fpdf, charts *autoinsight.ChartSet) error {
	paths := charts.Paths()
	if len(paths) == 0 {
		return nil
	}
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - left - right

	for i, path := range paths {
		data, err := b.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading chart %s: %w", path, err)
		}

		if i%chartsPerPage == 0 {
			pdf.AddPage()
			if i == 0 {
				b.heading(pdf, "Charts")
			}
		}

		opts := fpdf.ImageOptions{ImageType: "PNG"}
		name := fmt.Sprintf("chart-%d", i)
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if pdf.Err() {
			return fmt.Errorf("decoding chart %s: %w", path, pdf.Error())
		}

		w := contentW
		h := w * info.Height() / info.Width()
		if h > chartMaxHeightMM {
			h = chartMaxHeightMM
			w = h * info.Width() / info.Height()
		}
		x := left + (contentW-w)/2
		y := pdf.GetY()
		pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
		pdf.SetY(y + h + 3)

		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, filepath.Base(path), "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	return nil
}

// heading draws a section title with a rule under it.
func (b *Builder) heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(40, 55, 100)
	pdf.CellFormat(0, 9, text, "", 1, "L", false, 0, "")

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.SetDrawColor(40, 55, 100)
	pdf.Line(left, y, pageW-right, y)
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)
}

func (b *Builder) tableHeader(pdf *fpdf.Fpdf, widths []float64, titles []string) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(222, 226, 238)
	for i, title := range titles {
		last := i == len(titles)-1
		ln := 0
		if last {
			ln = 1
		}
		pdf.CellFormat(widths[i], 6, title, "", ln, "L", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
}

func (b *Builder) tableRow(pdf *fpdf.Fpdf, widths []float64, cells []string, fill bool) {
	pdf.SetFillColor(243, 243, 248)
	for i, cell := range cells {
		last := i == len(cells)-1
		ln := 0
		if last {
			ln = 1
		}
		pdf.CellFormat(widths[i], 6, cell, "", ln, "L", fill, 0, "")
	}
}

func formatMetaValue(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return formatFloat(t)
	case int:
		return strconv.Itoa(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
