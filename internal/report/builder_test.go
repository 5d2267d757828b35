package report

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/autoinsight-io/autoinsight/internal/filesystem"
	"github.com/autoinsight-io/autoinsight/internal/logging"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

func newTestBuilder(fs filesystem.Provider) *Builder {
	return New(fs, logging.NewNullLogger())
}

func reportInput() autoinsight.ReportInput {
	return autoinsight.ReportInput{
		RunID:       "run-42",
		Fingerprint: strings.Repeat("ab", 32),
		Metadata: autoinsight.LoadMetadata{
			Filename:      "sales.csv",
			Format:        autoinsight.FormatCSV,
			SizeMB:        1.2,
			Rows:          500,
			Columns:       7,
			Package:       autoinsight.TierPro,
			MemoryUsageMB: 0.5,
		},
		Cleaning: &autoinsight.CleaningReport{
			Strategy:       autoinsight.StrategyAuto,
			RowsBefore:     500,
			RowsAfter:      500,
			MissingBefore:  23,
			MissingAfter:   0,
			DroppedColumns: []string{"notes"},
			Actions: []autoinsight.ColumnAction{
				{Column: "revenue", Kind: autoinsight.ColumnNumeric, Action: "median fill", Filled: 12},
			},
			Outliers: []autoinsight.OutlierSummary{
				{Column: "revenue", Count: 4, Pct: 0.8},
			},
			Downcast:       []string{"units"},
			MemoryBeforeMB: 1.2,
			MemoryAfterMB:  0.9,
		},
		Analysis: &autoinsight.AnalysisResult{
			Method: autoinsight.CorrelationPearson,
			Stats: []autoinsight.ColumnStats{
				{Column: "revenue", Count: 500, Missing: 0, Mean: 1000.5, Std: 210.2, Min: 100.5, Median: 980.0, Max: 2400.5},
				{Column: "units", Count: 500, Missing: 0, Mean: 24.0, Std: 5.5, Min: 10.0, Median: 23.0, Max: 40.0},
			},
			Categoricals: []autoinsight.CategoricalProfile{
				{
					Column:           "region",
					Unique:           3,
					MostCommon:       "north",
					ConcentrationPct: 40.0,
					Top: []autoinsight.ValueCount{
						{Value: "north", Count: 200},
						{Value: "south", Count: 180},
					},
				},
			},
			NotablePairs: []autoinsight.CorrelationPair{
				{A: "units", B: "revenue", R: 0.92, Strength: "very strong"},
			},
			Insights: []string{
				"Dataset has 500 rows and 7 columns",
				`Column "region" looks stable`,
			},
		},
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// testPNG returns a small valid PNG so chart embedding exercises the
// real decoder.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, color.RGBA{R: 90, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestBuilder_WritesReport(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	b := newTestBuilder(fs)

	path, err := b.Build(context.Background(), reportInput(), "/data/out")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if path != "/data/out/report.pdf" {
		t.Fatalf("path = %q", path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
	if !bytes.Contains(data, []byte("sales.csv")) {
		t.Fatal("document title should carry the source filename")
	}
}

func TestBuilder_TitleOverride(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	b := newTestBuilder(fs)

	input := reportInput()
	input.Title = "Quarterly Revenue Review"
	path, err := b.Build(context.Background(), input, "/data/out")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !bytes.Contains(data, []byte("Quarterly Revenue Review")) {
		t.Fatal("document title should carry the override")
	}
}

func TestBuilder_FreeTierRejected(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	b := newTestBuilder(fs)

	input := reportInput()
	input.Metadata.Package = autoinsight.TierFree
	path, err := b.Build(context.Background(), input, "/data/out")
	if !errors.Is(err, autoinsight.ErrReportNotAllowed) {
		t.Fatalf("err = %v, want ErrReportNotAllowed", err)
	}
	if path != "" {
		t.Fatalf("path = %q, want empty", path)
	}
}

func TestBuilder_EmbedsCharts(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("/data/charts/distributions.png", testPNG(t))
	fs.AddFile("/data/charts/correlation.png", testPNG(t))
	fs.AddFile("/data/charts/boxplots.png", testPNG(t))
	b := newTestBuilder(fs)

	input := reportInput()
	input.Charts = &autoinsight.ChartSet{
		Distributions: "/data/charts/distributions.png",
		Correlation:   "/data/charts/correlation.png",
		BoxPlots:      "/data/charts/boxplots.png",
	}
	path, err := b.Build(context.Background(), input, "/data/out")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
}

func TestBuilder_MissingChartFileFails(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	b := newTestBuilder(fs)

	input := reportInput()
	input.Charts = &autoinsight.ChartSet{Distributions: "/data/charts/gone.png"}
	if _, err := b.Build(context.Background(), input, "/data/out"); err == nil {
		t.Fatal("expected error for missing chart file")
	}
}

func TestBuilder_MinimalInput(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	b := newTestBuilder(fs)

	input := autoinsight.ReportInput{
		RunID: "run-1",
		Metadata: autoinsight.LoadMetadata{
			Filename: "tiny.csv",
			Package:  autoinsight.TierBusiness,
		},
	}
	path, err := b.Build(context.Background(), input, "/data/out")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if path == "" {
		t.Fatal("expected a written path")
	}
}

func TestBuilder_CancelledContext(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	b := newTestBuilder(fs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Build(ctx, reportInput(), "/data/out"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNew_NilProviderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil provider")
		}
	}()
	New(nil, logging.NewNullLogger())
}
