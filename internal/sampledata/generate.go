package sampledata

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/exports"

	"github.com/autoinsight-io/autoinsight/internal/filesystem"
)

const (
	sampleRows = 500
	sampleSeed = 42

	// missingShare is the per-cell chance of blanking unit_price and
	// satisfaction.
	missingShare = 0.03

	// Every outlierEvery-th row gets its revenue multiplied so outlier
	// detection has something to flag.
	outlierEvery      = 97
	outlierMultiplier = 12.0
)

var (
	sampleRegions  = []string{"north", "south", "east", "west"}
	sampleProducts = []string{"widget", "gadget", "gizmo"}
)

// Frame builds the demo table: daily dates, two categorical columns,
// unit and price columns, revenue with noise, and a 1-5 satisfaction
// score. Dates are plain strings so the cleaning pass exercises its
// datetime promotion.
func Frame() *dataframe.DataFrame {
	r := rand.New(rand.NewSource(sampleSeed))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	dates := make([]interface{}, sampleRows)
	regions := make([]interface{}, sampleRows)
	products := make([]interface{}, sampleRows)
	units := make([]interface{}, sampleRows)
	prices := make([]interface{}, sampleRows)
	revenues := make([]interface{}, sampleRows)
	satisfaction := make([]interface{}, sampleRows)

	for i := 0; i < sampleRows; i++ {
		dates[i] = base.AddDate(0, 0, i).Format("2006-01-02")
		regions[i] = sampleRegions[r.Intn(len(sampleRegions))]
		products[i] = sampleProducts[r.Intn(len(sampleProducts))]

		unitCount := 1 + r.Intn(50)
		price := round2(4.5 + r.Float64()*25)
		revenue := round2(float64(unitCount)*price + r.NormFloat64()*25)
		if i%outlierEvery == outlierEvery-1 {
			revenue = round2(revenue * outlierMultiplier)
		}

		units[i] = int64(unitCount)
		prices[i] = price
		revenues[i] = revenue
		satisfaction[i] = int64(1 + r.Intn(5))

		if r.Float64() < missingShare {
			prices[i] = nil
		}
		if r.Float64() < missingShare {
			satisfaction[i] = nil
		}
	}

	return dataframe.NewDataFrame(
		dataframe.NewSeriesString("date", nil, dates...),
		dataframe.NewSeriesString("region", nil, regions...),
		dataframe.NewSeriesString("product", nil, products...),
		dataframe.NewSeriesInt64("units", nil, units...),
		dataframe.NewSeriesFloat64("unit_price", nil, prices...),
		dataframe.NewSeriesFloat64("revenue", nil, revenues...),
		dataframe.NewSeriesInt64("satisfaction", nil, satisfaction...),
	)
}

// WriteCSV renders the demo table as CSV at path, creating parent
// directories as needed. Missing cells export as empty fields.
func WriteCSV(ctx context.Context, provider filesystem.Provider, path string) error {
	if provider == nil {
		panic("filesystem provider cannot be nil")
	}
	if err := provider.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	empty := ""
	var buf bytes.Buffer
	if err := exports.ExportToCSV(ctx, &buf, Frame(), exports.CSVExportOptions{NullString: &empty}); err != nil {
		return fmt.Errorf("exporting sample data: %w", err)
	}
	if err := provider.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
