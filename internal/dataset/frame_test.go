package dataset

import (
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

func testFrame() *dataframe.DataFrame {
	return dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("amount", nil, 1.0, nil, 3.0, 4.0),
		dataframe.NewSeriesString("label", nil, "a", "b", nil, "d"),
	)
}

func TestIsMissingAndCounts(t *testing.T) {
	df := testFrame()

	if !IsMissing(df.Series[0], 1) || IsMissing(df.Series[0], 0) {
		t.Error("float missing detection is wrong")
	}
	if !IsMissing(df.Series[1], 2) || IsMissing(df.Series[1], 3) {
		t.Error("string missing detection is wrong")
	}
	if got := MissingCount(df.Series[0]); got != 1 {
		t.Errorf("MissingCount(amount) = %d, want 1", got)
	}
	if got := MissingCells(df); got != 2 {
		t.Errorf("MissingCells() = %d, want 2", got)
	}
}

func TestFloatValues(t *testing.T) {
	df := testFrame()

	vals, rows := FloatValues(df.Series[0].(*dataframe.SeriesFloat64))
	if len(vals) != 3 || vals[0] != 1.0 || vals[2] != 4.0 {
		t.Errorf("vals = %v", vals)
	}
	if len(rows) != 3 || rows[1] != 2 {
		t.Errorf("rows = %v", rows)
	}
}

func TestSelectColumns(t *testing.T) {
	df := testFrame()

	got, err := SelectColumns(df, []string{"label"})
	if err != nil {
		t.Fatalf("SelectColumns: %v", err)
	}
	if len(got.Series) != 1 || got.Series[0].Name() != "label" {
		t.Errorf("selected = %v", got.Names())
	}

	if _, err := SelectColumns(df, []string{"ghost"}); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestFilterRows(t *testing.T) {
	df := testFrame()

	got := FilterRows(df, func(row int) bool { return !IsMissing(df.Series[0], row) })
	if got.NRows() != 3 {
		t.Errorf("NRows() = %d, want 3", got.NRows())
	}
	// Original remains untouched
	if df.NRows() != 4 {
		t.Errorf("source frame was modified: NRows() = %d", df.NRows())
	}
	// Missing cells in kept columns survive the rebuild
	if !IsMissing(got.Series[1], 2) {
		t.Error("label missing cell should survive filtering")
	}
}

func TestHead(t *testing.T) {
	df := testFrame()

	got := Head(df, 2)
	if got.NRows() != 2 {
		t.Errorf("NRows() = %d, want 2", got.NRows())
	}

	all := Head(df, 99)
	if all.NRows() != 4 {
		t.Errorf("NRows() = %d, want 4", all.NRows())
	}

	none := Head(df, 0)
	if none.NRows() != 0 {
		t.Errorf("NRows() = %d, want 0", none.NRows())
	}
}

func TestSeriesByName(t *testing.T) {
	df := testFrame()

	if s, ok := SeriesByName(df, "amount"); !ok || s.Name() != "amount" {
		t.Error("SeriesByName failed for existing column")
	}
	if _, ok := SeriesByName(df, "ghost"); ok {
		t.Error("SeriesByName should miss unknown columns")
	}
}
