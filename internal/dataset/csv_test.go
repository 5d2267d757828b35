package dataset

import (
	"context"
	"strings"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

func TestReadCSV_TypedColumns(t *testing.T) {
	data := []byte("name,amount,joined\nalice,100.5,2024-01-02\nbob,,2024-01-03\ncarol,300,2024-01-04\n")

	df, err := readCSV(context.Background(), data, autoinsight.LoadOptions{})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}

	if df.NRows() != 3 {
		t.Errorf("NRows() = %d, want 3", df.NRows())
	}
	if got := df.Names(); len(got) != 3 || got[0] != "name" || got[1] != "amount" || got[2] != "joined" {
		t.Errorf("Names() = %v", got)
	}

	if _, ok := df.Series[0].(*dataframe.SeriesString); !ok {
		t.Errorf("name should be a string column, got %T", df.Series[0])
	}
	amount, ok := df.Series[1].(*dataframe.SeriesFloat64)
	if !ok {
		t.Fatalf("amount should be a float64 column, got %T", df.Series[1])
	}
	if amount.Values[0] != 100.5 {
		t.Errorf("amount[0] = %v", amount.Values[0])
	}
	if !IsMissing(amount, 1) {
		t.Error("empty amount cell should be missing")
	}

	// Dates stay strings in delimited input; classification promotes later
	if _, ok := df.Series[2].(*dataframe.SeriesString); !ok {
		t.Errorf("joined should stay a string column, got %T", df.Series[2])
	}
}

func TestReadCSV_Delimiter(t *testing.T) {
	data := []byte("a;b\n1;x\n2;y\n")

	df, err := readCSV(context.Background(), data, autoinsight.LoadOptions{Delimiter: ';'})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if len(df.Series) != 2 || df.NRows() != 2 {
		t.Errorf("got %d columns x %d rows, want 2x2", len(df.Series), df.NRows())
	}
}

func TestReadCSV_HeaderRow(t *testing.T) {
	data := []byte("exported 2024-06-01\nsales report\nname,amount\nalice,1\nbob,2\n")

	df, err := readCSV(context.Background(), data, autoinsight.LoadOptions{HeaderRow: 2})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if got := df.Names(); got[0] != "name" || got[1] != "amount" {
		t.Errorf("Names() = %v", got)
	}
	if df.NRows() != 2 {
		t.Errorf("NRows() = %d, want 2", df.NRows())
	}
}

func TestReadCSV_HeaderRowBeyondEnd(t *testing.T) {
	if _, err := readCSV(context.Background(), []byte("a,b\n1,2\n"), autoinsight.LoadOptions{HeaderRow: 9}); err == nil {
		t.Error("expected error for header row beyond the file")
	}
}

func TestReadCSV_ColumnSubset(t *testing.T) {
	data := []byte("a,b,c\n1,x,9\n2,y,8\n")

	df, err := readCSV(context.Background(), data, autoinsight.LoadOptions{Columns: []string{"c", "a"}})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if got := df.Names(); len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Errorf("Names() = %v, want [c a]", got)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	data := []byte("a,b\n1,2\n")

	_, err := readCSV(context.Background(), data, autoinsight.LoadOptions{Columns: []string{"nope"}})
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("expected missing column error, got %v", err)
	}
}

func TestReadCSV_RowLimit(t *testing.T) {
	data := []byte("n\n1\n2\n3\n4\n5\n")

	df, err := readCSV(context.Background(), data, autoinsight.LoadOptions{RowLimit: 3})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if df.NRows() != 3 {
		t.Errorf("NRows() = %d, want 3", df.NRows())
	}
}

func TestReadCSV_QuotedFields(t *testing.T) {
	data := []byte("name,notes\nalice,\"first, second\"\nbob,\"line\nbreak\"\n")

	df, err := readCSV(context.Background(), data, autoinsight.LoadOptions{})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if df.NRows() != 2 {
		t.Errorf("NRows() = %d, want 2", df.NRows())
	}
	if v := df.Series[1].Value(0); v != "first, second" {
		t.Errorf("quoted field = %v", v)
	}
}

func TestReadCSV_Malformed(t *testing.T) {
	data := []byte("a,b\n\"unterminated\n")

	if _, err := readCSV(context.Background(), data, autoinsight.LoadOptions{}); err == nil {
		t.Error("expected parse error for unterminated quote")
	}
}
