package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// readCSV parses delimited text into a typed frame. The raw bytes must
// already be decoded to UTF-8. Options are applied in load order: the
// header row offset trims leading records, then the column subset, then
// the row limit, and finally type inference promotes columns.
func readCSV(ctx context.Context, data []byte, opts autoinsight.LoadOptions) (*dataframe.DataFrame, error) {
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	if opts.HeaderRow > 0 {
		trimmed, err := dropLeadingRecords(data, delimiter, opts.HeaderRow)
		if err != nil {
			return nil, err
		}
		data = trimmed
	}

	df, err := imports.LoadFromCSV(ctx, bytes.NewReader(data), imports.CSVLoadOptions{
		Comma: delimiter,
	})
	if err != nil {
		return nil, err
	}
	if df == nil || len(df.Series) == 0 {
		return nil, fmt.Errorf("no columns found")
	}

	if len(opts.Columns) > 0 {
		df, err = SelectColumns(df, opts.Columns)
		if err != nil {
			return nil, err
		}
	}

	if opts.RowLimit > 0 && df.NRows() > opts.RowLimit {
		df = Head(df, opts.RowLimit)
	}

	return promoteColumns(df, false), nil
}

// dropLeadingRecords removes the first n records so that the header
// lands on the first line. Records are rewritten through the csv
// package to keep quoting intact.
func dropLeadingRecords(data []byte, delimiter rune, n int) ([]byte, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= n {
		return nil, fmt.Errorf("header row %d is beyond the end of the file", n)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter
	if err := w.WriteAll(records[n:]); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// promoteColumns rebuilds each column through type inference. Columns
// loaded as strings are promoted to float64 when the numeric vote
// passes; dateAware additionally allows promotion to datetime.
func promoteColumns(df *dataframe.DataFrame, dateAware bool) *dataframe.DataFrame {
	promoted := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		str, ok := s.(*dataframe.SeriesString)
		if !ok {
			promoted = append(promoted, s.Copy())
			continue
		}

		cells := make([]string, str.NRows())
		for row := 0; row < str.NRows(); row++ {
			if v := str.Value(row); v != nil {
				cells[row] = v.(string)
			}
		}
		promoted = append(promoted, inferSeries(s.Name(), cells, dateAware))
	}
	return dataframe.NewDataFrame(promoted...)
}
