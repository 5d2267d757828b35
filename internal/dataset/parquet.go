package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// readParquet parses a parquet file into a typed frame. Only flat
// schemas are supported; nested groups and repeated fields are
// rejected. Integer and floating point columns load as float64,
// timestamp and date columns as time, and everything else as strings.
func readParquet(ctx context.Context, data []byte) (*dataframe.DataFrame, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	fields := f.Schema().Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("file has no columns")
	}
	for _, fld := range fields {
		if !fld.Leaf() {
			return nil, fmt.Errorf("nested column %q is not supported", fld.Name())
		}
	}

	columns := make([][]interface{}, len(fields))
	for i := range columns {
		columns[i] = make([]interface{}, 0, int(f.NumRows()))
	}

	for _, rg := range f.RowGroups() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readRowGroup(rg, fields, columns); err != nil {
			return nil, err
		}
	}

	series := make([]dataframe.Series, 0, len(fields))
	for i, fld := range fields {
		series = append(series, parquetSeries(fld, columns[i]))
	}
	return dataframe.NewDataFrame(series...), nil
}

func readRowGroup(rg parquet.RowGroup, fields []parquet.Field, columns [][]interface{}) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 128)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for _, v := range row {
				c := int(v.Column())
				if c < 0 || c >= len(columns) {
					return fmt.Errorf("value references unknown column %d", c)
				}
				columns[c] = append(columns[c], decodeParquetValue(v, fields[c]))
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// decodeParquetValue converts a parquet value into the cell value its
// column's series will hold, with nil marking nulls.
func decodeParquetValue(v parquet.Value, fld parquet.Field) interface{} {
	if v.IsNull() {
		return nil
	}

	if lt := fld.Type().LogicalType(); lt != nil {
		switch {
		case lt.Timestamp != nil:
			unit := lt.Timestamp.Unit
			switch {
			case unit.Millis != nil:
				return time.UnixMilli(v.Int64()).UTC()
			case unit.Micros != nil:
				return time.UnixMicro(v.Int64()).UTC()
			case unit.Nanos != nil:
				return time.Unix(0, v.Int64()).UTC()
			}
		case lt.Date != nil:
			return time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(v.Int32()))
		}
	}

	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return "true"
		}
		return "false"
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

// parquetSeries builds the series for one leaf column.
func parquetSeries(fld parquet.Field, vals []interface{}) dataframe.Series {
	if lt := fld.Type().LogicalType(); lt != nil && (lt.Timestamp != nil || lt.Date != nil) {
		return dataframe.NewSeriesTime(fld.Name(), nil, vals...)
	}

	switch fld.Type().Kind() {
	case parquet.Int32, parquet.Int64, parquet.Float, parquet.Double:
		return dataframe.NewSeriesFloat64(fld.Name(), nil, vals...)
	default:
		return dataframe.NewSeriesString(fld.Name(), nil, vals...)
	}
}
