package dataset

import (
	"bytes"
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/xuri/excelize/v2"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// readExcel parses a workbook into a typed frame. The first row of the
// chosen sheet supplies column names; unnamed header cells are labeled
// positionally. Date-formatted cells come back from the workbook as
// display strings, so excel columns are inferred date-aware.
func readExcel(data []byte, opts autoinsight.LoadOptions) (*dataframe.DataFrame, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := rows[0]
	width := len(headers)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}
	for i := len(headers); i < width; i++ {
		headers = append(headers, "")
	}
	for i, h := range headers {
		if h == "" {
			headers[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	columns := make([][]string, width)
	for i := range columns {
		columns[i] = make([]string, len(rows)-1)
	}
	for r, row := range rows[1:] {
		for c := 0; c < width; c++ {
			if c < len(row) {
				columns[c][r] = row[c]
			}
		}
	}

	series := make([]dataframe.Series, 0, width)
	for i, name := range headers {
		series = append(series, inferSeries(name, columns[i], true))
	}
	return dataframe.NewDataFrame(series...), nil
}
