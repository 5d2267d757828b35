package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// readJSON parses a JSON document into a typed frame. Three shapes are
// accepted: an array of record objects, an object mapping column names
// to equal-length arrays, and newline-delimited record objects. Column
// order follows the key order of the first record.
func readJSON(data []byte) (*dataframe.DataFrame, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		return readJSONRecords(trimmed)
	case '{':
		if df, err := readJSONColumns(trimmed); err == nil {
			return df, nil
		}
		return readJSONLines(trimmed)
	default:
		return nil, fmt.Errorf("document must be a JSON array or object")
	}
}

// readJSONRecords parses an array of objects, one object per row.
func readJSONRecords(data []byte) (*dataframe.DataFrame, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []map[string]interface{}
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records in document")
	}

	return framesFromRecords(records, firstObjectKeys(data))
}

// readJSONLines parses newline-delimited objects, one object per row.
func readJSONLines(data []byte) (*dataframe.DataFrame, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []map[string]interface{}
	for {
		var rec map[string]interface{}
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records in document")
	}

	return framesFromRecords(records, firstObjectKeys(data))
}

// readJSONColumns parses an object whose values are equal-length arrays,
// one array per column.
func readJSONColumns(data []byte) (*dataframe.DataFrame, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var columns map[string][]interface{}
	if err := dec.Decode(&columns); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns in document")
	}

	names := firstObjectKeys(data)
	if len(names) != len(columns) {
		names = names[:0]
		for name := range columns {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	length := -1
	for _, vals := range columns {
		if length == -1 {
			length = len(vals)
		} else if len(vals) != length {
			return nil, fmt.Errorf("column arrays have unequal lengths")
		}
	}

	series := make([]dataframe.Series, 0, len(names))
	for _, name := range names {
		cells := make([]string, length)
		for i, v := range columns[name] {
			cells[i], _ = stringifyJSONValue(v)
		}
		series = append(series, inferSeries(name, cells, true))
	}
	return dataframe.NewDataFrame(series...), nil
}

// framesFromRecords builds one column per key across all records. Keys
// absent from a record become missing cells.
func framesFromRecords(records []map[string]interface{}, orderedKeys []string) (*dataframe.DataFrame, error) {
	seen := make(map[string]bool, len(orderedKeys))
	names := make([]string, 0, len(orderedKeys))
	for _, k := range orderedKeys {
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("records contain no fields")
	}

	series := make([]dataframe.Series, 0, len(names))
	for _, name := range names {
		cells := make([]string, len(records))
		for i, rec := range records {
			v, ok := rec[name]
			if !ok {
				continue
			}
			cells[i], _ = stringifyJSONValue(v)
		}
		series = append(series, inferSeries(name, cells, true))
	}
	return dataframe.NewDataFrame(series...), nil
}

// stringifyJSONValue renders a decoded JSON value as a cell. Nested
// structures are kept as compact JSON text.
func stringifyJSONValue(v interface{}) (cell string, missing bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case json.Number:
		return val.String(), false
	case string:
		return val, false
	case bool:
		if val {
			return "true", false
		}
		return "false", false
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return "", true
		}
		return string(raw), false
	}
}

// firstObjectKeys walks the document tokens and returns the keys of the
// first object encountered, in their order of appearance.
func firstObjectKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		if d, ok := tok.(json.Delim); ok && d == '{' {
			return readObjectKeys(dec)
		}
	}
}

// readObjectKeys reads key tokens from a decoder positioned just inside
// an object.
func readObjectKeys(dec *json.Decoder) []string {
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		if key, ok := tok.(string); ok {
			keys = append(keys, key)
		}
		if err := skipJSONValue(dec); err != nil {
			return keys
		}
	}
	return keys
}

// skipJSONValue consumes the next value, descending into nested
// containers.
func skipJSONValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	for dec.More() {
		if d == '{' {
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		if err := skipJSONValue(dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
