package dataset

import (
	"strconv"
	"strings"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// numericVoteShare is the fraction of non-missing cells that must parse
// as a number (or date) before a column is promoted to that type.
const numericVoteShare = 0.8

// missingTokens are cell values treated as missing, matched after
// trimming and lowercasing.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
	"none": {},
}

// dateLayouts are tried in order when promoting a column to datetime.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
}

// isMissingToken reports whether the raw cell denotes a missing value.
func isMissingToken(cell string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// parseNumeric parses a cell as a float64, tolerating surrounding
// whitespace and thousands separators ("1,200.50").
func parseNumeric(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	if strings.Contains(cell, ",") {
		cell = strings.ReplaceAll(cell, ",", "")
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseDate parses a cell against the known date layouts.
func parseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferSeries builds a typed series from raw string cells. A column
// becomes float64 when at least 80% of its non-missing cells parse as
// numbers; with dateAware set the same vote can promote it to datetime.
// Everything else stays a string column with missing tokens normalized
// to nil.
func inferSeries(name string, cells []string, dateAware bool) dataframe.Series {
	nonMissing := 0
	numericHits := 0
	dateHits := 0
	for _, cell := range cells {
		if isMissingToken(cell) {
			continue
		}
		nonMissing++
		if _, ok := parseNumeric(cell); ok {
			numericHits++
		} else if dateAware {
			if _, ok := parseDate(cell); ok {
				dateHits++
			}
		}
	}

	if nonMissing > 0 && float64(numericHits) >= numericVoteShare*float64(nonMissing) {
		vals := make([]interface{}, len(cells))
		for i, cell := range cells {
			if f, ok := parseNumeric(cell); ok && !isMissingToken(cell) {
				vals[i] = f
			}
		}
		return dataframe.NewSeriesFloat64(name, nil, vals...)
	}

	if dateAware && nonMissing > 0 && float64(dateHits) >= numericVoteShare*float64(nonMissing) {
		vals := make([]interface{}, len(cells))
		for i, cell := range cells {
			if t, ok := parseDate(cell); ok && !isMissingToken(cell) {
				vals[i] = t
			}
		}
		return dataframe.NewSeriesTime(name, nil, vals...)
	}

	vals := make([]interface{}, len(cells))
	for i, cell := range cells {
		if !isMissingToken(cell) {
			vals[i] = cell
		}
	}
	return dataframe.NewSeriesString(name, nil, vals...)
}
