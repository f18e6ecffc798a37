package survey

import (
	"math"
	"strconv"
	"strings"

	"respcheck/domain/core"
)

// Row holds one respondent's raw cell values keyed by column name.
// Cells are kept as trimmed strings; missing values are empty strings or
// absent keys.
type Row map[string]string

// Dataset is the tabular view of one survey export: an ordered list of named
// columns with one row per respondent. It is read-only after ingestion.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// RowCount returns the number of respondents
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// HasColumn reports whether the dataset contains the named column
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnValues returns all raw values of one column, row order preserved.
// Rows without the column yield empty strings.
func (d *Dataset) ColumnValues(name string) []string {
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[name]
	}
	return values
}

// IsMissing reports whether a raw cell value counts as missing
func IsMissing(value string) bool {
	return strings.TrimSpace(value) == ""
}

// CanonicalValue normalizes a raw cell for equality comparison. Numeric
// values with an integral magnitude render without a decimal point so that
// "3", "3.0" and "3,0" compare equal; everything else is trimmed as-is.
func CanonicalValue(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if f, ok := parseNumeric(v); ok {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return v
}

// CanonicalRespondentID converts a raw ID cell to the single canonical
// respondent identifier representation: trimmed, integral floats rendered
// without a decimal point. Blank cells yield a blank ID, which downstream
// code discards.
func CanonicalRespondentID(value string) core.RespondentID {
	return core.RespondentID(CanonicalValue(value))
}

// NumericValue parses a cell as a number, accepting decimal-comma format.
// The second return is false for missing or non-numeric cells.
func NumericValue(value string) (float64, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}
	return parseNumeric(v)
}

func parseNumeric(v string) (float64, bool) {
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}
	if strings.Contains(v, ",") {
		if f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

// IsNumericColumn reports whether every non-missing value of the column
// parses as a number (and at least one value is present).
func (d *Dataset) IsNumericColumn(name string) bool {
	seen := false
	for _, row := range d.Rows {
		v := row[name]
		if IsMissing(v) {
			continue
		}
		if _, ok := NumericValue(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// MeanTextLength returns the mean character length of non-missing values in
// a column, or 0 when the column is entirely missing.
func (d *Dataset) MeanTextLength(name string) float64 {
	total := 0
	count := 0
	for _, row := range d.Rows {
		v := strings.TrimSpace(row[name])
		if v == "" {
			continue
		}
		total += len([]rune(v))
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
