package survey

import (
	"strings"

	"respcheck/domain/core"
)

// MatchQuestionColumns finds the dataset columns belonging to a question
// code. Survey exports prefix codes with Q or QQ and suffix battery items
// with double underscores (Q5__1, Q5__2, ...). A case-insensitive substring
// scan is the fallback for exports with nonstandard naming.
func (d *Dataset) MatchQuestionColumns(code core.QuestionCode) []string {
	clean := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(code.String(), ".", "")))
	if clean == "" {
		return nil
	}

	var matches []string
	exact := []string{"Q" + clean, "QQ" + clean}
	prefixes := []string{"Q" + clean + "__", "QQ" + clean + "__"}

	for _, col := range d.Columns {
		upper := strings.ToUpper(col)
		matched := false
		for _, e := range exact {
			if upper == e {
				matched = true
				break
			}
		}
		if !matched {
			for _, p := range prefixes {
				if strings.HasPrefix(upper, p) {
					matched = true
					break
				}
			}
		}
		if matched {
			matches = append(matches, col)
		}
	}

	if len(matches) == 0 {
		for _, col := range d.Columns {
			if strings.Contains(strings.ToUpper(col), clean) {
				matches = append(matches, col)
			}
		}
	}

	return matches
}

// FindIDColumn selects the respondent identifier column: the first candidate
// that is present and whose non-missing values are unique for more than half
// the rows wins. After the preferred candidates, any column containing "id"
// (except exclusions) is tried. Falls back to the first column.
func (d *Dataset) FindIDColumn(candidates []string, exclusions []string) string {
	if len(d.Columns) == 0 {
		return ""
	}

	for _, name := range candidates {
		if d.HasColumn(name) && d.isUsableIDColumn(name) {
			return name
		}
	}

	excluded := make(map[string]bool, len(exclusions))
	for _, e := range exclusions {
		excluded[e] = true
	}
	for _, col := range d.Columns {
		if excluded[col] {
			continue
		}
		if strings.Contains(strings.ToLower(col), "id") && d.isUsableIDColumn(col) {
			return col
		}
	}

	return d.Columns[0]
}

// isUsableIDColumn requires distinct non-missing values in more than half
// the rows, so near-constant or mostly-empty columns never become the ID.
func (d *Dataset) isUsableIDColumn(name string) bool {
	if len(d.Rows) == 0 {
		return false
	}
	distinct := make(map[string]bool)
	for _, row := range d.Rows {
		v := CanonicalValue(row[name])
		if v == "" {
			continue
		}
		distinct[v] = true
	}
	return len(distinct) > 0 && len(distinct)*2 > len(d.Rows)
}

// RespondentIDs returns the canonical identifier of every row using the
// given ID column. Blank identifiers stay blank here; detectors drop them
// when building flagged sets.
func (d *Dataset) RespondentIDs(idColumn string) []core.RespondentID {
	ids := make([]core.RespondentID, len(d.Rows))
	for i, row := range d.Rows {
		ids[i] = CanonicalRespondentID(row[idColumn])
	}
	return ids
}
