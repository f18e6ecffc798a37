package detect

import (
	"fmt"
	"regexp"
	"sort"

	"respcheck/domain/core"
	"respcheck/domain/survey"
	"respcheck/internal"
)

// batteryItemPattern matches battery item columns like Q5__1, QQ12b__3.
var batteryItemPattern = regexp.MustCompile(`^(Q+\w+?)__(\d+)$`)

// StraightLineResult carries the straight-lining output into aggregation.
type StraightLineResult struct {
	IDs           idSet
	Batteries     []survey.BatteryGroup
	BatteryLength int
	Warnings      []string
}

// StraightLineDetector flags respondents who give an identical value across
// every item of a rating battery. A single straight-lined battery is weak
// evidence (short grids produce coincidental agreement), so flagging
// requires corroboration across at least MinStraightBatteries batteries.
type StraightLineDetector struct {
	cfg DetectorConfig
	log *internal.Logger
}

// NewStraightLineDetector creates a straight-lining detector.
func NewStraightLineDetector(cfg DetectorConfig, logger *internal.Logger) *StraightLineDetector {
	return &StraightLineDetector{cfg: cfg, log: logger}
}

// Detect discovers battery groups and scans them for straight-lining.
func (d *StraightLineDetector) Detect(ds *survey.Dataset, idColumn string, structure *survey.Structure) StraightLineResult {
	result := StraightLineResult{IDs: newIDSet()}

	result.Batteries, result.Warnings = d.discoverBatteries(ds, structure)
	for _, bg := range result.Batteries {
		if bg.ItemCount > result.BatteryLength {
			result.BatteryLength = bg.ItemCount
		}
	}
	if len(result.Batteries) == 0 {
		result.Warnings = append(result.Warnings, "straight-lining: no usable rating batteries found")
		d.log.Warn("straight-lining: no usable rating batteries found")
		return result
	}

	ids := ds.RespondentIDs(idColumn)
	straightCounts := make(map[core.RespondentID]int)

	for _, bg := range result.Batteries {
		for i, row := range ds.Rows {
			if isStraightLined(row, bg.Columns, d.cfg.MinStraightValues) {
				straightCounts[ids[i]]++
			}
		}
	}

	for id, count := range straightCounts {
		if count >= d.cfg.MinStraightBatteries {
			result.IDs.add(id)
		}
	}

	d.log.Info("straight-lining: %d batteries, flagged %d (threshold %d+ batteries)",
		len(result.Batteries), len(result.IDs), d.cfg.MinStraightBatteries)
	return result
}

// isStraightLined reports whether the row has at least minValues non-missing
// values in the battery and all of them are equal.
func isStraightLined(row survey.Row, columns []string, minValues int) bool {
	first := ""
	count := 0
	for _, col := range columns {
		v := row[col]
		if survey.IsMissing(v) {
			continue
		}
		canonical := survey.CanonicalValue(v)
		if count == 0 {
			first = canonical
		} else if canonical != first {
			return false
		}
		count++
	}
	return count >= minValues
}

// discoverBatteries prefers the questionnaire structure and falls back to
// column-name grouping. Groups whose combined value universe is the
// binary/ternary set {0,1,2} are multi-select checkbox questions, where
// repeated identical values are legitimate, and are excluded.
func (d *StraightLineDetector) discoverBatteries(ds *survey.Dataset, structure *survey.Structure) ([]survey.BatteryGroup, []string) {
	var groups []survey.BatteryGroup
	var warnings []string

	if structure.HasBatteries() {
		for _, q := range structure.Batteries {
			if q.HasEntryCondition {
				continue
			}
			cols := ds.MatchQuestionColumns(q.Code)
			if len(cols) == 0 {
				warnings = append(warnings, fmt.Sprintf("straight-lining: no dataset columns for battery %s, skipped", q.Code))
				d.log.Warn("straight-lining: no dataset columns for battery %s", q.Code)
				continue
			}
			if len(cols) < survey.MinBatteryItems {
				continue
			}
			sort.Strings(cols)
			groups = append(groups, survey.BatteryGroup{Code: q.Code, Columns: cols, ItemCount: len(cols)})
		}
	}

	if len(groups) > 0 {
		return groups, warnings
	}

	// Fallback: group numeric columns sharing a BASE__N naming pattern.
	bases := make(map[string][]string)
	var baseOrder []string
	for _, col := range ds.Columns {
		m := batteryItemPattern.FindStringSubmatch(col)
		if m == nil {
			continue
		}
		base := m[1]
		if _, ok := bases[base]; !ok {
			baseOrder = append(baseOrder, base)
		}
		bases[base] = append(bases[base], col)
	}

	for _, base := range baseOrder {
		cols := bases[base]
		if len(cols) < survey.MinBatteryItems {
			continue
		}
		if !ds.IsNumericColumn(cols[0]) {
			continue
		}
		if isMultiSelectUniverse(ds, cols) {
			continue
		}
		sort.Strings(cols)
		groups = append(groups, survey.BatteryGroup{Code: core.QuestionCode(base), Columns: cols, ItemCount: len(cols)})
	}

	if len(groups) > 0 {
		d.log.Info("straight-lining: heuristic detection found %d rating batteries", len(groups))
	}
	return groups, warnings
}

// isMultiSelectUniverse checks whether every numeric value across the group
// falls in {0,1,2}.
func isMultiSelectUniverse(ds *survey.Dataset, columns []string) bool {
	seen := false
	for _, col := range columns {
		for _, row := range ds.Rows {
			v, ok := survey.NumericValue(row[col])
			if !ok {
				continue
			}
			seen = true
			if v != 0 && v != 1 && v != 2 {
				return false
			}
		}
	}
	return seen
}
