package detect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"respcheck/domain/survey"
	"respcheck/internal"
)

// SpeederResult carries the speeder detector output into aggregation.
type SpeederResult struct {
	IDs          idSet
	ThresholdSec float64
	HasTiming    bool
	Profile      *DurationProfile
	Warnings     []string
}

// SpeederDetector flags respondents who finished implausibly fast relative
// to the population: strictly below one third of the median completion time.
type SpeederDetector struct {
	cfg DetectorConfig
	log *internal.Logger
}

// NewSpeederDetector creates a speeder detector.
func NewSpeederDetector(cfg DetectorConfig, logger *internal.Logger) *SpeederDetector {
	return &SpeederDetector{cfg: cfg, log: logger}
}

// Detect computes the duration threshold and the flagged set. Missing or
// unparsable timing data degrades to an empty result with a warning; it
// never fails the run.
func (d *SpeederDetector) Detect(ds *survey.Dataset, idColumn string) SpeederResult {
	result := SpeederResult{IDs: newIDSet()}

	durationCol := ""
	for _, name := range d.cfg.DurationColumns {
		if ds.HasColumn(name) {
			durationCol = name
			break
		}
	}
	if durationCol == "" {
		result.Warnings = append(result.Warnings, "speeders: no duration column found")
		d.log.Warn("speeders: no duration column found")
		return result
	}

	// One parsed slot per row; nil means missing/unparsable and excluded
	// from both the threshold and the flagging.
	parsed := make([]*float64, ds.RowCount())
	var valid []float64
	for i, row := range ds.Rows {
		sec, ok := ParseDurationSeconds(row[durationCol])
		if !ok {
			if !survey.IsMissing(row[durationCol]) {
				d.log.Warn("speeders: unparsable duration %q, respondent skipped", row[durationCol])
			}
			continue
		}
		v := sec
		parsed[i] = &v
		if sec > 0 {
			valid = append(valid, sec)
		}
	}

	if len(valid) == 0 {
		result.Warnings = append(result.Warnings, "speeders: no valid duration values in column "+durationCol)
		d.log.Warn("speeders: no valid duration values in column %s", durationCol)
		return result
	}

	median, err := stats.Median(valid)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("speeders: median computation failed: %v", err))
		return result
	}

	result.HasTiming = true
	result.ThresholdSec = median / 3
	result.Profile = durationProfile(valid, median)

	ids := ds.RespondentIDs(idColumn)
	for i, sec := range parsed {
		if sec != nil && *sec < result.ThresholdSec {
			result.IDs.add(ids[i])
		}
	}

	d.log.Info("speeders: median %.0fs, threshold %.0fs, flagged %d",
		median, result.ThresholdSec, len(result.IDs))
	return result
}

// durationProfile summarizes the valid completion-time distribution for
// reporting alongside the threshold.
func durationProfile(valid []float64, median float64) *DurationProfile {
	sorted := make([]float64, len(valid))
	copy(sorted, valid)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return &DurationProfile{
		ValidCount: len(sorted),
		MedianSec:  median,
		MeanSec:    mean,
		StdDevSec:  std,
		Q25Sec:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Q75Sec:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		MinSec:     sorted[0],
		MaxSec:     sorted[len(sorted)-1],
	}
}

// ParseDurationSeconds parses a completion-time cell. Accepted formats:
// "H:MM:SS" with optional fractional seconds and optional trailing "s",
// a bare numeric seconds value, and decimal-comma numerics ("123,4").
func ParseDurationSeconds(value string) (float64, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}

	clock := strings.TrimSuffix(v, "s")
	if parts := strings.Split(clock, ":"); len(parts) == 3 {
		hours, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		minutes, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		seconds, errS := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if errH == nil && errM == nil && errS == nil {
			return float64(hours)*3600 + float64(minutes)*60 + seconds, true
		}
		return 0, false
	}

	if sec, err := strconv.ParseFloat(v, 64); err == nil {
		return sec, true
	}
	if strings.Contains(v, ",") {
		if sec, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64); err == nil {
			return sec, true
		}
	}
	return 0, false
}
