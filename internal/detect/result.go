package detect

import (
	"sort"

	"respcheck/domain/core"
	"respcheck/domain/quality"
)

// RiskGroups are the seven mutually exclusive buckets over the three boolean
// signals (speeder, bad open-ended, straight-liner); the all-false case
// cannot occur because only flagged respondents are bucketed.
type RiskGroups struct {
	AllThree         []core.RespondentID `json:"all_three"`
	SpeedersOpen     []core.RespondentID `json:"speeders_open"`
	SpeedersStraight []core.RespondentID `json:"speeders_straight"`
	OpenStraight     []core.RespondentID `json:"open_straight"`
	SpeedersOnly     []core.RespondentID `json:"speeders_only"`
	OpenOnly         []core.RespondentID `json:"open_only"`
	StraightOnly     []core.RespondentID `json:"straight_only"`
}

// Recommendations are the final per-tier exclusion lists.
type Recommendations struct {
	HighRisk   []core.RespondentID `json:"high_risk"`
	MediumRisk []core.RespondentID `json:"medium_risk"`
	LowRisk    []core.RespondentID `json:"low_risk"`
}

// DurationProfile summarizes the completion-time distribution the speeder
// threshold was derived from.
type DurationProfile struct {
	ValidCount int     `json:"valid_count"`
	MedianSec  float64 `json:"median_sec"`
	MeanSec    float64 `json:"mean_sec"`
	StdDevSec  float64 `json:"stddev_sec"`
	Q25Sec     float64 `json:"q25_sec"`
	Q75Sec     float64 `json:"q75_sec"`
	MinSec     float64 `json:"min_sec"`
	MaxSec     float64 `json:"max_sec"`
}

// AnalysisResult is the engine's complete output for one run. It is the sole
// handoff contract toward reporting and syntax generation.
type AnalysisResult struct {
	RunID            core.RunID     `json:"run_id"`
	CreatedAt        core.Timestamp `json:"created_at"`
	TotalRespondents int            `json:"total_respondents"`
	IDColumn         string         `json:"id_column"`

	SpeederThresholdSec float64          `json:"speeder_threshold_sec"`
	SpeederThresholdMin float64          `json:"speeder_threshold_min"`
	HasTimingData       bool             `json:"has_timing_data"`
	DurationProfile     *DurationProfile `json:"duration_profile,omitempty"`

	Speeders       []core.RespondentID `json:"speeders"`
	OpenHighRisk   []core.RespondentID `json:"suspicious_open"`
	OpenMediumRisk []core.RespondentID `json:"suspicious_open_medium"`
	StraightLiners []core.RespondentID `json:"straight_liners"`
	BatteryLength  int                 `json:"battery_length"`

	RiskGroups      RiskGroups          `json:"risk_groups"`
	Recommendations Recommendations     `json:"recommendations"`
	AllBad          []core.RespondentID `json:"all_bad"`

	OpenEndedScores map[core.RespondentID]quality.ScoreRecord `json:"open_ended_scores"`

	Warnings []string `json:"warnings,omitempty"`
}

// TotalFlagged returns the size of the deduplicated union of all signals.
func (r *AnalysisResult) TotalFlagged() int {
	return len(r.AllBad)
}

// idSet is the working representation detectors hand to the aggregator.
type idSet map[core.RespondentID]struct{}

func newIDSet(ids ...core.RespondentID) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// add ignores blank identifiers so they never reach risk groups or all_bad.
func (s idSet) add(id core.RespondentID) {
	if id.IsBlank() {
		return
	}
	s[id] = struct{}{}
}

func (s idSet) has(id core.RespondentID) bool {
	_, ok := s[id]
	return ok
}

// sorted returns the members in lexical order for deterministic output.
func (s idSet) sorted() []core.RespondentID {
	ids := make([]core.RespondentID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
