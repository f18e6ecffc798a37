package detect

import (
	"respcheck/domain/quality"
)

// DetectorConfig carries every tunable of the detection run. Built once,
// never mutated; the defaults reproduce the Czech survey-export conventions
// the tool was originally written for.
type DetectorConfig struct {
	// IDColumnCandidates are tried in order; the first present column whose
	// non-missing values are unique for more than half the rows wins.
	IDColumnCandidates []string
	// IDColumnExclusions are columns that contain "id" but never identify a
	// respondent.
	IDColumnExclusions []string

	// DurationColumns are the candidate completion-time columns, in order.
	DurationColumns []string

	// SystemColumns are excluded from heuristic open-text discovery
	// (identifiers, timestamps, timing).
	SystemColumns []string
	// OpenSkipPrefixes/OpenSkipSuffixes name column patterns excluded from
	// heuristic open-text discovery ("User*" metadata, "*_jina" other-option
	// text fields).
	OpenSkipPrefixes []string
	OpenSkipSuffixes []string
	// MinOpenTextLength is the minimum mean non-missing character length for
	// a column to count as open-ended rather than coded.
	MinOpenTextLength float64

	// MinStraightValues is the minimum non-missing battery values a
	// respondent needs before an all-equal run counts as straight-lining.
	MinStraightValues int
	// MinStraightBatteries is the corroboration threshold: straight-lining
	// must appear in at least this many distinct batteries.
	MinStraightBatteries int

	// LongBatteryTierPolicy enables the optional battery-length tier rule:
	// a single-signal straight-liner whose longest battery is shorter than
	// LongBatteryThreshold items drops from medium to low tier.
	LongBatteryTierPolicy bool
	LongBatteryThreshold  int

	// Scoring is the locale rule set for open-ended answer scoring.
	Scoring quality.ScoringConfig
}

// DefaultConfig returns the standard detection configuration.
func DefaultConfig() DetectorConfig {
	return DetectorConfig{
		IDColumnCandidates: []string{
			"ExternalId", "UserPanelId", "QuestionaryUserId", "email", "ReferralCode",
		},
		IDColumnExclusions: []string{"RespondentFinishedOnQuestion"},
		DurationColumns:    []string{"duration", "Duration", "DURATION", "interview_length"},
		SystemColumns: []string{
			"start", "end", "duration", "RespondentFinishedOnQuestion",
			"ExternalId", "ReferralCode", "QuestionaryUserId", "email", "UserPanelId",
		},
		OpenSkipPrefixes:      []string{"User"},
		OpenSkipSuffixes:      []string{"_jina"},
		MinOpenTextLength:     3,
		MinStraightValues:     4,
		MinStraightBatteries:  2,
		LongBatteryTierPolicy: false,
		LongBatteryThreshold:  10,
		Scoring:               quality.DefaultCzechScoringConfig(),
	}
}
