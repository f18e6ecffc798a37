package quality

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Classification is the per-respondent open-ended verdict
type Classification string

const (
	HighRisk   Classification = "high_risk"
	MediumRisk Classification = "medium_risk"
	OK         Classification = "ok"
)

// Classification thresholds on the penalty-adjusted mean score.
const (
	highRiskThreshold   = 0.2
	mediumRiskThreshold = 0.35
)

// ScoreRecord retains the full scoring detail for one respondent, so a
// reviewer can see why a classification was made, not just the verdict.
type ScoreRecord struct {
	AvgScore          float64   `json:"avg_score"`
	SimilarityPenalty float64   `json:"similarity_penalty"`
	AdjustedScore     float64   `json:"adjusted_score"`
	IndividualScores  []float64 `json:"individual_scores"`
	Answers           []string  `json:"answers"`
}

// Classify turns per-answer scores plus the cross-answer penalty into the
// respondent-level verdict. No scores means nothing to judge: ok.
func Classify(scores []float64, penalty float64) Classification {
	if len(scores) == 0 {
		return OK
	}
	mean, _ := stats.Mean(scores)
	adjusted := mean - penalty

	switch {
	case adjusted <= highRiskThreshold:
		return HighRisk
	case adjusted <= mediumRiskThreshold:
		return MediumRisk
	default:
		return OK
	}
}

// NewScoreRecord builds the audit record for one respondent. Values are
// rounded to two decimals for stable report output; classification always
// uses the unrounded values.
func NewScoreRecord(scores []float64, penalty float64, answers []string) ScoreRecord {
	mean, _ := stats.Mean(scores)
	rounded := make([]float64, len(scores))
	for i, s := range scores {
		rounded[i] = round2(s)
	}
	return ScoreRecord{
		AvgScore:          round2(mean),
		SimilarityPenalty: round2(penalty),
		AdjustedScore:     round2(mean - penalty),
		IndividualScores:  rounded,
		Answers:           answers,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
