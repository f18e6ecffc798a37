package detect

import (
	"fmt"
	"strings"

	"respcheck/domain/core"
	"respcheck/domain/quality"
	"respcheck/domain/survey"
	"respcheck/internal"
)

// OpenEndedResult carries the open-ended detector output into aggregation,
// including the full per-respondent score records for the report.
type OpenEndedResult struct {
	HighRisk   idSet
	MediumRisk idSet
	Scores     map[core.RespondentID]quality.ScoreRecord
	Columns    []string
	Warnings   []string
}

// OpenEndedDetector scores every open-text answer, applies the cross-answer
// similarity penalty, and classifies respondents as high risk, medium risk
// (review) or ok.
type OpenEndedDetector struct {
	cfg    DetectorConfig
	scorer *quality.AnswerScorer
	log    *internal.Logger
}

// NewOpenEndedDetector creates an open-ended quality detector.
func NewOpenEndedDetector(cfg DetectorConfig, logger *internal.Logger) *OpenEndedDetector {
	return &OpenEndedDetector{
		cfg:    cfg,
		scorer: quality.NewAnswerScorer(cfg.Scoring),
		log:    logger,
	}
}

// Detect selects the open-text columns and classifies every respondent with
// at least one non-missing answer.
func (d *OpenEndedDetector) Detect(ds *survey.Dataset, idColumn string, structure *survey.Structure) OpenEndedResult {
	result := OpenEndedResult{
		HighRisk:   newIDSet(),
		MediumRisk: newIDSet(),
		Scores:     make(map[core.RespondentID]quality.ScoreRecord),
	}

	result.Columns, result.Warnings = d.selectColumns(ds, structure)
	if len(result.Columns) == 0 {
		result.Warnings = append(result.Warnings, "open-ended: no open-text columns found")
		d.log.Warn("open-ended: no open-text columns found")
		return result
	}
	d.log.Info("open-ended: analyzing %d columns: %s", len(result.Columns), strings.Join(result.Columns, ", "))

	ids := ds.RespondentIDs(idColumn)
	for i, row := range ds.Rows {
		var answers []string
		var scores []float64
		for _, col := range result.Columns {
			v := strings.TrimSpace(row[col])
			if v == "" {
				continue
			}
			answers = append(answers, v)
			scores = append(scores, d.scorer.Score(v))
		}
		if len(scores) == 0 {
			continue
		}

		penalty := quality.SimilarityPenalty(answers)
		if !ids[i].IsBlank() {
			result.Scores[ids[i]] = quality.NewScoreRecord(scores, penalty, answers)
		}

		switch quality.Classify(scores, penalty) {
		case quality.HighRisk:
			result.HighRisk.add(ids[i])
		case quality.MediumRisk:
			result.MediumRisk.add(ids[i])
		}
	}

	d.log.Info("open-ended: high risk %d, medium risk %d", len(result.HighRisk), len(result.MediumRisk))
	return result
}

// selectColumns prefers unconditioned open questions from the questionnaire
// structure; without structure (or when nothing matches) it falls back to a
// heuristic over textual columns.
func (d *OpenEndedDetector) selectColumns(ds *survey.Dataset, structure *survey.Structure) ([]string, []string) {
	var columns []string
	var warnings []string
	seen := make(map[string]bool)

	if structure.HasOpenQuestions() {
		for _, q := range structure.OpenQuestions {
			if q.HasEntryCondition {
				continue
			}
			cols := ds.MatchQuestionColumns(q.Code)
			if len(cols) == 0 {
				warnings = append(warnings, fmt.Sprintf("open-ended: no dataset columns for question %s, skipped", q.Code))
				d.log.Warn("open-ended: no dataset columns for question %s", q.Code)
				continue
			}
			for _, col := range cols {
				if !seen[col] {
					seen[col] = true
					columns = append(columns, col)
				}
			}
		}
	}

	if len(columns) > 0 {
		return columns, warnings
	}

	system := make(map[string]bool, len(d.cfg.SystemColumns))
	for _, c := range d.cfg.SystemColumns {
		system[c] = true
	}

	for _, col := range ds.Columns {
		if system[col] || d.skipColumnName(col) {
			continue
		}
		if ds.IsNumericColumn(col) {
			continue
		}
		if ds.MeanTextLength(col) > d.cfg.MinOpenTextLength {
			columns = append(columns, col)
		}
	}
	if len(columns) > 0 {
		d.log.Info("open-ended: heuristic detection found %d text columns", len(columns))
	}
	return columns, warnings
}

func (d *OpenEndedDetector) skipColumnName(col string) bool {
	for _, prefix := range d.cfg.OpenSkipPrefixes {
		if strings.HasPrefix(col, prefix) {
			return true
		}
	}
	for _, suffix := range d.cfg.OpenSkipSuffixes {
		if strings.HasSuffix(col, suffix) {
			return true
		}
	}
	return false
}
