package survey

import (
	"respcheck/domain/core"
)

// QuestionType classifies a questionnaire question
type QuestionType string

const (
	QuestionOpenText     QuestionType = "open_text"
	QuestionBattery      QuestionType = "battery"
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionOther        QuestionType = "other"
)

// QuestionDescriptor is the structure the questionnaire parser extracts for
// one question. Questions gated behind an entry condition are excluded from
// detection because their answers are not comparable across respondents.
type QuestionDescriptor struct {
	Code              core.QuestionCode `json:"code"`
	Text              string            `json:"text"`
	Type              QuestionType      `json:"type"`
	Options           []string          `json:"options,omitempty"`
	HasEntryCondition bool              `json:"has_entry_condition"`
}

// Structure is the parsed questionnaire: all questions plus the two subsets
// the detectors consume.
type Structure struct {
	Questions     []QuestionDescriptor `json:"questions"`
	OpenQuestions []QuestionDescriptor `json:"open_questions"`
	Batteries     []QuestionDescriptor `json:"batteries"`
}

// HasOpenQuestions reports whether any unconditioned open questions were found
func (s *Structure) HasOpenQuestions() bool {
	return s != nil && len(s.OpenQuestions) > 0
}

// HasBatteries reports whether any battery questions were found
func (s *Structure) HasBatteries() bool {
	return s != nil && len(s.Batteries) > 0
}

// BatteryGroup is a named set of dataset columns believed to represent the
// items of one rating battery. Only groups with at least MinBatteryItems
// columns participate in straight-lining detection.
type BatteryGroup struct {
	Code      core.QuestionCode `json:"code"`
	Columns   []string          `json:"columns"`
	ItemCount int               `json:"item_count"`
}

// MinBatteryItems is the minimum column count for a usable battery group.
const MinBatteryItems = 4
