package ports

import (
	"respcheck/domain/survey"
)

// StructureParser extracts question descriptors from a questionnaire
// document. Parsing failures degrade the analysis to heuristic column
// discovery; they never abort the run.
type StructureParser interface {
	ParseStructure(path string) (*survey.Structure, error)
}
