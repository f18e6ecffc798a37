package ports

import (
	"respcheck/domain/survey"
)

// DatasetReader loads a survey export into the tabular dataset the engine
// consumes. Implementations own file-format concerns (CSV, XLSX); a file
// that cannot be read at all is the one hard failure of the pipeline.
type DatasetReader interface {
	ReadDataset(path string) (*survey.Dataset, error)
}
