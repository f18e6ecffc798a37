package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"respcheck/domain/survey"
	"respcheck/internal"
	"respcheck/internal/errors"
)

// Reader loads survey exports from CSV and XLSX files into the tabular
// dataset model. The first row is the header; cells are trimmed and kept as
// raw strings, with missing values represented by empty cells.
type Reader struct {
	log *internal.Logger
}

// NewReader creates a dataset reader.
func NewReader(logger *internal.Logger) *Reader {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &Reader{log: logger}
}

// ReadDataset reads the file based on its extension.
func (r *Reader) ReadDataset(path string) (*survey.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound("data file " + path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return r.readCSV(path)
	case ".xlsx":
		return r.readXLSX(path)
	default:
		return nil, errors.InvalidInput("unsupported data file type: " + filepath.Ext(path))
	}
}

func (r *Reader) readCSV(path string) (*survey.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("failed to read CSV file", err)
	}

	return r.buildDataset(rows)
}

func (r *Reader) readXLSX(path string) (*survey.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.ParseError("failed to open XLSX file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("XLSX file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError("failed to read sheet "+sheets[0], err)
	}

	return r.buildDataset(rows)
}

// buildDataset converts raw string rows into the dataset model. A file with
// only a header (or nothing) yields an empty dataset, which the engine
// handles as a zero-respondent run.
func (r *Reader) buildDataset(rows [][]string) (*survey.Dataset, error) {
	if len(rows) == 0 {
		return &survey.Dataset{}, nil
	}

	columns := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		columns[i] = strings.TrimSpace(header)
	}

	dataRows := make([]survey.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(survey.Row, len(columns))
		for j, cell := range raw {
			if j < len(columns) {
				row[columns[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, row)
	}

	r.log.Info("tabular: loaded %d columns, %d rows", len(columns), len(dataRows))
	return &survey.Dataset{Columns: columns, Rows: dataRows}, nil
}
