package app

import (
	"context"
	"time"

	"respcheck/domain/survey"
	"respcheck/internal"
	"respcheck/internal/detect"
	"respcheck/internal/errors"
	"respcheck/ports"
)

// AnalysisService orchestrates one respondent-quality run: load the dataset,
// optionally parse the questionnaire structure, run the detection engine and
// render the exclusion syntax plus the markdown report.
type AnalysisService struct {
	reader ports.DatasetReader
	parser ports.StructureParser
	syntax ports.SyntaxGenerator
	engine *detect.Engine
	log    *internal.Logger
}

// AnalysisRequest defines the inputs for one analysis run.
type AnalysisRequest struct {
	DataPath          string
	QuestionnairePath string // optional, enables descriptor-driven detection
}

// AnalysisOutput bundles the engine result with its rendered artifacts.
type AnalysisOutput struct {
	Result    *detect.AnalysisResult `json:"result"`
	Syntax    string                 `json:"-"`
	Report    string                 `json:"-"`
	RuntimeMs int64                  `json:"runtime_ms"`
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(reader ports.DatasetReader, parser ports.StructureParser, engine *detect.Engine, syntax ports.SyntaxGenerator, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &AnalysisService{
		reader: reader,
		parser: parser,
		syntax: syntax,
		engine: engine,
		log:    logger,
	}
}

// Analyze executes the full pipeline. A missing or unparsable questionnaire
// degrades detection to heuristic column discovery; only an unreadable data
// file aborts the run.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisOutput, error) {
	startTime := time.Now()

	if req.DataPath == "" {
		return nil, errors.InvalidInput("data file path is required")
	}

	dataset, err := s.reader.ReadDataset(req.DataPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dataset")
	}
	s.log.Info("[AnalysisService] dataset loaded: %d rows, %d columns", len(dataset.Rows), len(dataset.Columns))

	structure := s.parseStructure(req.QuestionnairePath)

	result, err := s.engine.Analyze(ctx, dataset, structure)
	if err != nil {
		return nil, errors.Wrap(err, "analysis failed")
	}
	if structure == nil && req.QuestionnairePath != "" {
		result.Warnings = append(result.Warnings, "questionnaire could not be parsed, heuristic column detection used")
	}

	output := &AnalysisOutput{
		Result:    result,
		Syntax:    s.syntax.Generate(result),
		Report:    BuildReport(result),
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}

	s.log.Info("[AnalysisService] run %s: %d/%d flagged (high=%d medium=%d) in %dms",
		result.RunID, len(result.AllBad), result.TotalRespondents,
		len(result.Recommendations.HighRisk), len(result.Recommendations.MediumRisk), output.RuntimeMs)
	return output, nil
}

func (s *AnalysisService) parseStructure(path string) *survey.Structure {
	if path == "" || s.parser == nil {
		return nil
	}
	structure, err := s.parser.ParseStructure(path)
	if err != nil {
		s.log.Warn("[AnalysisService] questionnaire parsing failed, falling back to heuristics: %v", err)
		return nil
	}
	return structure
}
