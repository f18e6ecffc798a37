package detect

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"respcheck/domain/core"
	"respcheck/domain/survey"
	"respcheck/internal"
)

// Engine runs the full respondent-quality analysis: the three detectors over
// one shared read-only dataset, then risk aggregation. One Engine is safe
// for concurrent use; all run state is local to Analyze.
type Engine struct {
	cfg        DetectorConfig
	log        *internal.Logger
	speeder    *SpeederDetector
	openEnded  *OpenEndedDetector
	straight   *StraightLineDetector
	aggregator *RiskAggregator
}

// NewEngine creates an analysis engine with the given configuration.
func NewEngine(cfg DetectorConfig, logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &Engine{
		cfg:        cfg,
		log:        logger,
		speeder:    NewSpeederDetector(cfg, logger),
		openEnded:  NewOpenEndedDetector(cfg, logger),
		straight:   NewStraightLineDetector(cfg, logger),
		aggregator: NewRiskAggregator(cfg, logger),
	}
}

// Analyze performs one batch analysis run. The detectors are independent and
// run concurrently over the shared dataset; a structure of nil means no
// questionnaire was supplied and every detector uses its heuristic fallback.
// An empty dataset yields an all-empty result, not an error.
func (e *Engine) Analyze(ctx context.Context, ds *survey.Dataset, structure *survey.Structure) (*AnalysisResult, error) {
	idColumn := ds.FindIDColumn(e.cfg.IDColumnCandidates, e.cfg.IDColumnExclusions)
	e.log.Info("analysis: %d respondents, %d variables, id column %q",
		ds.RowCount(), len(ds.Columns), idColumn)

	var (
		speederRes  SpeederResult
		openRes     OpenEndedResult
		straightRes StraightLineResult
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		speederRes = e.speeder.Detect(ds, idColumn)
		return nil
	})
	g.Go(func() error {
		openRes = e.openEnded.Detect(ds, idColumn, structure)
		return nil
	})
	g.Go(func() error {
		straightRes = e.straight.Detect(ds, idColumn, structure)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups, recs, union := e.aggregator.Aggregate(speederRes, openRes, straightRes)

	result := &AnalysisResult{
		RunID:            core.RunID(core.NewID()),
		CreatedAt:        core.Now(),
		TotalRespondents: ds.RowCount(),
		IDColumn:         idColumn,

		HasTimingData:   speederRes.HasTiming,
		DurationProfile: speederRes.Profile,

		Speeders:       speederRes.IDs.sorted(),
		OpenHighRisk:   openRes.HighRisk.sorted(),
		OpenMediumRisk: openRes.MediumRisk.sorted(),
		StraightLiners: straightRes.IDs.sorted(),
		BatteryLength:  straightRes.BatteryLength,

		RiskGroups:      groups,
		Recommendations: recs,
		AllBad:          union.sorted(),

		OpenEndedScores: openRes.Scores,
	}

	if speederRes.HasTiming {
		result.SpeederThresholdSec = math.Round(speederRes.ThresholdSec)
		result.SpeederThresholdMin = math.Round(speederRes.ThresholdSec/60*10) / 10
	}

	result.Warnings = append(result.Warnings, speederRes.Warnings...)
	result.Warnings = append(result.Warnings, openRes.Warnings...)
	result.Warnings = append(result.Warnings, straightRes.Warnings...)

	return result, nil
}
