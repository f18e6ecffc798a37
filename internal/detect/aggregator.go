package detect

import (
	"respcheck/internal"
)

// RiskAggregator fuses the three detector signals into mutually exclusive
// risk groups and a per-respondent recommendation tier.
type RiskAggregator struct {
	cfg DetectorConfig
	log *internal.Logger
}

// NewRiskAggregator creates a risk aggregator.
func NewRiskAggregator(cfg DetectorConfig, logger *internal.Logger) *RiskAggregator {
	return &RiskAggregator{cfg: cfg, log: logger}
}

// Aggregate buckets every flagged respondent into exactly one risk group and
// one recommendation tier. Open-ended high risk forces the high tier on its
// own; otherwise two or more signals mean high, one means medium. The
// optional battery-length policy demotes single-signal straight-liners of
// short batteries to low.
func (a *RiskAggregator) Aggregate(speeders SpeederResult, open OpenEndedResult, straight StraightLineResult) (RiskGroups, Recommendations, idSet) {
	union := newIDSet()
	for id := range speeders.IDs {
		union.add(id)
	}
	for id := range open.HighRisk {
		union.add(id)
	}
	for id := range open.MediumRisk {
		union.add(id)
	}
	for id := range straight.IDs {
		union.add(id)
	}

	var groups RiskGroups
	var recs Recommendations

	for _, id := range union.sorted() {
		isSpeeder := speeders.IDs.has(id)
		isOpenHigh := open.HighRisk.has(id)
		isOpen := isOpenHigh || open.MediumRisk.has(id)
		isStraight := straight.IDs.has(id)

		switch {
		case isSpeeder && isOpen && isStraight:
			groups.AllThree = append(groups.AllThree, id)
		case isSpeeder && isOpen:
			groups.SpeedersOpen = append(groups.SpeedersOpen, id)
		case isSpeeder && isStraight:
			groups.SpeedersStraight = append(groups.SpeedersStraight, id)
		case isOpen && isStraight:
			groups.OpenStraight = append(groups.OpenStraight, id)
		case isSpeeder:
			groups.SpeedersOnly = append(groups.SpeedersOnly, id)
		case isOpen:
			groups.OpenOnly = append(groups.OpenOnly, id)
		case isStraight:
			groups.StraightOnly = append(groups.StraightOnly, id)
		}

		count := 0
		for _, signal := range []bool{isSpeeder, isOpen, isStraight} {
			if signal {
				count++
			}
		}

		switch {
		case count >= 2 || isOpenHigh:
			recs.HighRisk = append(recs.HighRisk, id)
		case a.cfg.LongBatteryTierPolicy && count == 1 && isStraight &&
			straight.BatteryLength < a.cfg.LongBatteryThreshold:
			recs.LowRisk = append(recs.LowRisk, id)
		default:
			recs.MediumRisk = append(recs.MediumRisk, id)
		}
	}

	a.log.Info("aggregation: flagged %d (high %d, medium %d, low %d)",
		len(union), len(recs.HighRisk), len(recs.MediumRisk), len(recs.LowRisk))
	return groups, recs, union
}
