package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"respcheck/domain/core"
	"respcheck/internal"
)

func TestAggregateGroupsAndTiers(t *testing.T) {
	speeders := SpeederResult{IDs: newIDSet("s", "so", "sb", "all")}
	open := OpenEndedResult{
		HighRisk:   newIDSet("oh", "so"),
		MediumRisk: newIDSet("om", "all"),
	}
	straight := StraightLineResult{IDs: newIDSet("st", "sb", "all"), BatteryLength: 12}

	a := NewRiskAggregator(DefaultConfig(), internal.NewDefaultLogger())
	groups, recs, union := a.Aggregate(speeders, open, straight)

	assert.Equal(t, []core.RespondentID{"all"}, groups.AllThree)
	assert.Equal(t, []core.RespondentID{"so"}, groups.SpeedersOpen)
	assert.Equal(t, []core.RespondentID{"sb"}, groups.SpeedersStraight)
	assert.Equal(t, []core.RespondentID{"s"}, groups.SpeedersOnly)
	assert.ElementsMatch(t, []core.RespondentID{"oh", "om"}, groups.OpenOnly)
	assert.Equal(t, []core.RespondentID{"st"}, groups.StraightOnly)
	assert.Empty(t, groups.OpenStraight)

	// Two or more signals, or an open-ended high-risk verdict, means high.
	assert.ElementsMatch(t, []core.RespondentID{"all", "so", "sb", "oh"}, recs.HighRisk)
	assert.ElementsMatch(t, []core.RespondentID{"s", "om", "st"}, recs.MediumRisk)
	assert.Empty(t, recs.LowRisk)

	assert.Equal(t, 7, len(union))
}

func TestAggregatePartitionsUnion(t *testing.T) {
	speeders := SpeederResult{IDs: newIDSet("a", "b", "c")}
	open := OpenEndedResult{HighRisk: newIDSet("b"), MediumRisk: newIDSet("d")}
	straight := StraightLineResult{IDs: newIDSet("c", "d", "e")}

	a := NewRiskAggregator(DefaultConfig(), internal.NewDefaultLogger())
	groups, recs, union := a.Aggregate(speeders, open, straight)

	grouped := len(groups.AllThree) + len(groups.SpeedersOpen) + len(groups.SpeedersStraight) +
		len(groups.OpenStraight) + len(groups.SpeedersOnly) + len(groups.OpenOnly) + len(groups.StraightOnly)
	assert.Equal(t, len(union), grouped, "every flagged respondent lands in exactly one group")

	tiered := len(recs.HighRisk) + len(recs.MediumRisk) + len(recs.LowRisk)
	assert.Equal(t, len(union), tiered)
}

func TestAggregateDropsBlankIDs(t *testing.T) {
	speeders := SpeederResult{IDs: newIDSet("a")}
	open := OpenEndedResult{HighRisk: newIDSet(), MediumRisk: newIDSet()}
	straight := StraightLineResult{IDs: newIDSet("", "a")}

	a := NewRiskAggregator(DefaultConfig(), internal.NewDefaultLogger())
	_, _, union := a.Aggregate(speeders, open, straight)

	assert.Equal(t, []core.RespondentID{"a"}, union.sorted())
}

func TestAggregateLongBatteryPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongBatteryTierPolicy = true

	a := NewRiskAggregator(cfg, internal.NewDefaultLogger())

	open := OpenEndedResult{HighRisk: newIDSet(), MediumRisk: newIDSet()}

	// Short battery: a lone straight-liner is only low risk.
	_, recs, _ := a.Aggregate(SpeederResult{IDs: newIDSet()}, open,
		StraightLineResult{IDs: newIDSet("x"), BatteryLength: 5})
	assert.Equal(t, []core.RespondentID{"x"}, recs.LowRisk)
	assert.Empty(t, recs.MediumRisk)

	// Long battery: straight-lining is meaningful, medium risk.
	_, recs, _ = a.Aggregate(SpeederResult{IDs: newIDSet()}, open,
		StraightLineResult{IDs: newIDSet("x"), BatteryLength: 15})
	assert.Equal(t, []core.RespondentID{"x"}, recs.MediumRisk)
	assert.Empty(t, recs.LowRisk)
}
