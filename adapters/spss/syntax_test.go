package spss

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"respcheck/domain/core"
	"respcheck/internal/detect"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
}

func sampleResult() *detect.AnalysisResult {
	return &detect.AnalysisResult{
		TotalRespondents: 100,
		IDColumn:         "ExternalId",
		Speeders:         []core.RespondentID{"101", "102"},
		OpenHighRisk:     []core.RespondentID{"101"},
		OpenMediumRisk:   []core.RespondentID{"103"},
		StraightLiners:   []core.RespondentID{"102"},
		Recommendations: detect.Recommendations{
			HighRisk:   []core.RespondentID{"101", "102"},
			MediumRisk: []core.RespondentID{"103"},
		},
		AllBad: []core.RespondentID{"101", "102", "103"},
	}
}

func TestGenerateSyntax(t *testing.T) {
	g := NewGeneratorAt(fixedClock)
	syntax := g.Generate(sampleResult())

	assert.Contains(t, syntax, "* Generated: 2025-03-14 10:30:00.")
	assert.Contains(t, syntax, "* Total respondents: 100.")
	assert.Contains(t, syntax, "* Total flagged: 3.")

	assert.Contains(t, syntax, "* === VARIANTA 1: Smazat VSE podezrele (3 respondents) ===.")
	assert.Contains(t, syntax, "SELECT IF NOT ANY(ExternalId,\n    101, 102, 103).\nEXECUTE.")

	assert.Contains(t, syntax, "* === VARIANTA 2: Smazat pouze VYSOKE RIZIKO (2 respondents) ===.")
	assert.Contains(t, syntax, "* SELECT IF NOT ANY(ExternalId,\n*     101, 102).\n* EXECUTE.")

	assert.Contains(t, syntax, "* === VARIANTA 3: Smazat VYSOKE + STREDNI RIZIKO (3 respondents) ===.")
	assert.True(t, strings.HasSuffix(syntax, "* === KONEC SYNTAXE ===."))
}

func TestGenerateSyntaxEmptyResult(t *testing.T) {
	g := NewGeneratorAt(fixedClock)
	syntax := g.Generate(&detect.AnalysisResult{TotalRespondents: 50, IDColumn: "ExternalId"})

	assert.Contains(t, syntax, "* Zadni podezreli respondenti nenalezeni.")
	assert.NotContains(t, syntax, "SELECT IF")
}

func TestFormatIDQuoting(t *testing.T) {
	assert.Equal(t, "123", formatID("123"))
	assert.Equal(t, "'abc'", formatID("abc"))
	assert.Equal(t, "'12.5'", formatID("12.5"))
	assert.Equal(t, "'it''s'", formatID("it's"))
}

func TestFormatIDListChunking(t *testing.T) {
	ids := make([]core.RespondentID, 12)
	for i := range ids {
		ids[i] = core.RespondentID(strconv.Itoa(100 + i))
	}

	formatted := formatIDList(ids)
	lines := strings.Split(formatted, ",\n    ")
	assert.Len(t, lines, 2)
	assert.Equal(t, 10, strings.Count(lines[0], ",")+1)
	assert.Equal(t, 2, strings.Count(lines[1], ",")+1)
}
