package spss

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"respcheck/domain/core"
	"respcheck/internal/detect"
)

// Generator formats an analysis result into SPSS deletion syntax with three
// variants: delete everything flagged, delete high risk only, and delete
// high plus medium risk. Variant 1 is active; variants 2 and 3 ship
// commented out so the analyst picks one by uncommenting it.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a syntax generator.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt creates a generator with a fixed clock, for tests.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate renders the full syntax file content.
func (g *Generator) Generate(result *detect.AnalysisResult) string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("* ================================================================.")
	line("* Bad Respondents Detector - SPSS Syntax.")
	line("* Generated: %s.", g.now().Format("2006-01-02 15:04:05"))
	line("* ================================================================.")
	line("* Total respondents: %d.", result.TotalRespondents)
	line("* Speeders: %d.", len(result.Speeders))
	line("* Suspicious open-ended (high risk): %d.", len(result.OpenHighRisk))
	line("* Suspicious open-ended (medium risk): %d.", len(result.OpenMediumRisk))
	line("* Straight-liners: %d.", len(result.StraightLiners))
	line("* Total flagged: %d.", len(result.AllBad))
	line("* HIGH RISK (recommend delete): %d.", len(result.Recommendations.HighRisk))
	line("* MEDIUM RISK (consider delete): %d.", len(result.Recommendations.MediumRisk))
	line("* ================================================================.")
	line("")

	line("* === VARIANTA 1: Smazat VSE podezrele (%d respondents) ===.", len(result.AllBad))
	if len(result.AllBad) > 0 {
		line("SELECT IF NOT ANY(%s,", result.IDColumn)
		line("    %s).", formatIDList(result.AllBad))
		line("EXECUTE.")
	} else {
		line("* Zadni podezreli respondenti nenalezeni.")
	}
	line("")

	highRisk := result.Recommendations.HighRisk
	line("* === VARIANTA 2: Smazat pouze VYSOKE RIZIKO (%d respondents) ===.", len(highRisk))
	if len(highRisk) > 0 {
		line("* SELECT IF NOT ANY(%s,", result.IDColumn)
		line("*     %s).", formatIDList(highRisk))
		line("* EXECUTE.")
	} else {
		line("* Zadni vysoko rizikovi respondenti nenalezeni.")
	}
	line("")

	highMedium := append(append([]core.RespondentID{}, highRisk...), result.Recommendations.MediumRisk...)
	line("* === VARIANTA 3: Smazat VYSOKE + STREDNI RIZIKO (%d respondents) ===.", len(highMedium))
	if len(highMedium) > 0 {
		line("* SELECT IF NOT ANY(%s,", result.IDColumn)
		line("*     %s).", formatIDList(highMedium))
		line("* EXECUTE.")
	} else {
		line("* Zadni respondenti v teto kategorii.")
	}
	line("")

	b.WriteString("* === KONEC SYNTAXE ===.")
	return b.String()
}

// formatIDList renders IDs for the ANY() expression: numeric IDs bare,
// everything else single-quoted, chunked ten per line for readability.
// Identifiers arrive already canonicalized (integral values carry no
// decimal point).
func formatIDList(ids []core.RespondentID) string {
	formatted := make([]string, len(ids))
	for i, id := range ids {
		formatted[i] = formatID(id)
	}

	var chunks []string
	for start := 0; start < len(formatted); start += 10 {
		end := start + 10
		if end > len(formatted) {
			end = len(formatted)
		}
		chunks = append(chunks, strings.Join(formatted[start:end], ", "))
	}
	return strings.Join(chunks, ",\n    ")
}

func formatID(id core.RespondentID) string {
	s := id.String()
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
