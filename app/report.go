package app

import (
	"fmt"
	"strings"

	"respcheck/internal/detect"
)

// BuildReport renders an analysis result as a markdown summary. The UI turns
// it into HTML; the CLI prints it as-is.
func BuildReport(result *detect.AnalysisResult) string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("# Respondent Quality Report")
	line("")
	line("Run `%s`, generated %s.", result.RunID, result.CreatedAt.Time().Format("2006-01-02 15:04:05"))
	line("")
	line("- Total respondents: **%d**", result.TotalRespondents)
	line("- ID column: `%s`", result.IDColumn)
	line("- Total flagged: **%d**", len(result.AllBad))
	line("")

	line("## Speeders")
	line("")
	if result.HasTimingData {
		line("- Flagged: **%d**", len(result.Speeders))
		line("- Threshold: < %.0fs (%.1f min)", result.SpeederThresholdSec, result.SpeederThresholdMin)
		if p := result.DurationProfile; p != nil {
			line("- Durations: median %.0fs, mean %.0fs (sd %.0fs), IQR %.0fs to %.0fs, range %.0fs to %.0fs over %d valid values",
				p.MedianSec, p.MeanSec, p.StdDevSec, p.Q25Sec, p.Q75Sec, p.MinSec, p.MaxSec, p.ValidCount)
		}
	} else {
		line("No usable timing data, speeder detection skipped.")
	}
	line("")

	line("## Open-ended answer quality")
	line("")
	line("- High risk (score <= 0.2): **%d**", len(result.OpenHighRisk))
	line("- Medium risk (score <= 0.35): **%d**", len(result.OpenMediumRisk))
	line("")

	line("## Straight-lining")
	line("")
	line("- Flagged: **%d**", len(result.StraightLiners))
	line("- Longest battery: %d items", result.BatteryLength)
	line("")

	line("## Risk groups")
	line("")
	line("| Group | Count |")
	line("|---|---|")
	line("| All three signals | %d |", len(result.RiskGroups.AllThree))
	line("| Speeder + open-ended | %d |", len(result.RiskGroups.SpeedersOpen))
	line("| Speeder + straight-liner | %d |", len(result.RiskGroups.SpeedersStraight))
	line("| Open-ended + straight-liner | %d |", len(result.RiskGroups.OpenStraight))
	line("| Speeder only | %d |", len(result.RiskGroups.SpeedersOnly))
	line("| Open-ended only | %d |", len(result.RiskGroups.OpenOnly))
	line("| Straight-liner only | %d |", len(result.RiskGroups.StraightOnly))
	line("")

	line("## Recommendations")
	line("")
	line("- HIGH RISK (recommend delete): **%d**", len(result.Recommendations.HighRisk))
	line("- MEDIUM RISK (consider delete): **%d**", len(result.Recommendations.MediumRisk))
	if len(result.Recommendations.LowRisk) > 0 {
		line("- LOW RISK (review): **%d**", len(result.Recommendations.LowRisk))
	}

	if len(result.Warnings) > 0 {
		line("")
		line("## Warnings")
		line("")
		for _, w := range result.Warnings {
			line("- %s", w)
		}
	}

	return b.String()
}
