package ports

import (
	"respcheck/internal/detect"
)

// SyntaxGenerator formats an analysis result into an executable export
// script for excluding flagged respondents (pure formatting, no I/O).
type SyntaxGenerator interface {
	Generate(result *detect.AnalysisResult) string
}
