package questionnaire

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"respcheck/domain/core"
	"respcheck/domain/survey"
	"respcheck/internal"
	"respcheck/internal/errors"
)

// questionStartPattern matches question headers like "Q1.", "Q6aB2. text".
var questionStartPattern = regexp.MustCompile(`^(Q\d+[a-zA-Z0-9]*(?:B\d+)*)\.\s*(.*)`)

// typeMarkers map the questionnaire's type annotations to question types.
// Markers are matched case-insensitively anywhere in the line.
var typeMarkers = []struct {
	qType    survey.QuestionType
	patterns []string
}{
	{survey.QuestionOpenText, []string{"OTEVŘENÁ OTÁZKA", "ODPOVĚĎ TEXT", "OTEVŘENÁ"}},
	{survey.QuestionBattery, []string{"BATERIE OTÁZEK", "BATERIE"}},
	{survey.QuestionSingleChoice, []string{"JEDNA MOŽNÁ ODPOVĚĎ"}},
	{survey.QuestionMultiChoice, []string{"VÍCE MOŽNÝCH ODPOVĚDÍ"}},
	{survey.QuestionOther, []string{"POUZE TEXT", "KONEC DOTAZNÍKU", "VYLOUČENÍ RESPONDENTA"}},
}

// entryConditionPatterns detect skip-logic rules; a question carrying one is
// excluded from detection because its answers are conditional.
var entryConditionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)IF\s*\(.*ISCHECKED`),
	regexp.MustCompile(`(?i)THEN\s+EXIT`),
	regexp.MustCompile(`(?i)Pravidla`),
}

// optionNoisePattern filters question-settings lines out of option lists.
var optionNoisePattern = regexp.MustCompile(`(?i)Nastavení otázky|Povinná|Délka textu|Min\.|Max\.|Zvolených|Pravidla|IF\s*\(`)

// Parser extracts question structure from a plain-text questionnaire export
// (the raw text of the survey scripting document).
type Parser struct {
	log *internal.Logger
}

// NewParser creates a questionnaire structure parser.
func NewParser(logger *internal.Logger) *Parser {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &Parser{log: logger}
}

// ParseStructure reads and parses a questionnaire text file.
func (p *Parser) ParseStructure(path string) (*survey.Structure, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open questionnaire file")
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.ParseError("failed to read questionnaire file", err)
	}

	structure := ParseText(lines)
	p.log.Info("questionnaire: %d questions, %d open (no condition), %d batteries",
		len(structure.Questions), len(structure.OpenQuestions), len(structure.Batteries))
	return structure, nil
}

// ParseText parses questionnaire lines into the question structure. The
// format is line-oriented: a question header starts a block; type markers,
// rule lines and "-"/"•" option items describe it until the next header.
func ParseText(lines []string) *survey.Structure {
	structure := &survey.Structure{}

	var current *survey.QuestionDescriptor
	flush := func() {
		if current == nil {
			return
		}
		structure.Questions = append(structure.Questions, *current)
		switch {
		case current.Type == survey.QuestionOpenText && !current.HasEntryCondition:
			structure.OpenQuestions = append(structure.OpenQuestions, *current)
		case current.Type == survey.QuestionBattery:
			structure.Batteries = append(structure.Batteries, *current)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := questionStartPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &survey.QuestionDescriptor{
				Code: core.QuestionCode(m[1]),
				Text: strings.TrimSpace(m[2]),
				Type: survey.QuestionOther,
			}
			continue
		}
		if current == nil {
			continue
		}

		if qType, ok := matchTypeMarker(line); ok {
			current.Type = qType
		}
		for _, pattern := range entryConditionPatterns {
			if pattern.MatchString(line) {
				current.HasEntryCondition = true
				break
			}
		}
		if option, ok := parseOptionLine(line); ok {
			current.Options = append(current.Options, option)
		}
	}
	flush()

	return structure
}

func matchTypeMarker(line string) (survey.QuestionType, bool) {
	upper := strings.ToUpper(line)
	for _, marker := range typeMarkers {
		for _, pattern := range marker.patterns {
			if strings.Contains(upper, pattern) {
				return marker.qType, true
			}
		}
	}
	return "", false
}

// parseOptionLine accepts "-"/"•" items, discarding type markers and
// settings noise that share the same bullet style.
func parseOptionLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•") {
		return "", false
	}
	option := strings.TrimSpace(strings.TrimLeft(line, "-•"))
	if option == "" {
		return "", false
	}
	if _, isMarker := matchTypeMarker(option); isMarker {
		return "", false
	}
	if optionNoisePattern.MatchString(option) {
		return "", false
	}
	return option, true
}
