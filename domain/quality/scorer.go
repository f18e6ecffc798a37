package quality

import (
	"strings"
	"unicode"
)

// Score tiers of the answer quality cascade. Quality is primarily a proxy
// of answer effort (length) once gibberish and boilerplate are filtered
// out; short-but-valid answers are a known false-positive source, which is
// why mid-range scores classify as "review", not "delete".
const (
	scoreFiller    = 0.05
	scoreNonAnswer = 0.1
	scoreOneWord   = 0.2
	scoreTwoWords  = 0.3
	scoreFourWords = 0.45
	scoreEight     = 0.65
	scoreFifteen   = 0.8
	scoreBase      = 0.85
	scorePerWord   = 0.01
)

// Gibberish/filler rule thresholds.
const (
	fillerMinOriginalLen  = 3    // original must be longer than this
	fillerMaxContentRunes = 2    // fewer content runes than this is filler
	identicalRunLimit     = 10   // run of identical characters
	repeatedXLimit        = 5    // run of "x" specifically
	gibberishMinLetters   = 8    // letters-only content longer than this
	gibberishConsonantMax = 0.85 // consonant share above this is gibberish
)

// AnswerScorer scores single open-ended answers on a 0..1 quality scale.
// Pure and deterministic: the same text always yields the same score.
type AnswerScorer struct {
	cfg ScoringConfig
}

// NewAnswerScorer creates a scorer with the given locale rule set.
func NewAnswerScorer(cfg ScoringConfig) *AnswerScorer {
	return &AnswerScorer{cfg: cfg}
}

// Score evaluates one answer text. Rules form an ordered cascade; the first
// matching rule decides the score.
func (s *AnswerScorer) Score(text string) float64 {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0.0
	}

	lower := strings.TrimRight(strings.ToLower(t), ".,!? ")

	if isFiller(t) {
		return scoreFiller
	}
	if hasSuspiciousRun(t, lower) {
		return scoreFiller
	}
	if s.isGibberish(lower) {
		return scoreFiller
	}
	if _, ok := s.cfg.NonAnswers[lower]; ok {
		return scoreNonAnswer
	}

	return wordCountScore(len(strings.Fields(t)))
}

// wordCountScore is the length-based tail of the cascade.
func wordCountScore(words int) float64 {
	switch {
	case words <= 1:
		return scoreOneWord
	case words == 2:
		return scoreTwoWords
	case words <= 4:
		return scoreFourWords
	case words <= 8:
		return scoreEight
	case words <= 15:
		return scoreFifteen
	}
	score := scoreBase + scorePerWord*float64(words-15)
	if score > 1.0 {
		return 1.0
	}
	return score
}

// isFiller flags texts that collapse to almost nothing once punctuation and
// whitespace are removed ("...", "- -", "?!").
func isFiller(t string) bool {
	content := 0
	for _, r := range t {
		if strings.ContainsRune(".-_!?,", r) || unicode.IsSpace(r) {
			continue
		}
		content++
	}
	return content < fillerMaxContentRunes && len([]rune(t)) > fillerMinOriginalLen
}

// hasSuspiciousRun detects keyboard-mash runs: ten or more identical
// characters anywhere, or five or more consecutive "x".
func hasSuspiciousRun(t, lower string) bool {
	if longestRun(t) >= identicalRunLimit {
		return true
	}
	run := 0
	for _, r := range lower {
		if r == 'x' {
			run++
			if run >= repeatedXLimit {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func longestRun(t string) int {
	var prev rune
	run, longest := 0, 0
	for _, r := range t {
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// isGibberish flags letters-only content dominated by consonants
// ("dfghjkldfgh"). Accented vowels count as vowels so diacritic-heavy but
// legitimate words pass.
func (s *AnswerScorer) isGibberish(lower string) bool {
	letters := make([]rune, 0, len(lower))
	for _, r := range lower {
		if _, ok := s.cfg.Letters[r]; ok {
			letters = append(letters, r)
		}
	}
	if len(letters) <= gibberishMinLetters {
		return false
	}
	consonants := 0
	for _, r := range letters {
		if _, ok := s.cfg.Vowels[r]; !ok {
			consonants++
		}
	}
	return float64(consonants)/float64(len(letters)) > gibberishConsonantMax
}
