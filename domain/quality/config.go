package quality

// ScoringConfig carries the locale-specific rule tables for answer quality
// scoring. Instances are built once and never mutated, so a single config
// can be shared across concurrent detector runs. Per-study customization
// happens by constructing a different config, not by editing globals.
type ScoringConfig struct {
	// NonAnswers are explicit non-answer phrases matched case-insensitively
	// after trailing punctuation is stripped ("don't know" equivalents,
	// dashes, ellipses).
	NonAnswers map[string]struct{}

	// Letters is the alphabet used by the gibberish heuristic, including
	// language-appropriate diacritics. Characters outside this set are
	// ignored when computing the consonant share.
	Letters map[rune]struct{}

	// Vowels is the vowel subset of Letters, accented vowels included.
	Vowels map[rune]struct{}
}

// defaultCzechNonAnswers is the non-answer dictionary of the Czech rule set.
var defaultCzechNonAnswers = []string{
	"nevím", "nevim", "nwm", "nic", "xxx", "nee", "ne", "ok", "oká",
	"žádné", "zadne", "žádný", "zadny", "nebim", "nic mě nenapadá",
	"nic moc", "nemám", "nemam", "bez názoru", "bez komentáře",
	"hmm", "hm", "hmmm", "hm...", "fajn", ".", "..", "...", "-", "--",
	"no", "noo", "jo", "jj", "nn", "idk", "nic mne nenapada",
	"nic me nenapada", "bez komentare", "nic zvláštního", "nic zvlastniho",
	"nic extra", "nevím co napsat", "nevim co napsat",
}

const (
	defaultCzechLetters = "abcdefghijklmnopqrstuvwxyzáčďéěíňóřšťúůýž"
	defaultCzechVowels  = "aeiouyáéíóúůýě"
)

// DefaultCzechScoringConfig returns the rule set for Czech-language surveys.
func DefaultCzechScoringConfig() ScoringConfig {
	return ScoringConfig{
		NonAnswers: phraseSet(defaultCzechNonAnswers),
		Letters:    runeSet(defaultCzechLetters),
		Vowels:     runeSet(defaultCzechVowels),
	}
}

// NewScoringConfig builds a config from plain slices/strings, for callers
// supplying their own locale tables.
func NewScoringConfig(nonAnswers []string, letters, vowels string) ScoringConfig {
	return ScoringConfig{
		NonAnswers: phraseSet(nonAnswers),
		Letters:    runeSet(letters),
		Vowels:     runeSet(vowels),
	}
}

func phraseSet(phrases []string) map[string]struct{} {
	set := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		set[p] = struct{}{}
	}
	return set
}

func runeSet(chars string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}
