package quality

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity penalty tiers. The penalty is subtracted from the mean answer
// score, capping at 0.15 for verbatim copy-paste across every question.
const (
	penaltyAllIdentical  = 0.15
	penaltyMostIdentical = 0.12
	penaltyHighAverage   = 0.12
	penaltyModerate      = 0.08
	penaltyMild          = 0.04
)

const highSimilarityRatio = 0.7

// SimilarityPenalty measures suspicious repetition across one respondent's
// open-ended answers and returns a penalty in [0, 0.15]. Rules are ordered;
// the first match returns.
func SimilarityPenalty(answers []string) float64 {
	clean := make([]string, 0, len(answers))
	for _, a := range answers {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			clean = append(clean, a)
		}
	}
	if len(clean) < 2 {
		return 0
	}

	counts := make(map[string]int, len(clean))
	mostFrequent := 0
	for _, a := range clean {
		counts[a]++
		if counts[a] > mostFrequent {
			mostFrequent = counts[a]
		}
	}

	if len(counts) == 1 && len(clean) >= 3 {
		return penaltyAllIdentical
	}
	if len(counts) <= 2 && len(clean) >= 4 && mostFrequent >= 3 {
		return penaltyMostIdentical
	}

	var sum float64
	pairs := 0
	highPairs := 0
	for i := 0; i < len(clean); i++ {
		for j := i + 1; j < len(clean); j++ {
			r := similarityRatio(clean[i], clean[j])
			sum += r
			pairs++
			if r > highSimilarityRatio {
				highPairs++
			}
		}
	}

	avg := sum / float64(pairs)
	switch {
	case avg > 0.8:
		return penaltyHighAverage
	case avg > 0.6 || float64(highPairs) >= float64(pairs)*0.5:
		return penaltyModerate
	case avg > 0.4:
		return penaltyMild
	}
	return 0
}

// similarityRatio is a normalized edit-distance ratio: 1 for identical
// strings, 0 for fully disjoint ones.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
