package intelligence

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Fuzzy-match thresholds. 85 is the default; keyword sets with more
// lexical variation use the looser 80.
const (
	FuzzyThresholdDefault = 85
	FuzzyThresholdLoose   = 80
)

// FuzzyMatch reports whether any keyword scores at or above threshold
// against text using partial-ratio similarity.
func FuzzyMatch(text string, keywords []string, threshold int) bool {
	for _, kw := range keywords {
		if fuzzy.PartialRatio(text, kw) >= threshold {
			return true
		}
	}
	return false
}

// containsAny reports whether text contains any of the given substrings.
func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
