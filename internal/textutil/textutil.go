package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// BestMatch returns the index of the candidate most similar to `name` along with its
// Jaro-Winkler similarity. An exact match after normalization always wins with a
// similarity of 1. It returns -1 when there are no candidates.
func BestMatch(name string, candidates []string) (int, float64) {
	normalized := NormalizeName(name)

	for i, c := range candidates {
		if NormalizeName(c) == normalized {
			return i, 1
		}
	}

	best := -1
	var bestSimilarity float64
	for i, c := range candidates {
		similarity := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = i
		}
	}
	return best, bestSimilarity
}
