package validator

import (
	"sort"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggest returns the bound name closest to an unknown one, or "" when
// nothing is close enough to be a plausible typo.
func suggest(name string, candidates []string) string {
	limit := 1
	if len(name) > 4 {
		limit = 2
	}

	// Names containing the typed characters in order, e.g. "unifrm" -> "uniform".
	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)
	if len(ranks) > 0 && ranks[0].Distance <= limit {
		return ranks[0].Target
	}

	// One- and two-letter names are a single edit away from too much.
	if utf8.RuneCountInString(name) < 3 {
		return ""
	}

	// Transpositions and substitutions, e.g. "lenght" -> "length".
	best, bestDist := "", limit+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
