package fuzzy

import (
	"strings"

	"github.com/zjrosen/modekit/internal/component"
)

const (
	suggestionMinScore     = 10
	defaultSuggestionCount = 5
)

// GenerateSuggestions returns up to maxSuggestions distinct names for "did you mean"
// output. It ranks with a lower score floor, then fills remaining slots with
// candidates that share a word with the query.
func GenerateSuggestions(query string, candidates []component.Resolved, maxSuggestions int) []string {
	if maxSuggestions <= 0 {
		maxSuggestions = defaultSuggestionCount
	}

	seen := map[string]bool{}
	var suggestions []string
	add := func(name string) {
		if len(suggestions) < maxSuggestions && !seen[name] {
			seen[name] = true
			suggestions = append(suggestions, name)
		}
	}

	// Rank the whole list; duplicates across origins are collapsed by add.
	ranked := FindMatches(query, candidates, Options{
		MinScore:   suggestionMinScore,
		MaxResults: len(candidates),
	})
	for _, m := range ranked {
		add(m.Name)
	}

	if len(suggestions) < maxSuggestions {
		queryWords := splitWords(strings.ToLower(query))
		for _, c := range candidates {
			if sharesWord(queryWords, splitWords(strings.ToLower(c.Name))) {
				add(c.Name)
			}
		}
	}
	return suggestions
}

func sharesWord(queryWords, nameWords []string) bool {
	for _, qw := range queryWords {
		for _, nw := range nameWords {
			if strings.Contains(nw, qw) || strings.Contains(qw, nw) {
				return true
			}
		}
	}
	return false
}
