package fuzzy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zjrosen/modekit/internal/component"
)

// MatchType classifies how a query matched a name.
type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchSubstring MatchType = "substring"
	MatchAcronym   MatchType = "acronym"
	MatchPartial   MatchType = "partial"
)

// Heuristic scores.
const (
	scoreExact     = 100
	scorePrefix    = 80
	scoreSubstring = 60
	scoreAcronym   = 70
	scoreWord      = 50
	scoreSubseq    = 30

	boostDescription = 5
	boostTag         = 3
	maxBoost         = 15
)

// Score rates how well query matches name, from 0 to 100. It takes the best
// of the exact, prefix, substring, acronym, word and subsequence heuristics,
// then adds the metadata boost when opts.MetadataBoost is set.
func Score(query, name string, meta component.Metadata, opts Options) int {
	q, n := normalize(query, opts.CaseSensitive), normalize(name, opts.CaseSensitive)
	if q == "" {
		return 0
	}
	if q == n {
		return scoreExact
	}

	best := 0
	if strings.HasPrefix(n, q) {
		best = scorePrefix
	} else if strings.Contains(n, q) {
		best = scoreSubstring
	}
	best = max(best, acronymScore(q, n))
	best = max(best, wordScore(q, n))
	best = max(best, subsequenceScore(q, n))

	if best > 0 && opts.MetadataBoost {
		best += metadataBoost(q, meta, opts.CaseSensitive)
	}
	return min(best, scoreExact)
}

// ClassifyMatch derives the match type with priority
// exact > substring > acronym > partial.
func ClassifyMatch(query, name string, caseSensitive bool) MatchType {
	q, n := normalize(query, caseSensitive), normalize(name, caseSensitive)
	switch {
	case q == n:
		return MatchExact
	case strings.Contains(n, q):
		return MatchSubstring
	case isAcronym(q, n):
		return MatchAcronym
	default:
		return MatchPartial
	}
}

func normalize(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// splitWords splits on '-', '_' and whitespace.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
}

// acronymMatches walks the query against the initials of consecutive words
// starting at the first word. It returns the number of words matched, or 0
// if any character fails to match.
func acronymMatches(q string, words []string) int {
	if utf8.RuneCountInString(q) <= 1 {
		return 0
	}
	matched := 0
	for _, r := range q {
		if matched >= len(words) {
			return 0
		}
		initial, _ := utf8.DecodeRuneInString(words[matched])
		if initial != r {
			return 0
		}
		matched++
	}
	return matched
}

func isAcronym(q, n string) bool {
	return acronymMatches(q, splitWords(n)) > 0
}

func acronymScore(q, n string) int {
	words := splitWords(n)
	matched := acronymMatches(q, words)
	if matched == 0 {
		return 0
	}
	return scoreAcronym * matched / len(words)
}

func wordScore(q, n string) int {
	qLen := utf8.RuneCountInString(q)
	best := 0
	for _, word := range splitWords(n) {
		wLen := utf8.RuneCountInString(word)
		base := scoreWord * qLen / wLen
		switch {
		case strings.HasPrefix(word, q):
			best = max(best, base)
		case strings.Contains(word, q):
			best = max(best, int(float64(base)*0.7))
		}
	}
	return best
}

func subsequenceScore(q, n string) int {
	qRunes := []rune(q)
	matched := 0
	for _, r := range n {
		if matched < len(qRunes) && qRunes[matched] == r {
			matched++
		}
	}
	if matched < len(qRunes) {
		return 0
	}
	return scoreSubseq * matched / max(len(qRunes), utf8.RuneCountInString(n))
}

func metadataBoost(q string, meta component.Metadata, caseSensitive bool) int {
	if !meta.Semantic() {
		return 0
	}
	boost := 0
	if desc := meta.Description(); desc != "" && strings.Contains(normalize(desc, caseSensitive), q) {
		boost += boostDescription
	}
	for _, tag := range meta.Tags() {
		if strings.Contains(normalize(tag, caseSensitive), q) {
			boost += boostTag
		}
	}
	return min(boost, maxBoost)
}
