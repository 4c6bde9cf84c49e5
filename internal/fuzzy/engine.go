// Package fuzzy ranks components against an approximate name.
//
// Scoring is a pure function of the query, the candidate and Options. The
// engine holds no state; callers pass the candidate list on every call.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/log"
)

// Result assembly defaults.
const (
	DefaultMinScore   = 20
	DefaultMaxResults = 10
)

// AnyScore as Options.MinScore keeps every candidate, including those that
// score 0.
const AnyScore = -1

// Options controls ranking. Zero or negative MaxResults falls back to
// DefaultMaxResults. A zero MinScore means DefaultMinScore; pass AnyScore
// (or any negative value) for no floor.
type Options struct {
	MaxResults    int
	MinScore      int
	CaseSensitive bool
	MetadataBoost bool
}

func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	switch {
	case o.MinScore == 0:
		o.MinScore = DefaultMinScore
	case o.MinScore < 0:
		o.MinScore = 0
	}
	return o
}

// Match is one ranked candidate.
type Match struct {
	Name      string
	Score     int
	MatchType MatchType
	Origin    component.Origin
	Component component.Resolved
	// ConflictsWith holds the same identity from other origins. Only set by
	// the resolver.
	ConflictsWith []component.Resolved
}

// FindMatches scores every candidate, drops those under the minimum score
// and returns the rest sorted by score, then origin precedence, then name.
func FindMatches(query string, candidates []component.Resolved, opts Options) []Match {
	opts = opts.withDefaults()
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var matches []Match
	for _, c := range candidates {
		score := Score(query, c.Name, c.Metadata, opts)
		if score < opts.MinScore {
			continue
		}
		matches = append(matches, Match{
			Name:      c.Name,
			Score:     score,
			MatchType: ClassifyMatch(query, c.Name, opts.CaseSensitive),
			Origin:    c.Origin,
			Component: c,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if pa, pb := a.Origin.Precedence(), b.Origin.Precedence(); pa != pb {
			return pa > pb
		}
		return a.Name < b.Name
	})

	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}

	log.Debug(log.CatMatch, "ranked candidates", "query", query, "candidates", len(candidates), "matches", len(matches))
	return matches
}

// FindBestMatch returns the top-ranked match, if any.
func FindBestMatch(query string, candidates []component.Resolved, opts Options) (Match, bool) {
	matches := FindMatches(query, candidates, opts)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}
