package fuzzy

import (
	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/log"
)

// Auto-selection thresholds.
const (
	confidentScore = 80
	leadMargin     = 20
)

// ModeOptions extends Options with the caller's interaction mode.
type ModeOptions struct {
	Options
	// Interactive callers get the full ranked list and choose themselves.
	Interactive bool
	// AutoSelectBest, when non-nil, forces the auto-selection policy on or
	// off regardless of Interactive.
	AutoSelectBest *bool
}

func (o ModeOptions) autoSelect() bool {
	if o.AutoSelectBest != nil {
		return *o.AutoSelectBest
	}
	return !o.Interactive
}

// FindMatchesForMode ranks candidates and, when auto-selecting, returns only
// the top match if it is confident enough. An empty result with candidates
// present means the query was ambiguous.
func FindMatchesForMode(query string, candidates []component.Resolved, opts ModeOptions) []Match {
	matches := FindMatches(query, candidates, opts.Options)
	if len(matches) == 0 || !opts.autoSelect() {
		return matches
	}

	if best, ok := selectBest(matches); ok {
		log.Debug(log.CatMatch, "auto-selected match", "query", query, "name", best.Name, "score", best.Score)
		return []Match{best}
	}

	log.Debug(log.CatMatch, "ambiguous query", "query", query, "top", matches[0].Name, "score", matches[0].Score)
	return nil
}

func selectBest(matches []Match) (Match, bool) {
	top := matches[0]
	switch {
	case top.Score == scoreExact:
		return top, true
	case top.Score >= confidentScore && (len(matches) == 1 || top.Score-matches[1].Score > leadMargin):
		return top, true
	case top.MatchType == MatchExact:
		return top, true
	default:
		return Match{}, false
	}
}
