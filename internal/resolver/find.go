package resolver

import (
	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/fuzzy"
)

// FindComponents ranks every component from every scope against query. A
// match whose identity exists in more than one scope lists the other copies
// in ConflictsWith. A nil typ searches every type.
func (r *Resolver) FindComponents(query string, typ *component.Type, opts fuzzy.Options) []fuzzy.Match {
	matches := fuzzy.FindMatches(query, r.AllComponents(typ), opts)
	return r.annotateConflicts(matches)
}

// ResolveQuery ranks like FindComponents but applies the auto-selection
// policy for non-interactive callers. An empty result with candidates
// present means the query was ambiguous.
func (r *Resolver) ResolveQuery(query string, typ *component.Type, opts fuzzy.ModeOptions) []fuzzy.Match {
	matches := fuzzy.FindMatchesForMode(query, r.AllComponents(typ), opts)
	return r.annotateConflicts(matches)
}

// GenerateSuggestions returns "did you mean" names for query.
func (r *Resolver) GenerateSuggestions(query string, typ *component.Type, maxSuggestions int) []string {
	return fuzzy.GenerateSuggestions(query, r.AllComponents(typ), maxSuggestions)
}

func (r *Resolver) annotateConflicts(matches []fuzzy.Match) []fuzzy.Match {
	for i := range matches {
		m := &matches[i]
		conflicts := r.ComponentConflicts(m.Name, m.Component.Type)
		if len(conflicts) <= 1 {
			continue
		}
		for _, c := range conflicts {
			if c.Origin != m.Origin {
				m.ConflictsWith = append(m.ConflictsWith, c)
			}
		}
	}
	return matches
}
