package fuzzy

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/modekit/internal/component"
)

func resolved(name string, origin component.Origin) component.Resolved {
	return component.Resolved{
		Descriptor: component.Descriptor{
			Name: name,
			Type: component.TypeMode,
			Path: fmt.Sprintf("%s/modes/%s.md", origin, name),
		},
		Origin: origin,
	}
}

func names(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = fmt.Sprintf("%s@%s", m.Name, m.Origin)
	}
	return out
}

func TestFindMatches_SortsByScoreThenPrecedenceThenName(t *testing.T) {
	candidates := []component.Resolved{
		resolved("engineer", component.OriginBuiltin),
		resolved("big-engine", component.OriginProject),
		resolved("engineer", component.OriginGlobal),
		resolved("engine-room", component.OriginGlobal),
		resolved("architect", component.OriginBuiltin),
	}

	matches := FindMatches("eng", candidates, Options{})

	require.Equal(t, []string{
		"engine-room@global",
		"engineer@global",
		"engineer@builtin",
		"big-engine@project",
	}, names(matches))
	require.Equal(t, MatchSubstring, matches[0].MatchType)
	require.Equal(t, candidates[3], matches[0].Component)
}

func TestFindMatches_MinScoreAndMaxResults(t *testing.T) {
	candidates := []component.Resolved{
		resolved("architect", component.OriginBuiltin),
		resolved("arc-tools", component.OriginBuiltin),
		resolved("big-archive", component.OriginBuiltin),
	}

	require.Len(t, FindMatches("arc", candidates, Options{}), 3)
	require.Len(t, FindMatches("arc", candidates, Options{MaxResults: 1}), 1)
	require.Len(t, FindMatches("arc", candidates, Options{MinScore: 70}), 2)
	require.Empty(t, FindMatches("zzz", candidates, Options{}))
	require.Empty(t, FindMatches("   ", candidates, Options{}))
}

func TestFindMatches_AnyScoreKeepsZeroScores(t *testing.T) {
	candidates := []component.Resolved{
		resolved("architect", component.OriginBuiltin),
		resolved("engineer", component.OriginBuiltin),
	}

	require.Empty(t, FindMatches("zzz", candidates, Options{MinScore: 0}), "zero means the default floor")

	matches := FindMatches("zzz", candidates, Options{MinScore: AnyScore})
	require.Equal(t, []string{"architect@builtin", "engineer@builtin"}, names(matches))
	for _, m := range matches {
		require.Zero(t, m.Score)
	}
}

func TestFindMatches_DefaultMaxResults(t *testing.T) {
	var candidates []component.Resolved
	for i := range 15 {
		candidates = append(candidates, resolved(fmt.Sprintf("mode-%02d", i), component.OriginBuiltin))
	}

	require.Len(t, FindMatches("mode", candidates, Options{}), DefaultMaxResults)
	require.Len(t, FindMatches("mode", candidates, Options{MaxResults: -1}), DefaultMaxResults)
}

func TestFindBestMatch(t *testing.T) {
	candidates := []component.Resolved{
		resolved("architect", component.OriginBuiltin),
		resolved("engineer", component.OriginBuiltin),
	}

	best, ok := FindBestMatch("eng", candidates, Options{})
	require.True(t, ok)
	require.Equal(t, "engineer", best.Name)

	_, ok = FindBestMatch("zzz", candidates, Options{})
	require.False(t, ok)
}

func TestFindMatches_Properties(t *testing.T) {
	origins := component.Origins()

	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 20).Draw(t, "count")
		candidates := make([]component.Resolved, count)
		for i := range candidates {
			name := rapid.StringMatching(`[a-z]{1,6}(-[a-z]{1,6}){0,2}`).Draw(t, "name")
			origin := rapid.SampledFrom(origins).Draw(t, "origin")
			candidates[i] = resolved(name, origin)
		}
		query := rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "query")
		opts := Options{
			MaxResults: rapid.IntRange(0, 12).Draw(t, "max"),
			MinScore:   rapid.IntRange(-1, 90).Draw(t, "min"),
		}

		matches := FindMatches(query, candidates, opts)
		effective := opts.withDefaults()
		if len(matches) > effective.MaxResults {
			t.Fatalf("%d matches exceeds max %d", len(matches), effective.MaxResults)
		}
		sorted := sort.SliceIsSorted(matches, func(i, j int) bool {
			return matches[i].Score > matches[j].Score
		})
		if !sorted {
			t.Fatalf("matches not sorted by score: %v", names(matches))
		}
		for _, m := range matches {
			if m.Score < effective.MinScore || m.Score > 100 {
				t.Fatalf("score %d outside [%d, 100]", m.Score, effective.MinScore)
			}
		}
	})
}
