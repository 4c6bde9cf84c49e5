package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/fuzzy"
)

func TestFindComponents_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.global(t, "modes/engineer.md", "")
	f.bundle("modes/engineer.md", "")
	f.bundle("modes/architect.md", "")

	matches := f.resolver.FindComponents("eng", nil, fuzzy.Options{})
	require.Len(t, matches, 2)

	top := matches[0]
	require.Equal(t, "engineer", top.Name)
	require.Equal(t, component.OriginGlobal, top.Origin)
	require.Equal(t, 80, top.Score)
	require.Len(t, top.ConflictsWith, 1)
	require.Equal(t, component.OriginBuiltin, top.ConflictsWith[0].Origin)

	require.Equal(t, component.OriginBuiltin, matches[1].Origin)
	require.Len(t, matches[1].ConflictsWith, 1)
	require.Equal(t, component.OriginGlobal, matches[1].ConflictsWith[0].Origin)
}

func TestFindComponents_NoConflictsForUniqueNames(t *testing.T) {
	f := newFixture(t)
	f.bundle("modes/architect.md", "")
	f.bundle("workflows/architect.yaml", "")

	matches := f.resolver.FindComponents("architect", nil, fuzzy.Options{})
	require.Len(t, matches, 2)
	for _, m := range matches {
		require.Empty(t, m.ConflictsWith, "same name with a different type is not a conflict")
	}
}

func TestFindComponents_TypeFilter(t *testing.T) {
	f := newFixture(t)
	f.bundle("modes/architect.md", "")
	f.bundle("workflows/architect.yaml", "")

	workflow := component.TypeWorkflow
	matches := f.resolver.FindComponents("arch", &workflow, fuzzy.Options{})
	require.Len(t, matches, 1)
	require.Equal(t, component.TypeWorkflow, matches[0].Component.Type)
}

func TestResolveQuery_Ambiguous(t *testing.T) {
	f := newFixture(t)
	f.bundle("modes/architect.md", "")
	f.bundle("modes/architect-advanced.md", "")

	mode := component.TypeMode
	require.Empty(t, f.resolver.ResolveQuery("arch", &mode, fuzzy.ModeOptions{}))
	require.Len(t, f.resolver.FindComponents("arch", &mode, fuzzy.Options{}), 2)

	interactive := f.resolver.ResolveQuery("arch", &mode, fuzzy.ModeOptions{Interactive: true})
	require.Len(t, interactive, 2)
}

func TestResolveQuery_ExactWithConflicts(t *testing.T) {
	f := newFixture(t)
	f.bundle("modes/architect.md", "")
	f.project(t, "modes/architect.md", "")

	matches := f.resolver.ResolveQuery("architect", nil, fuzzy.ModeOptions{})
	require.Len(t, matches, 1)
	require.Equal(t, component.OriginProject, matches[0].Origin)
	require.Len(t, matches[0].ConflictsWith, 1)
}

func TestGenerateSuggestions(t *testing.T) {
	f := newFixture(t)
	f.bundle("modes/engineer.md", "")
	f.global(t, "modes/engineer.md", "")
	f.bundle("modes/architect.md", "")

	require.Equal(t, []string{"engineer"}, f.resolver.GenerateSuggestions("enginer", nil, 5))
}
