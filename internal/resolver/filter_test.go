package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/modekit/internal/component"
)

func TestFilter(t *testing.T) {
	f := newFixture(t)
	f.bundle("modes/architect.md", "---\ndescription: Designs systems\ntags: [design, planning]\n---\n")
	f.bundle("modes/engineer.md", "---\ntags: [coding]\n---\n")
	f.project(t, "modes/reviewer.md", "---\npriority: 2\n---\n")
	f.project(t, "scripts/setup.sh", "echo hi\n")

	all := f.resolver.AllComponents(nil)

	tests := []struct {
		expression string
		want       []string
	}{
		{expression: `"planning" in tags`, want: []string{"architect@builtin"}},
		{expression: `origin == "project"`, want: []string{"reviewer@project", "setup@project"}},
		{expression: `kind == "mode" && origin != "builtin"`, want: []string{"reviewer@project"}},
		{expression: `meta.priority == 2`, want: []string{"reviewer@project"}},
		{expression: `format == "fileinfo"`, want: []string{"setup@project"}},
		{expression: `description contains "systems"`, want: []string{"architect@builtin"}},
		{expression: `name startsWith "zzz"`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			kept, err := f.resolver.Filter(all, tt.expression)
			require.NoError(t, err)
			require.Equal(t, tt.want, origins(kept))
		})
	}
}

func TestFilter_EmptyExpressionKeepsAll(t *testing.T) {
	list := []component.Resolved{{Descriptor: component.Descriptor{Name: "a"}}}
	kept, err := newFixture(t).resolver.Filter(list, "")
	require.NoError(t, err)
	require.Equal(t, list, kept)
}

func TestFilter_Errors(t *testing.T) {
	f := newFixture(t)
	f.bundle("modes/architect.md", "")
	all := f.resolver.AllComponents(nil)

	_, err := f.resolver.Filter(all, `name ==`)
	require.ErrorContains(t, err, "compiling filter")

	_, err = f.resolver.Filter(all, `name`)
	require.ErrorContains(t, err, "want bool")
}
