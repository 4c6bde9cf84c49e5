package scope

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/config"
)

const testRoot = "/work/project/.modekit"

func writeFile(t *testing.T, fs afero.Fs, rel, content string) {
	t.Helper()
	path := filepath.Join(testRoot, rel)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestStore_MissingRoot(t *testing.T) {
	store := New(afero.NewMemMapFs(), testRoot, false)

	require.False(t, store.Exists())
	require.Empty(t, store.Components())
	require.Empty(t, store.ComponentsByType(component.TypeMode))

	cfg, err := store.Config()
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestStore_DiscoversAllMetadataKinds(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "modes/architect.md", "---\ndescription: Plans systems\ntags: [design, planning]\n---\n# Architect\n")
	writeFile(t, fs, "hooks/pre-commit.json", `{"metadata": {"description": "Runs checks"}, "command": "make check"}`)
	writeFile(t, fs, "workflows/release.yaml", "description: Cut a release\nsteps: 3\n")
	writeFile(t, fs, "scripts/setup.sh", "#!/bin/sh\necho hi\n")

	store := New(fs, testRoot, false)
	descriptors := store.Components()
	require.Len(t, descriptors, 4)

	architect, ok := store.Component("architect", component.TypeMode)
	require.True(t, ok)
	require.Equal(t, component.MetadataFrontmatter, architect.Metadata.Kind)
	require.Equal(t, "Plans systems", architect.Metadata.Description())
	require.Equal(t, []string{"design", "planning"}, architect.Metadata.Tags())
	require.Equal(t, filepath.Join(testRoot, "modes", "architect.md"), architect.Path)

	hook, ok := store.Component("pre-commit", component.TypeHook)
	require.True(t, ok)
	require.Equal(t, component.MetadataJSON, hook.Metadata.Kind)
	require.Equal(t, "Runs checks", hook.Metadata.Description())
	require.NotContains(t, hook.Metadata.Fields, "command")

	release, ok := store.Component("release", component.TypeWorkflow)
	require.True(t, ok)
	require.Equal(t, component.MetadataYAML, release.Metadata.Kind)
	require.Equal(t, "Cut a release", release.Metadata.Description())

	setup, ok := store.Component("setup", component.TypeScript)
	require.True(t, ok)
	require.Equal(t, component.MetadataFileInfo, setup.Metadata.Kind)
	require.Equal(t, ".sh", setup.Metadata.Fields["extension"])
	require.EqualValues(t, len("#!/bin/sh\necho hi\n"), setup.Metadata.Fields["size"])
}

func TestStore_SkipsDirectoriesAndDotFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "modes/.hidden.md", "x")
	writeFile(t, fs, "modes/nested/inner.md", "x")
	writeFile(t, fs, "modes/engineer.md", "plain body")

	store := New(fs, testRoot, false)
	modes := store.ComponentsByType(component.TypeMode)
	require.Len(t, modes, 1)
	require.Equal(t, "engineer", modes[0].Name)
	// Markdown without frontmatter yields an empty frontmatter record
	require.Equal(t, component.MetadataFrontmatter, modes[0].Metadata.Kind)
	require.True(t, modes[0].Metadata.IsEmpty())
}

func TestStore_MalformedMetadataDegrades(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "modes/broken.md", "---\ndescription: never closed\n")
	writeFile(t, fs, "hooks/bad.json", "{not json")
	writeFile(t, fs, "workflows/bad.yaml", "key: [unterminated\n")

	store := New(fs, testRoot, false)
	descriptors := store.Components()
	require.Len(t, descriptors, 3)
	for _, d := range descriptors {
		require.True(t, d.Metadata.IsEmpty(), d.Name)
		require.NotNil(t, d.Metadata.Fields, d.Name)
	}
}

func TestStore_ComponentsSortedByTypeThenName(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "workflows/b.md", "")
	writeFile(t, fs, "modes/zeta.md", "")
	writeFile(t, fs, "modes/alpha.md", "")

	store := New(fs, testRoot, false)
	var keys []string
	for _, d := range store.Components() {
		keys = append(keys, d.Key().String())
	}
	require.Equal(t, []string{"mode/alpha", "mode/zeta", "workflow/b"}, keys)
}

func TestStore_DiscoveryIsCachedUntilCleared(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "modes/architect.md", "")

	store := New(fs, testRoot, false)
	require.Len(t, store.Components(), 1)

	writeFile(t, fs, "modes/engineer.md", "")
	require.Len(t, store.Components(), 1, "cached result should be served")

	store.ClearCache()
	require.Len(t, store.Components(), 2)
}

func TestStore_ComponentsReturnsCopy(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "modes/architect.md", "")

	store := New(fs, testRoot, false)
	first := store.Components()
	first[0].Name = "mutated"

	require.Equal(t, "architect", store.Components()[0].Name)
}

func TestStore_Read(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "commands/deploy.md", "deploy body")

	store := New(fs, testRoot, false)
	d, ok := store.Component("deploy", component.TypeCommand)
	require.True(t, ok)

	content, err := store.Read(d)
	require.NoError(t, err)
	require.Equal(t, "deploy body", string(content))
}

func TestStore_ConfigRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, testRoot, false)

	err := store.SaveConfig(config.ScopeConfig{
		DefaultMode: "architect",
		UI:          &config.UIConfig{ColorOutput: config.Bool(false)},
	})
	require.NoError(t, err)

	cfg, err := store.Config()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "architect", cfg.DefaultMode)
	require.False(t, cfg.ColorOutputEnabled())
}

func TestStore_SaveInvalidatesCachedConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, config.FileName, "defaultMode: architect\n")
	store := New(fs, testRoot, false)

	cfg, err := store.Config()
	require.NoError(t, err)
	require.Equal(t, "architect", cfg.DefaultMode)

	require.NoError(t, store.SaveConfigMap(map[string]any{"defaultMode": "engineer"}))

	cfg, err = store.Config()
	require.NoError(t, err)
	require.Equal(t, "engineer", cfg.DefaultMode)
}

func TestStore_ConfigMapReturnsCopy(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, config.FileName, "ui:\n  colorOutput: true\n")
	store := New(fs, testRoot, false)

	m, err := store.ConfigMap()
	require.NoError(t, err)
	m["ui"].(map[string]any)["colorOutput"] = false

	again, err := store.ConfigMap()
	require.NoError(t, err)
	require.Equal(t, true, again["ui"].(map[string]any)["colorOutput"])
}

func TestStore_InvalidConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, config.FileName, "defaultMode: [oops\n")
	store := New(fs, testRoot, false)

	cfg, err := store.Config()
	require.Nil(t, cfg)

	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, store.ConfigPath(), cfgErr.Path)
}

func TestStore_ConfigWithUnknownKeyStillLoads(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, config.FileName, "defaultMode: architect\nversion: 2\n")
	store := New(fs, testRoot, false)

	cfg, err := store.Config()
	require.NoError(t, err)
	require.Equal(t, "architect", cfg.DefaultMode)
}

func TestStore_SaveKeepsUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, testRoot, false)

	require.NoError(t, store.SaveConfigMap(map[string]any{"defaultMode": "engineer", "version": 2}))

	m, err := store.ConfigMap()
	require.NoError(t, err)
	require.Equal(t, 2, m["version"])
}

func TestStore_SaveRejectsWrongTypes(t *testing.T) {
	store := New(afero.NewMemMapFs(), testRoot, false)

	err := store.SaveConfigMap(map[string]any{"ui": map[string]any{"colorOutput": "loud"}})
	require.Error(t, err)
	require.False(t, store.Exists())
}

func TestStore_Initialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, testRoot, true)

	require.NoError(t, store.Initialize())
	require.True(t, store.Exists())
	for _, typ := range component.AllTypes() {
		ok, err := afero.DirExists(fs, filepath.Join(testRoot, typ.Plural()))
		require.NoError(t, err)
		require.True(t, ok, typ)
	}

	cfg, err := store.Config()
	require.NoError(t, err)
	require.True(t, cfg.ColorOutputEnabled())
	require.NotNil(t, cfg.UI.VerboseLogging)
	require.False(t, *cfg.UI.VerboseLogging)
}

func TestStore_InitializeKeepsExistingConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, config.FileName, "defaultMode: reviewer\n")
	writeFile(t, fs, "modes/reviewer.md", "")
	store := New(fs, testRoot, false)

	require.NoError(t, store.Initialize())
	require.NoError(t, store.Initialize())

	cfg, err := store.Config()
	require.NoError(t, err)
	require.Equal(t, "reviewer", cfg.DefaultMode)
	require.Len(t, store.Components(), 1)
}

func TestStore_WithCacheTTL(t *testing.T) {
	store := New(afero.NewMemMapFs(), testRoot, true, WithCacheTTL(0))
	require.True(t, store.IsGlobal())
	require.Equal(t, testRoot, store.Root())
	require.Zero(t, store.CacheStats().TTL)
}
