// Package config provides the per-scope configuration types, layered merging,
// environment overrides and persistence for modekit.
//
// A scope config is sparse: only the keys a user actually set are present.
// Configs are held as plain maps while merging so that "unset" and "zero"
// stay distinguishable, and decoded into ScopeConfig for typed access.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside a scope root.
const FileName = "config.yaml"

// ScopeConfig holds every option a scope config file may set.
type ScopeConfig struct {
	DefaultMode        string            `yaml:"defaultMode,omitempty"`
	PreferredWorkflows []string          `yaml:"preferredWorkflows,omitempty"`
	UI                 *UIConfig         `yaml:"ui,omitempty"`
	Integrations       map[string]any    `yaml:"integrations,omitempty"`
	Components         *ComponentsConfig `yaml:"components,omitempty"`
}

// UIConfig holds user interface options. Nil means "not set in this layer".
type UIConfig struct {
	ColorOutput    *bool `yaml:"colorOutput,omitempty"`
	VerboseLogging *bool `yaml:"verboseLogging,omitempty"`
}

// ComponentsConfig lists components enabled for the scope.
type ComponentsConfig struct {
	Modes     []string `yaml:"modes,omitempty"`
	Workflows []string `yaml:"workflows,omitempty"`
}

// Defaults returns the base layer of the merge. It is intentionally empty:
// unset options fall back through the typed accessors below.
func Defaults() ScopeConfig {
	return ScopeConfig{}
}

// DefaultScopeConfig returns the config written by scope initialization.
func DefaultScopeConfig(isGlobal bool) ScopeConfig {
	if !isGlobal {
		return ScopeConfig{}
	}
	return ScopeConfig{
		UI: &UIConfig{
			ColorOutput:    Bool(true),
			VerboseLogging: Bool(false),
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// ColorOutputEnabled reports ui.colorOutput, defaulting to true.
func (c ScopeConfig) ColorOutputEnabled() bool {
	if c.UI == nil || c.UI.ColorOutput == nil {
		return true
	}
	return *c.UI.ColorOutput
}

// VerboseLoggingEnabled reports ui.verboseLogging, defaulting to false.
func (c ScopeConfig) VerboseLoggingEnabled() bool {
	if c.UI == nil || c.UI.VerboseLogging == nil {
		return false
	}
	return *c.UI.VerboseLogging
}

// ToMap converts the config to its sparse map form.
func (c ScopeConfig) ToMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	m := map[string]any{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// FromMap decodes a sparse map into a ScopeConfig. Keys outside the known
// options are ignored so that files written by other tools survive a
// rewrite. A known option holding a value of the wrong type is an error.
func FromMap(m map[string]any) (ScopeConfig, error) {
	var cfg ScopeConfig
	if len(m) == 0 {
		return cfg, nil
	}
	if err := decode(m, &cfg, false, nil); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Decode is the lenient form of FromMap used when reading files. Scalars are
// converted where possible ("false" for a bool). Unknown keys and values that
// cannot be converted are reported in the returned error, but every other
// option is still decoded into the result.
func Decode(m map[string]any) (ScopeConfig, error) {
	var cfg ScopeConfig
	if len(m) == 0 {
		return cfg, nil
	}

	var md mapstructure.Metadata
	var problems []error
	if err := decode(m, &cfg, true, &md); err != nil {
		problems = append(problems, err)
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		problems = append(problems, fmt.Errorf("unknown options: %s", strings.Join(md.Unused, ", ")))
	}
	return cfg, errors.Join(problems...)
}

// ValidateOptions checks that every key in m names a known option and holds
// a value of the right type. It guards writes of individual options.
func ValidateOptions(m map[string]any) error {
	var cfg ScopeConfig
	var md mapstructure.Metadata
	if err := decode(m, &cfg, false, &md); err != nil {
		return fmt.Errorf("%w\n%s", err, knownOptionsHint)
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return fmt.Errorf("unknown option %s\n%s", strings.Join(md.Unused, ", "), knownOptionsHint)
	}
	return nil
}

const knownOptionsHint = "Known options: defaultMode, preferredWorkflows, ui.colorOutput, " +
	"ui.verboseLogging, integrations, components.modes, components.workflows."

func decode(m map[string]any, out *ScopeConfig, weak bool, md *mapstructure.Metadata) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: weak,
		Metadata:         md,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	return decoder.Decode(m)
}
