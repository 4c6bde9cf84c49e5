package config

import (
	"github.com/spf13/viper"
)

// Environment variables that override file-based configuration. The set is
// exhaustive; each is applied independently when present.
const (
	EnvDefaultMode    = "MODEKIT_DEFAULT_MODE"
	EnvColorOutput    = "MODEKIT_COLOR_OUTPUT"
	EnvVerboseLogging = "MODEKIT_VERBOSE_LOGGING"
)

type envBinding struct {
	path    []string
	envVar  string
	boolean bool
}

var envBindings = []envBinding{
	{path: []string{"defaultMode"}, envVar: EnvDefaultMode},
	{path: []string{"ui", "colorOutput"}, envVar: EnvColorOutput, boolean: true},
	{path: []string{"ui", "verboseLogging"}, envVar: EnvVerboseLogging, boolean: true},
}

// EnvOverrides returns the sparse layer built from the environment. Boolean
// variables are true only for the literal value "true".
func EnvOverrides() map[string]any {
	v := viper.New()
	for _, b := range envBindings {
		_ = v.BindEnv(joinPath(b.path), b.envVar)
	}

	layer := map[string]any{}
	for _, b := range envBindings {
		key := joinPath(b.path)
		if !v.IsSet(key) {
			continue
		}
		raw := v.GetString(key)
		var value any = raw
		if b.boolean {
			value = raw == "true"
		}
		_ = setPath(layer, b.path, value)
	}
	return layer
}
