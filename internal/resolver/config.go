package resolver

import (
	"fmt"

	"github.com/zjrosen/modekit/internal/cachemanager"
	"github.com/zjrosen/modekit/internal/config"
	"github.com/zjrosen/modekit/internal/log"
	"github.com/zjrosen/modekit/internal/scope"
)

// mergedConfigKey holds the merge of the file layers. Environment overrides
// are applied on every read.
const mergedConfigKey = "config:merged"

// Config returns the effective config: defaults, then global, then project,
// then environment overrides, each layer overriding the previous one.
// Unknown options and mistyped values are logged and skipped.
func (r *Resolver) Config() (config.ScopeConfig, error) {
	merged, err := r.ConfigMap()
	if err != nil {
		return config.ScopeConfig{}, err
	}
	cfg, err := config.Decode(merged)
	if err != nil {
		log.Warn(log.CatConfig, "ignoring config options", "error", err)
	}
	return cfg, nil
}

// ConfigMap returns the effective config in sparse map form.
func (r *Resolver) ConfigMap() (map[string]any, error) {
	files, ok := cachemanager.GetAs[map[string]any](r.cache, mergedConfigKey)
	if !ok {
		defaults, err := config.Defaults().ToMap()
		if err != nil {
			return nil, err
		}
		global, err := r.global.ConfigMap()
		if err != nil {
			return nil, err
		}
		project, err := r.project.ConfigMap()
		if err != nil {
			return nil, err
		}
		files = config.MergeLayers(project, global, defaults)
		r.cache.Set(mergedConfigKey, files)
	}
	return config.MergeLayers(r.env(), files), nil
}

// SaveConfig replaces the project or global config file.
func (r *Resolver) SaveConfig(cfg config.ScopeConfig, global bool) error {
	if err := r.store(global).SaveConfig(cfg); err != nil {
		return err
	}
	r.cache.InvalidatePattern("config")
	return nil
}

// ConfigValue reads a dot path from the effective config.
func (r *Resolver) ConfigValue(path string) (any, bool, error) {
	merged, err := r.ConfigMap()
	if err != nil {
		return nil, false, err
	}
	return config.GetValue(merged, path)
}

// SetConfigValue writes value at a dot path in one scope's config file.
func (r *Resolver) SetConfigValue(path string, value any, global bool) error {
	store := r.store(global)
	m, err := store.ConfigMap()
	if err != nil {
		return err
	}
	if m == nil {
		m = map[string]any{}
	}
	option := map[string]any{}
	if err := config.SetValue(option, path, value); err != nil {
		return err
	}
	if err := config.ValidateOptions(option); err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	if err := config.SetValue(m, path, value); err != nil {
		return err
	}
	if err := store.SaveConfigMap(m); err != nil {
		return err
	}
	r.cache.InvalidatePattern("config")
	log.Info(log.CatConfig, "set config value", "path", path, "global", global)
	return nil
}

// UnsetConfigValue removes a dot path from one scope's config file. It
// reports whether anything was removed.
func (r *Resolver) UnsetConfigValue(path string, global bool) (bool, error) {
	store := r.store(global)
	m, err := store.ConfigMap()
	if err != nil || m == nil {
		return false, err
	}
	removed, err := config.UnsetValue(m, path)
	if err != nil || !removed {
		return false, err
	}
	if err := store.SaveConfigMap(m); err != nil {
		return false, err
	}
	r.cache.InvalidatePattern("config")
	log.Info(log.CatConfig, "unset config value", "path", path, "global", global)
	return true, nil
}

func (r *Resolver) store(global bool) *scope.Store {
	if global {
		return r.global
	}
	return r.project
}
