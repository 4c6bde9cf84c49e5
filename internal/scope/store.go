package scope

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/zjrosen/modekit/internal/cachemanager"
	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/config"
	"github.com/zjrosen/modekit/internal/log"
)

// Cache keys. Saving the config invalidates every key containing "config".
const (
	componentsCacheKey = "components:all"
	configCacheKey     = "config:scope"
)

// Store owns one mutable namespace: a project or the global scope.
type Store struct {
	fs       afero.Fs
	root     string
	isGlobal bool

	cache      *cachemanager.TTLCache
	components *cachemanager.ReadThroughCache[[]component.Descriptor, string]
}

// Option configures a Store.
type Option func(*Store)

// WithCacheTTL overrides the discovery cache lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.cache = cachemanager.NewTTLCache(s.cacheName(), ttl)
	}
}

// New creates a Store for the scope rooted at root on fs.
func New(fs afero.Fs, root string, isGlobal bool, opts ...Option) *Store {
	s := &Store{
		fs:       fs,
		root:     root,
		isGlobal: isGlobal,
	}
	s.cache = cachemanager.NewTTLCache(s.cacheName(), cachemanager.ScopeExpiration)
	for _, opt := range opts {
		opt(s)
	}
	s.components = cachemanager.NewReadThroughCache(s.cache, s.discover, false)
	return s
}

func (s *Store) cacheName() string {
	if s.isGlobal {
		return "scope:global"
	}
	return "scope:project"
}

// Root returns the scope root directory.
func (s *Store) Root() string {
	return s.root
}

// IsGlobal reports whether this is the global scope.
func (s *Store) IsGlobal() bool {
	return s.isGlobal
}

// ConfigPath returns the path of the scope's config file.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.root, config.FileName)
}

// Exists reports whether the scope root directory is present.
func (s *Store) Exists() bool {
	ok, err := afero.DirExists(s.fs, s.root)
	return err == nil && ok
}

// Config returns the scope's config, or nil if the file does not exist.
// A file that cannot be parsed yields a *config.ConfigError. Unknown options
// and values of the wrong type are logged and skipped.
func (s *Store) Config() (*config.ScopeConfig, error) {
	m, err := s.ConfigMap()
	if err != nil || m == nil {
		return nil, err
	}
	cfg, err := config.Decode(m)
	if err != nil {
		log.Warn(log.CatConfig, "ignoring config options", "path", s.ConfigPath(), "error", err)
	}
	return &cfg, nil
}

// ConfigMap returns a copy of the scope's sparse config map, or nil if the
// file does not exist.
func (s *Store) ConfigMap() (map[string]any, error) {
	if cached, ok := cachemanager.GetAs[map[string]any](s.cache, configCacheKey); ok {
		return cloneConfig(cached), nil
	}

	m, err := config.LoadFile(s.fs, s.ConfigPath())
	if err != nil {
		log.ErrorErr(log.CatConfig, "loading scope config", err, "path", s.ConfigPath())
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	s.cache.Set(configCacheKey, m)
	return cloneConfig(m), nil
}

// SaveConfig writes cfg as the scope's config file.
func (s *Store) SaveConfig(cfg config.ScopeConfig) error {
	m, err := cfg.ToMap()
	if err != nil {
		return err
	}
	return s.SaveConfigMap(m)
}

// SaveConfigMap validates and writes a sparse config map, creating the scope
// directory if needed. Unknown keys are written back unchanged; known
// options must hold values of the right type.
func (s *Store) SaveConfigMap(m map[string]any) error {
	if _, err := config.FromMap(m); err != nil {
		return fmt.Errorf("invalid config for %s: %w", s.ConfigPath(), err)
	}
	if err := config.SaveFile(s.fs, s.ConfigPath(), m); err != nil {
		return fmt.Errorf("saving config %s: %w", s.ConfigPath(), err)
	}
	s.cache.InvalidatePattern("config")
	log.Info(log.CatConfig, "saved scope config", "path", s.ConfigPath())
	return nil
}

// Components returns every component in the scope.
func (s *Store) Components() []component.Descriptor {
	descriptors, _ := s.components.Get(componentsCacheKey, s.root)
	out := make([]component.Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// ComponentsByType returns the scope's components of one type.
func (s *Store) ComponentsByType(typ component.Type) []component.Descriptor {
	var out []component.Descriptor
	for _, d := range s.Components() {
		if d.Type == typ {
			out = append(out, d)
		}
	}
	return out
}

// Component returns the component with the given identity.
func (s *Store) Component(name string, typ component.Type) (component.Descriptor, bool) {
	for _, d := range s.ComponentsByType(typ) {
		if d.Name == name {
			return d, true
		}
	}
	return component.Descriptor{}, false
}

// Read returns the raw contents of a component file in this scope.
func (s *Store) Read(d component.Descriptor) ([]byte, error) {
	return afero.ReadFile(s.fs, d.Path)
}

// Initialize creates the type subdirectories and a default config file if
// none exists. It is idempotent.
func (s *Store) Initialize() error {
	for _, typ := range component.AllTypes() {
		dir := filepath.Join(s.root, typ.Plural())
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	exists, err := afero.Exists(s.fs, s.ConfigPath())
	if err != nil {
		return fmt.Errorf("checking config %s: %w", s.ConfigPath(), err)
	}
	if !exists {
		if err := s.SaveConfig(config.DefaultScopeConfig(s.isGlobal)); err != nil {
			return err
		}
	}

	s.ClearCache()
	log.Info(log.CatScope, "initialized scope", "root", s.root, "global", s.isGlobal)
	return nil
}

// ClearCache drops cached discovery and config results.
func (s *Store) ClearCache() {
	s.cache.Clear()
}

// CacheStats reports the state of the scope's cache.
func (s *Store) CacheStats() cachemanager.Stats {
	return s.cache.Stats()
}

func (s *Store) discover(root string) ([]component.Descriptor, error) {
	if !s.Exists() {
		log.Debug(log.CatScope, "scope directory missing", "root", root)
		return nil, nil
	}

	descriptors := Discover(s.fsys(), root)
	log.Debug(log.CatScope, "discovered components", "root", root, "count", len(descriptors))
	return descriptors, nil
}

func (s *Store) fsys() fs.FS {
	return afero.NewIOFS(afero.NewBasePathFs(s.fs, s.root))
}

func cloneConfig(m map[string]any) map[string]any {
	return config.MergeLayers(m)
}
