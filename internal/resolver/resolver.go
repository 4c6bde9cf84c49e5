// Package resolver merges the project, global and built-in scopes into one
// view with project > global > builtin precedence.
package resolver

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/zjrosen/modekit/internal/cachemanager"
	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/config"
	"github.com/zjrosen/modekit/internal/log"
	"github.com/zjrosen/modekit/internal/scope"
)

// Source is a read-only component namespace, such as the built-in provider.
type Source interface {
	Components() []component.Descriptor
	Component(name string, typ component.Type) (component.Descriptor, bool)
	ComponentsByType(typ component.Type) []component.Descriptor
	IsAvailable() bool
	ClearCache()
	Read(d component.Descriptor) ([]byte, error)
}

// Resolver answers lookups across the three scopes.
type Resolver struct {
	project *scope.Store
	global  *scope.Store
	builtin Source

	env   func() map[string]any
	cache *cachemanager.TTLCache
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnv replaces the source of environment overrides.
func WithEnv(env func() map[string]any) Option {
	return func(r *Resolver) {
		r.env = env
	}
}

// WithCacheTTL overrides the aggregate cache lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.cache = cachemanager.NewTTLCache("resolver", ttl)
	}
}

// New creates a Resolver over the given scopes.
func New(project, global *scope.Store, builtin Source, opts ...Option) *Resolver {
	r := &Resolver{
		project: project,
		global:  global,
		builtin: builtin,
		env:     config.EnvOverrides,
		cache:   cachemanager.NewTTLCache("resolver", cachemanager.ResolverExpiration),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scopes exposes the two mutable stores.
func (r *Resolver) Scopes() (project, global *scope.Store) {
	return r.project, r.global
}

// Builtin returns the read-only built-in source.
func (r *Resolver) Builtin() Source {
	return r.builtin
}

// ResolveComponent returns the first hit walking project, global, builtin.
func (r *Resolver) ResolveComponent(name string, typ component.Type) (component.Resolved, bool) {
	for _, origin := range component.Origins() {
		if d, ok := r.lookup(origin, name, typ); ok {
			log.Debug(log.CatResolve, "resolved component", "name", name, "type", string(typ), "origin", string(origin))
			return component.Resolved{Descriptor: d, Origin: origin}, true
		}
	}
	log.Debug(log.CatResolve, "component not found", "name", name, "type", string(typ))
	return component.Resolved{}, false
}

// Component is ResolveComponent without the origin.
func (r *Resolver) Component(name string, typ component.Type) (component.Descriptor, bool) {
	resolved, ok := r.ResolveComponent(name, typ)
	return resolved.Descriptor, ok
}

// ComponentsByType returns one entry per name with the highest-precedence
// origin winning, sorted by name.
func (r *Resolver) ComponentsByType(typ component.Type) []component.Resolved {
	key := "components:" + string(typ)
	if cached, ok := cachemanager.GetAs[[]component.Resolved](r.cache, key); ok {
		return append([]component.Resolved(nil), cached...)
	}

	byName := map[string]component.Resolved{}
	// Later inserts overwrite earlier ones, so insert weakest first
	for _, origin := range []component.Origin{component.OriginBuiltin, component.OriginGlobal, component.OriginProject} {
		for _, d := range r.byType(origin, typ) {
			byName[d.Name] = component.Resolved{Descriptor: d, Origin: origin}
		}
	}

	merged := make([]component.Resolved, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})

	r.cache.Set(key, merged)
	return append([]component.Resolved(nil), merged...)
}

// ComponentsByTypeWithSource returns every origin's copy of every component
// of typ, sorted by name, then precedence descending.
func (r *Resolver) ComponentsByTypeWithSource(typ component.Type) []component.Resolved {
	all := r.AllComponents(&typ)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].Origin.Precedence() > all[j].Origin.Precedence()
	})
	return all
}

// AllComponents returns the raw list from all three scopes, project first.
// A nil typ includes every type.
func (r *Resolver) AllComponents(typ *component.Type) []component.Resolved {
	var all []component.Resolved
	for _, origin := range component.Origins() {
		var descriptors []component.Descriptor
		if typ != nil {
			descriptors = r.byType(origin, *typ)
		} else {
			descriptors = r.all(origin)
		}
		for _, d := range descriptors {
			all = append(all, component.Resolved{Descriptor: d, Origin: origin})
		}
	}
	return all
}

// ComponentConflicts returns every origin holding the identity, highest
// precedence first.
func (r *Resolver) ComponentConflicts(name string, typ component.Type) []component.Resolved {
	var conflicts []component.Resolved
	for _, origin := range component.Origins() {
		if d, ok := r.lookup(origin, name, typ); ok {
			conflicts = append(conflicts, component.Resolved{Descriptor: d, Origin: origin})
		}
	}
	return conflicts
}

// Read returns the contents of a resolved component from its own scope.
func (r *Resolver) Read(c component.Resolved) ([]byte, error) {
	switch c.Origin {
	case component.OriginProject:
		return r.project.Read(c.Descriptor)
	case component.OriginGlobal:
		return r.global.Read(c.Descriptor)
	default:
		return r.builtin.Read(c.Descriptor)
	}
}

// ClearCache drops the aggregate cache and every underlying scope cache.
// Call it after mutating any scope directory.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
	r.project.ClearCache()
	r.global.ClearCache()
	r.builtin.ClearCache()
	log.Debug(log.CatResolve, "cleared caches")
}

// sharedRoot reports whether the project store points at the global root, as
// when the command runs from the home directory. Its components are then
// reported once, as global.
func (r *Resolver) sharedRoot() bool {
	return filepath.Clean(r.project.Root()) == filepath.Clean(r.global.Root())
}

func (r *Resolver) lookup(origin component.Origin, name string, typ component.Type) (component.Descriptor, bool) {
	switch origin {
	case component.OriginProject:
		if r.sharedRoot() {
			return component.Descriptor{}, false
		}
		return r.project.Component(name, typ)
	case component.OriginGlobal:
		return r.global.Component(name, typ)
	default:
		return r.builtin.Component(name, typ)
	}
}

func (r *Resolver) byType(origin component.Origin, typ component.Type) []component.Descriptor {
	switch origin {
	case component.OriginProject:
		if r.sharedRoot() {
			return nil
		}
		return r.project.ComponentsByType(typ)
	case component.OriginGlobal:
		return r.global.ComponentsByType(typ)
	default:
		return r.builtin.ComponentsByType(typ)
	}
}

func (r *Resolver) all(origin component.Origin) []component.Descriptor {
	switch origin {
	case component.OriginProject:
		if r.sharedRoot() {
			return nil
		}
		return r.project.Components()
	case component.OriginGlobal:
		return r.global.Components()
	default:
		return r.builtin.Components()
	}
}
