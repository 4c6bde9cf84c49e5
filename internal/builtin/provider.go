// Package builtin serves the read-only components bundled into the binary.
package builtin

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/zjrosen/modekit/internal/cachemanager"
	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/log"
	"github.com/zjrosen/modekit/internal/scope"
)

// PathPrefix is prepended to the paths of embedded components.
const PathPrefix = "builtin"

const componentsCacheKey = "components:builtin"

// Provider lists built-in components. It never fails: an unreadable source
// yields an empty list.
type Provider struct {
	fsys   fs.FS
	prefix string

	cache      *cachemanager.TTLCache
	components *cachemanager.ReadThroughCache[[]component.Descriptor, fs.FS]
}

// New returns a Provider over the embedded components.
func New() *Provider {
	return NewFromFS(ContentFS(), PathPrefix)
}

// NewFromFS returns a Provider over fsys. Descriptor paths are prefix joined
// with the file's path inside fsys. A nil fsys yields an unavailable provider.
func NewFromFS(fsys fs.FS, prefix string) *Provider {
	p := &Provider{
		fsys:   fsys,
		prefix: prefix,
		cache:  cachemanager.NewTTLCache("builtin", cachemanager.BuiltinExpiration),
	}
	p.components = cachemanager.NewReadThroughCache(p.cache, p.discover, false)
	return p
}

// IsAvailable reports whether the source holds at least one type directory.
func (p *Provider) IsAvailable() bool {
	if p.fsys == nil {
		return false
	}
	for _, typ := range component.AllTypes() {
		info, err := fs.Stat(p.fsys, typ.Plural())
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// Components returns every built-in component.
func (p *Provider) Components() []component.Descriptor {
	descriptors, _ := p.components.Get(componentsCacheKey, p.fsys)
	out := make([]component.Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// ComponentsByType returns the built-in components of one type.
func (p *Provider) ComponentsByType(typ component.Type) []component.Descriptor {
	var out []component.Descriptor
	for _, d := range p.Components() {
		if d.Type == typ {
			out = append(out, d)
		}
	}
	return out
}

// Component returns the built-in component with the given identity.
func (p *Provider) Component(name string, typ component.Type) (component.Descriptor, bool) {
	for _, d := range p.ComponentsByType(typ) {
		if d.Name == name {
			return d, true
		}
	}
	return component.Descriptor{}, false
}

// Read returns the contents of a built-in component.
func (p *Provider) Read(d component.Descriptor) ([]byte, error) {
	if p.fsys == nil {
		return nil, fs.ErrNotExist
	}
	rel := filepath.ToSlash(d.Path)
	if p.prefix != "" {
		prefix := filepath.ToSlash(p.prefix) + "/"
		if !strings.HasPrefix(rel, prefix) {
			return nil, &fs.PathError{Op: "read", Path: d.Path, Err: errors.New("not a built-in component")}
		}
		rel = strings.TrimPrefix(rel, prefix)
	}
	return fs.ReadFile(p.fsys, rel)
}

// ClearCache drops the cached listing.
func (p *Provider) ClearCache() {
	p.cache.Clear()
}

func (p *Provider) discover(fsys fs.FS) ([]component.Descriptor, error) {
	if !p.IsAvailable() {
		log.Warn(log.CatScope, "built-in components unavailable")
		return nil, nil
	}
	descriptors := scope.Discover(fsys, p.prefix)
	log.Debug(log.CatScope, "loaded built-in components", "count", len(descriptors))
	return descriptors, nil
}
