package scope

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/log"
)

// Discover scans every type subdirectory of fsys (non-recursively) and
// returns one descriptor per file. pathPrefix is joined with the relative
// file path to form Descriptor.Path. Missing or unreadable directories
// contribute nothing.
func Discover(fsys fs.FS, pathPrefix string) []component.Descriptor {
	var descriptors []component.Descriptor
	for _, typ := range component.AllTypes() {
		descriptors = append(descriptors, discoverType(fsys, pathPrefix, typ)...)
	}

	sort.SliceStable(descriptors, func(i, j int) bool {
		return descriptors[i].Less(descriptors[j])
	})
	return descriptors
}

func discoverType(fsys fs.FS, pathPrefix string, typ component.Type) []component.Descriptor {
	dir := typ.Plural()

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debug(log.CatScope, "reading type directory", "dir", dir, "error", err.Error())
		}
		return nil
	}

	descriptors := make([]component.Descriptor, 0, len(entries))
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || strings.HasPrefix(fileName, ".") {
			continue
		}

		// Use path.Join (not filepath.Join) for io/fs paths which always use forward slashes
		rel := path.Join(dir, fileName)
		name := strings.TrimSuffix(fileName, path.Ext(fileName))
		if name == "" {
			continue
		}

		descriptors = append(descriptors, component.Descriptor{
			Name:     name,
			Type:     typ,
			Path:     joinPrefix(pathPrefix, rel),
			Metadata: ExtractMetadata(fsys, rel),
		})
	}
	return descriptors
}

func joinPrefix(prefix, rel string) string {
	if prefix == "" {
		return rel
	}
	return filepath.Join(prefix, filepath.FromSlash(rel))
}
