package builtin

import (
	"embed"
	"io/fs"
)

// content embeds the components shipped with modekit, laid out like a scope
// root: content/<type plural>/<file>.
//
//go:embed content
var content embed.FS

// ContentFS returns the embedded components with the "content/" prefix
// removed.
func ContentFS() fs.FS {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		// fs.Sub only fails on an invalid path
		panic(err)
	}
	return sub
}
