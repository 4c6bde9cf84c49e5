// Package paths resolves the project and global scope roots.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/zjrosen/modekit/internal/log"
)

// DirName is the name of a scope root directory.
const DirName = ".modekit"

// redirectFile inside a project root points at another root, relative to it.
// Git worktrees use it to share the main worktree's components.
const redirectFile = "redirect"

// ResolveProjectDir resolves the project scope root from user input.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.modekit"
//   - "/path/to/project/.modekit" -> "/path/to/project/.modekit"
//   - "/path/to/data" (containing config.yaml) -> "/path/to/data"
//   - "" -> nearest .modekit walking up from cwd, else cwd/.modekit
//
// The walk up skips globalRoot, so a project under the home directory never
// picks up ~/.modekit as its project scope. A redirect file in the resolved
// directory is followed once.
func ResolveProjectDir(fs afero.Fs, input, cwd, globalRoot string) string {
	if input == "" {
		if found, ok := findUp(fs, cwd, globalRoot); ok {
			return followRedirect(fs, found)
		}
		return filepath.Join(filepath.Clean(cwd), DirName)
	}

	path := filepath.Clean(input)
	if !filepath.IsAbs(path) && cwd != "" {
		path = filepath.Join(cwd, path)
	}

	if filepath.Base(path) == DirName {
		return followRedirect(fs, path)
	}

	// A directory holding a config file is already a scope root
	if ok, _ := afero.Exists(fs, filepath.Join(path, "config.yaml")); ok {
		return followRedirect(fs, path)
	}

	return followRedirect(fs, filepath.Join(path, DirName))
}

// ResolveGlobalDir resolves the global scope root. An empty input means
// ~/.modekit.
func ResolveGlobalDir(input, home string) string {
	if input != "" {
		return filepath.Clean(expandHome(input, home))
	}
	return filepath.Join(home, DirName)
}

// HomeDir returns the user's home directory, or "." if it cannot be found.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func findUp(fs afero.Fs, start, skip string) (string, bool) {
	if start == "" {
		return "", false
	}
	if skip != "" {
		skip = filepath.Clean(skip)
	}
	dir := filepath.Clean(start)
	for {
		candidate := filepath.Join(dir, DirName)
		if candidate == skip {
			log.Debug(log.CatScope, "skipping global root during project lookup", "dir", candidate)
		} else if ok, _ := afero.DirExists(fs, candidate); ok {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func followRedirect(fs afero.Fs, dir string) string {
	content, err := afero.ReadFile(fs, filepath.Join(dir, redirectFile))
	if err != nil {
		return dir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dir, target))
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
