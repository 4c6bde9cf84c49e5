package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a scope config file into its sparse map form.
// A missing file returns nil, nil. A file that fails to parse, or whose top
// level is not a mapping, returns a *ConfigError. Option names and value
// types are not checked here; see Decode.
func LoadFile(fs afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(path, err)
	}

	m := map[string]any{}
	// An empty document is a valid "no overrides" config
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
			return m, nil
		}
		if root.Kind != yaml.MappingNode {
			return nil, newParseError(path, fmt.Errorf("line %d: top level must be a mapping", root.Line))
		}
		if err := root.Decode(&m); err != nil {
			return nil, newParseError(path, err)
		}
	}

	return m, nil
}

// SaveFile writes a sparse config map atomically (temp file, then rename),
// creating the parent directory if needed.
func SaveFile(fs afero.Fs, path string, m map[string]any) error {
	if m == nil {
		m = map[string]any{}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := afero.TempFile(fs, dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = fs.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = fs.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := fs.Rename(tempPath, path); err != nil {
		_ = fs.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
