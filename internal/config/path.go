package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPath is returned for malformed dot paths or paths that traverse
// a non-map value.
var ErrInvalidPath = errors.New("invalid config path")

// SplitPath splits a dot path ("ui.colorOutput") into its segments.
func SplitPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
	}
	return parts, nil
}

func joinPath(parts []string) string {
	return strings.Join(parts, ".")
}

// GetValue returns the value at a dot path.
func GetValue(m map[string]any, path string) (any, bool, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, false, err
	}

	var current any = m
	for _, p := range parts {
		node, ok := asMap(current)
		if !ok {
			return nil, false, nil
		}
		current, ok = node[p]
		if !ok {
			return nil, false, nil
		}
	}
	return current, true, nil
}

// SetValue stores value at a dot path, creating intermediate maps.
func SetValue(m map[string]any, path string, value any) error {
	parts, err := SplitPath(path)
	if err != nil {
		return err
	}
	return setPath(m, parts, value)
}

func setPath(m map[string]any, parts []string, value any) error {
	node := m
	for i, p := range parts[:len(parts)-1] {
		next, exists := node[p]
		if !exists || next == nil {
			child := map[string]any{}
			node[p] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %q is not a section", ErrInvalidPath, joinPath(parts[:i+1]))
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return nil
}

// UnsetValue removes the value at a dot path and prunes sections left empty.
// It reports whether anything was removed.
func UnsetValue(m map[string]any, path string) (bool, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return false, err
	}
	return unsetPath(m, parts), nil
}

func unsetPath(node map[string]any, parts []string) bool {
	key := parts[0]
	if len(parts) == 1 {
		if _, ok := node[key]; !ok {
			return false
		}
		delete(node, key)
		return true
	}

	child, ok := node[key].(map[string]any)
	if !ok {
		return false
	}
	removed := unsetPath(child, parts[1:])
	if removed && len(child) == 0 {
		delete(node, key)
	}
	return removed
}

// ParseValue interprets a command line value as a YAML scalar or flow
// collection, so "true" becomes a bool and "[a, b]" a list. Anything that
// does not parse is kept as the raw string.
func ParseValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	return v
}
