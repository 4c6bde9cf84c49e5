package component

import (
	"fmt"
	"strings"
)

// MetadataKind tags how a component's metadata was decoded.
type MetadataKind string

const (
	MetadataFrontmatter MetadataKind = "frontmatter"
	MetadataJSON        MetadataKind = "json"
	MetadataYAML        MetadataKind = "yaml"
	MetadataFileInfo    MetadataKind = "fileinfo"
)

// Metadata is the decoded header of a component file. Fields is never nil
// for metadata produced by discovery; an undecodable file yields an empty
// record of its kind.
type Metadata struct {
	Kind   MetadataKind
	Fields map[string]any
}

// EmptyMetadata returns an empty record of the given kind.
func EmptyMetadata(kind MetadataKind) Metadata {
	return Metadata{Kind: kind, Fields: map[string]any{}}
}

// IsEmpty reports whether the record carries no fields.
func (m Metadata) IsEmpty() bool {
	return len(m.Fields) == 0
}

// Semantic reports whether the fields describe the component (as opposed to
// file info gathered for non-structured files).
func (m Metadata) Semantic() bool {
	return m.Kind != MetadataFileInfo && !m.IsEmpty()
}

// String returns a string field, or "".
func (m Metadata) String(key string) string {
	v, ok := m.Fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Description returns the "description" field.
func (m Metadata) Description() string {
	if !m.Semantic() {
		return ""
	}
	return m.String("description")
}

// Tags returns the "tags" field as a list. A comma-separated string is split.
func (m Metadata) Tags() []string {
	if !m.Semantic() {
		return nil
	}
	switch v := m.Fields["tags"].(type) {
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	case string:
		var tags []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tags = append(tags, part)
			}
		}
		return tags
	default:
		return nil
	}
}
