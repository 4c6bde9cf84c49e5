package scope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/log"
)

// frontmatterDelimiter is the standard YAML frontmatter delimiter.
const frontmatterDelimiter = "---"

// ExtractMetadata decodes the metadata of the file at name. Failures degrade
// to an empty record of the matching kind and never return an error.
func ExtractMetadata(fsys fs.FS, name string) component.Metadata {
	ext := strings.ToLower(path.Ext(name))

	switch ext {
	case ".md", ".markdown":
		return decodeOrEmpty(fsys, name, component.MetadataFrontmatter, parseFrontmatter)
	case ".json":
		return decodeOrEmpty(fsys, name, component.MetadataJSON, parseJSONMetadata)
	case ".yaml", ".yml":
		return decodeOrEmpty(fsys, name, component.MetadataYAML, parseYAMLMetadata)
	default:
		return fileInfoMetadata(fsys, name, ext)
	}
}

func decodeOrEmpty(fsys fs.FS, name string, kind component.MetadataKind, parse func([]byte) (map[string]any, error)) component.Metadata {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		log.Debug(log.CatScope, "reading component file", "path", name, "error", err.Error())
		return component.EmptyMetadata(kind)
	}

	fields, err := parse(content)
	if err != nil {
		log.Debug(log.CatScope, "extracting metadata", "path", name, "kind", string(kind), "error", err.Error())
		return component.EmptyMetadata(kind)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return component.Metadata{Kind: kind, Fields: fields}
}

// parseFrontmatter extracts and parses YAML frontmatter from markdown content.
// Frontmatter must start at the beginning, delimited by "---".
func parseFrontmatter(content []byte) (map[string]any, error) {
	text := string(content)
	if !strings.HasPrefix(text, frontmatterDelimiter) {
		return nil, nil
	}

	rest := text[len(frontmatterDelimiter):]
	yamlContent, _, found := strings.Cut(rest, "\n"+frontmatterDelimiter)
	if !found {
		return nil, fmt.Errorf("no closing frontmatter delimiter found")
	}
	yamlContent = strings.TrimPrefix(strings.TrimPrefix(yamlContent, "\r"), "\n")

	return parseYAMLMetadata([]byte(yamlContent))
}

// parseJSONMetadata returns the nested "metadata" object when present,
// otherwise the whole document.
func parseJSONMetadata(content []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if nested, ok := doc["metadata"].(map[string]any); ok {
		return nested, nil
	}
	return doc, nil
}

func parseYAMLMetadata(content []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return doc, nil
}

func fileInfoMetadata(fsys fs.FS, name, ext string) component.Metadata {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		log.Debug(log.CatScope, "stat component file", "path", name, "error", err.Error())
		return component.EmptyMetadata(component.MetadataFileInfo)
	}
	return component.Metadata{
		Kind: component.MetadataFileInfo,
		Fields: map[string]any{
			"size":      info.Size(),
			"modified":  info.ModTime().UTC().Format(time.RFC3339),
			"extension": ext,
		},
	}
}
