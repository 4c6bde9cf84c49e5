package presentation

import (
	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/fuzzy"
)

// ComponentDTO represents a resolved component for presentation
type ComponentDTO struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Origin       string         `json:"origin"`
	Path         string         `json:"path"`
	Description  string         `json:"description,omitempty"`
	Tags         []string       `json:"tags"`
	MetadataKind string         `json:"metadata_kind"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// MatchDTO represents a ranked query match
type MatchDTO struct {
	ComponentDTO
	Score         int      `json:"score"`
	MatchType     string   `json:"match_type"`
	ConflictsWith []string `json:"conflicts_with"` // origins shadowed by or shadowing this match
}

// FromResolved converts a resolved component to a DTO.
func FromResolved(c component.Resolved) ComponentDTO {
	tags := c.Metadata.Tags()
	if tags == nil {
		tags = []string{}
	}
	return ComponentDTO{
		Name:         c.Name,
		Type:         string(c.Type),
		Origin:       string(c.Origin),
		Path:         c.Path,
		Description:  c.Metadata.Description(),
		Tags:         tags,
		MetadataKind: string(c.Metadata.Kind),
		Metadata:     c.Metadata.Fields,
	}
}

// FromResolvedList converts resolved components to DTOs
func FromResolvedList(list []component.Resolved) []ComponentDTO {
	dtos := make([]ComponentDTO, len(list))
	for i, c := range list {
		dtos[i] = FromResolved(c)
	}
	return dtos
}

// FromMatch converts a fuzzy match to a DTO.
func FromMatch(m fuzzy.Match) MatchDTO {
	conflicts := make([]string, len(m.ConflictsWith))
	for i, c := range m.ConflictsWith {
		conflicts[i] = string(c.Origin)
	}
	return MatchDTO{
		ComponentDTO:  FromResolved(m.Component),
		Score:         m.Score,
		MatchType:     string(m.MatchType),
		ConflictsWith: conflicts,
	}
}

// FromMatches converts fuzzy matches to DTOs
func FromMatches(matches []fuzzy.Match) []MatchDTO {
	dtos := make([]MatchDTO, len(matches))
	for i, m := range matches {
		dtos[i] = FromMatch(m)
	}
	return dtos
}
