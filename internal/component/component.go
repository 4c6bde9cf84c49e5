// Package component defines the descriptors shared by scope stores, the
// built-in provider, the resolver and the fuzzy match engine.
package component

import (
	"fmt"
	"strings"
)

// Type is the kind of a component. Each type maps to one subdirectory of a
// scope root, named by its plural.
type Type string

const (
	TypeMode     Type = "mode"
	TypeWorkflow Type = "workflow"
	TypeScript   Type = "script"
	TypeHook     Type = "hook"
	TypeAgent    Type = "agent"
	TypeCommand  Type = "command"
	TypeTemplate Type = "template"
)

var allTypes = []Type{
	TypeMode,
	TypeWorkflow,
	TypeScript,
	TypeHook,
	TypeAgent,
	TypeCommand,
	TypeTemplate,
}

// AllTypes returns the seven component types in their fixed order.
func AllTypes() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// IsValid returns true if the type is one of the seven known types.
func (t Type) IsValid() bool {
	return t.index() >= 0
}

// Plural returns the subdirectory name for the type (e.g. "modes").
func (t Type) Plural() string {
	return string(t) + "s"
}

func (t Type) index() int {
	for i, known := range allTypes {
		if known == t {
			return i
		}
	}
	return -1
}

// ParseType accepts a singular or plural type name, case-insensitively.
func ParseType(s string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, t := range allTypes {
		if normalized == string(t) || normalized == t.Plural() {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown component type %q (want one of %s)", s, typeList())
}

func typeList() string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Key identifies a component within one scope.
type Key struct {
	Name string
	Type Type
}

func (k Key) String() string {
	return string(k.Type) + "/" + k.Name
}

// Descriptor is a component discovered in one scope.
type Descriptor struct {
	Name     string
	Type     Type
	Path     string
	Metadata Metadata
}

// Key returns the (name, type) identity of the descriptor.
func (d Descriptor) Key() Key {
	return Key{Name: d.Name, Type: d.Type}
}

// Less orders descriptors by type order, then name.
func (d Descriptor) Less(other Descriptor) bool {
	if d.Type != other.Type {
		return d.Type.index() < other.Type.index()
	}
	return d.Name < other.Name
}

// Origin is the scope a resolved component came from.
type Origin string

const (
	OriginProject Origin = "project"
	OriginGlobal  Origin = "global"
	OriginBuiltin Origin = "builtin"
)

// Precedence ranks origins: project > global > builtin.
func (o Origin) Precedence() int {
	switch o {
	case OriginProject:
		return 3
	case OriginGlobal:
		return 2
	case OriginBuiltin:
		return 1
	default:
		return 0
	}
}

// Origins returns the origins from highest to lowest precedence.
func Origins() []Origin {
	return []Origin{OriginProject, OriginGlobal, OriginBuiltin}
}

// Resolved pairs a descriptor with the origin it was resolved from.
type Resolved struct {
	Descriptor
	Origin Origin
}
