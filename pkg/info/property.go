package info

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/graphar/pkg/errors"
)

// Property is a typed field of a vertex or edge.
type Property struct {
	Name      string
	Type      DataType
	IsPrimary bool // only meaningful on vertex properties
}

// NewProperty returns a Property.
func NewProperty(name string, t DataType, isPrimary bool) Property {
	return Property{Name: name, Type: t, IsPrimary: isPrimary}
}

// Equal reports whether two properties have the same name, type and
// primary-key flag.
func (p Property) Equal(o Property) bool {
	return p.Name == o.Name && p.Type.Equal(o.Type) && p.IsPrimary == o.IsPrimary
}

func (p Property) key() string {
	return fmt.Sprintf("%s:%s:%t", p.Name, p.Type, p.IsPrimary)
}

// =============================================================================
// PropertyGroup
// =============================================================================

// PropertyGroup is a set of properties stored together in one file type.
//
// Groups are immutable values. Two groups are equal when they hold the same
// properties (in any order), the same file type and resolve to the same
// directory. The directory token is the explicit prefix if one was given,
// otherwise the property names sorted and joined with "_" plus a trailing
// "/": a group holding only "id" lives in "id/", a group holding lastName and
// firstName lives in "firstName_lastName/".
type PropertyGroup struct {
	properties []Property
	fileType   FileType
	prefix     string
}

// NewPropertyGroup returns a group with the default directory token.
func NewPropertyGroup(properties []Property, fileType FileType) *PropertyGroup {
	return NewPropertyGroupWithPrefix(properties, fileType, "")
}

// NewPropertyGroupWithPrefix returns a group stored under an explicit
// directory token. A missing trailing "/" is added; an empty prefix selects
// the default token.
func NewPropertyGroupWithPrefix(properties []Property, fileType FileType, prefix string) *PropertyGroup {
	g := &PropertyGroup{
		properties: slices.Clone(properties),
		fileType:   fileType,
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if prefix == "" {
		prefix = defaultGroupPrefix(properties)
	}
	g.prefix = prefix
	return g
}

func defaultGroupPrefix(properties []Property) string {
	if len(properties) == 0 {
		return ""
	}
	names := make([]string, len(properties))
	for i, p := range properties {
		names[i] = p.Name
	}
	slices.Sort(names)
	return strings.Join(names, "_") + "/"
}

// Properties returns a copy of the group's properties in declaration order.
func (g *PropertyGroup) Properties() []Property { return slices.Clone(g.properties) }

// Len returns the number of properties.
func (g *PropertyGroup) Len() int { return len(g.properties) }

// FileType returns the storage format of the group's chunks.
func (g *PropertyGroup) FileType() FileType { return g.fileType }

// Prefix returns the group's directory token, ending in "/".
func (g *PropertyGroup) Prefix() string { return g.prefix }

// HasProperty reports whether the group contains a property named name.
func (g *PropertyGroup) HasProperty(name string) bool {
	_, ok := g.Property(name)
	return ok
}

// Property returns the property named name.
func (g *PropertyGroup) Property(name string) (Property, bool) {
	for _, p := range g.properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Key returns a canonical string identifying the group's content,
// independent of property order.
func (g *PropertyGroup) Key() string {
	keys := make([]string, len(g.properties))
	for i, p := range g.properties {
		keys[i] = p.key()
	}
	slices.Sort(keys)
	return g.fileType.String() + "|" + g.prefix + "|" + strings.Join(keys, ",")
}

// Equal reports whether two groups have the same content.
func (g *PropertyGroup) Equal(o *PropertyGroup) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.Key() == o.Key()
}

// String returns a short description such as "id:int64 (csv)".
func (g *PropertyGroup) String() string {
	parts := make([]string, len(g.properties))
	for i, p := range g.properties {
		parts[i] = p.Name + ":" + p.Type.String()
		if p.IsPrimary {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, ",") + " (" + g.fileType.String() + ")"
}

// Validate checks the group on its own: at least one property, valid and
// unique names, known types and file type.
func (g *PropertyGroup) Validate() error {
	if len(g.properties) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "property group has no properties")
	}
	if !g.fileType.Valid() {
		return errors.New(errors.ErrCodeInvalidArgument, "property group %s: unknown file type", g.prefix)
	}
	if err := errors.ValidatePath(g.prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "property group prefix")
	}
	seen := make(map[string]bool, len(g.properties))
	for _, p := range g.properties {
		if err := errors.ValidateName("property name", p.Name); err != nil {
			return err
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeSchemaConflict, "property %q appears twice in group %s", p.Name, g.prefix)
		}
		seen[p.Name] = true
		if p.Type.IsZero() {
			return errors.New(errors.ErrCodeInvalidArgument, "property %q has no data type", p.Name)
		}
	}
	return nil
}

// =============================================================================
// AdjacentList
// =============================================================================

// AdjacentList registers one adjacency list type on an edge, with the file
// type its chunks use. Its directory token defaults to the type tag.
type AdjacentList struct {
	typ      AdjListType
	fileType FileType
	prefix   string
}

// NewAdjacentList returns an adjacency list stored under its type tag.
func NewAdjacentList(t AdjListType, fileType FileType) *AdjacentList {
	return NewAdjacentListWithPrefix(t, fileType, "")
}

// NewAdjacentListWithPrefix returns an adjacency list stored under an
// explicit directory token.
func NewAdjacentListWithPrefix(t AdjListType, fileType FileType, prefix string) *AdjacentList {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if prefix == "" && t.Valid() {
		prefix = t.String() + "/"
	}
	return &AdjacentList{typ: t, fileType: fileType, prefix: prefix}
}

// Type returns the adjacency list type.
func (a *AdjacentList) Type() AdjListType { return a.typ }

// FileType returns the storage format of the list's chunks.
func (a *AdjacentList) FileType() FileType { return a.fileType }

// Prefix returns the list's directory token, ending in "/".
func (a *AdjacentList) Prefix() string { return a.prefix }

// Equal reports whether two adjacency lists are identical.
func (a *AdjacentList) Equal(o *AdjacentList) bool {
	if a == nil || o == nil {
		return a == o
	}
	return *a == *o
}

// Validate checks the type, file type and prefix.
func (a *AdjacentList) Validate() error {
	if !a.typ.Valid() {
		return errors.New(errors.ErrCodeInvalidArgument, "unknown adjacency list type")
	}
	if !a.fileType.Valid() {
		return errors.New(errors.ErrCodeInvalidArgument, "adjacency list %s: unknown file type", a.typ)
	}
	if a.prefix == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "adjacency list %s: empty prefix", a.typ)
	}
	if err := errors.ValidatePath(a.prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "adjacency list %s prefix", a.typ)
	}
	return nil
}
