package info

import (
	"github.com/matzehuels/graphar/pkg/errors"
)

// propertyGroups is the property-group bookkeeping shared by vertex and edge
// infos. It is built once per info and never modified afterwards.
type propertyGroups struct {
	groups []*PropertyGroup
	owner  map[string]int // property name -> index into groups (first wins)
}

func newPropertyGroups(groups []*PropertyGroup) propertyGroups {
	pg := propertyGroups{
		groups: make([]*PropertyGroup, 0, len(groups)),
		owner:  make(map[string]int),
	}
	for _, g := range groups {
		if g == nil {
			continue
		}
		idx := len(pg.groups)
		pg.groups = append(pg.groups, g)
		for _, p := range g.properties {
			if _, ok := pg.owner[p.Name]; !ok {
				pg.owner[p.Name] = idx
			}
		}
	}
	return pg
}

func (pg propertyGroups) has(g *PropertyGroup) bool {
	if g == nil {
		return false
	}
	key := g.Key()
	for _, existing := range pg.groups {
		if existing.Key() == key {
			return true
		}
	}
	return false
}

func (pg propertyGroups) groupOf(name string) (*PropertyGroup, bool) {
	idx, ok := pg.owner[name]
	if !ok {
		return nil, false
	}
	return pg.groups[idx], true
}

func (pg propertyGroups) property(name string) (Property, bool) {
	g, ok := pg.groupOf(name)
	if !ok {
		return Property{}, false
	}
	return g.Property(name)
}

// conflicts returns a SCHEMA_CONFLICT error if g shares a property name with
// any registered group.
func (pg propertyGroups) conflicts(g *PropertyGroup) error {
	for _, p := range g.properties {
		if _, ok := pg.owner[p.Name]; ok {
			return errors.New(errors.ErrCodeSchemaConflict, "property %q is already registered", p.Name)
		}
	}
	return nil
}

// with returns a copy holding g as well.
func (pg propertyGroups) with(g *PropertyGroup) []*PropertyGroup {
	out := make([]*PropertyGroup, 0, len(pg.groups)+1)
	out = append(out, pg.groups...)
	return append(out, g)
}

// validate checks every group, cross-group name uniqueness, directory
// uniqueness, version support for every type, and the primary key rule.
func (pg propertyGroups) validate(v *Version, allowPrimary bool) error {
	names := make(map[string]bool)
	dirs := make(map[string]bool)
	primaries := 0
	for _, g := range pg.groups {
		if err := g.Validate(); err != nil {
			return err
		}
		if reservedDirs[g.prefix] {
			return errors.New(errors.ErrCodeSchemaConflict, "property group directory %q is reserved", g.prefix)
		}
		if dirs[g.prefix] {
			return errors.New(errors.ErrCodeSchemaConflict, "two property groups share directory %q", g.prefix)
		}
		dirs[g.prefix] = true
		for _, p := range g.properties {
			if names[p.Name] {
				return errors.New(errors.ErrCodeSchemaConflict, "property %q is defined in more than one group", p.Name)
			}
			names[p.Name] = true
			for _, n := range p.Type.names() {
				if !v.CheckType(n) {
					return errors.New(errors.ErrCodeInvalidVersion, "property %q: type %q not supported by %s", p.Name, n, v)
				}
			}
			if p.IsPrimary {
				if !allowPrimary {
					return errors.New(errors.ErrCodeInvalidArgument, "property %q: primary keys are only allowed on vertices", p.Name)
				}
				primaries++
			}
		}
	}
	if primaries > 1 {
		return errors.New(errors.ErrCodeSchemaConflict, "more than one primary key property")
	}
	return nil
}
