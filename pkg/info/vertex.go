package info

import (
	"slices"

	"github.com/matzehuels/graphar/pkg/errors"
)

// VertexInfo describes the storage of one vertex label.
//
// The zero value is not usable; use [NewVertexInfo]. A VertexInfo is
// immutable and safe for concurrent use.
type VertexInfo struct {
	label     string
	chunkSize int64
	prefix    string
	version   *Version
	groups    propertyGroups
	err       error // validation result, computed once
}

// NewVertexInfo creates a vertex info.
//
// An empty prefix defaults to "<label>/". NewVertexInfo fails with
// INVALID_ARGUMENT for an empty label or a non-positive chunk size and with
// INVALID_VERSION for a nil version. Other schema problems do not fail
// construction; they are reported by [VertexInfo.Validate].
func NewVertexInfo(label string, chunkSize int64, groups []*PropertyGroup, prefix string, version *Version) (*VertexInfo, error) {
	if label == "" {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "vertex label cannot be empty")
	}
	if chunkSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "vertex %q: chunk size must be positive, got %d", label, chunkSize)
	}
	if version == nil {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "vertex %q: version is required", label)
	}
	if prefix == "" {
		prefix = label + "/"
	}
	v := &VertexInfo{
		label:     label,
		chunkSize: chunkSize,
		prefix:    prefix,
		version:   version,
		groups:    newPropertyGroups(groups),
	}
	v.err = v.validate()
	return v, nil
}

func (v *VertexInfo) validate() error {
	if err := errors.ValidateName("vertex label", v.label); err != nil {
		return err
	}
	if err := errors.ValidatePath(v.prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "vertex %q prefix", v.label)
	}
	if err := v.groups.validate(v.version, true); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "vertex %q", v.label)
	}
	return nil
}

// Label returns the vertex label.
func (v *VertexInfo) Label() string { return v.label }

// ChunkSize returns the number of vertices per chunk.
func (v *VertexInfo) ChunkSize() int64 { return v.chunkSize }

// Prefix returns the directory of the vertex data, relative to the graph prefix.
func (v *VertexInfo) Prefix() string { return v.prefix }

// Version returns the format version.
func (v *VertexInfo) Version() *Version { return v.version }

// PropertyGroups returns the registered groups in registration order.
func (v *VertexInfo) PropertyGroups() []*PropertyGroup { return slices.Clone(v.groups.groups) }

// PropertyGroupNum returns the number of registered groups.
func (v *VertexInfo) PropertyGroupNum() int { return len(v.groups.groups) }

// HasProperty reports whether any group holds a property named name.
func (v *VertexInfo) HasProperty(name string) bool {
	_, ok := v.groups.owner[name]
	return ok
}

// HasPropertyGroup reports whether a group equal to g is registered.
func (v *VertexInfo) HasPropertyGroup(g *PropertyGroup) bool { return v.groups.has(g) }

// GetPropertyGroup returns the group owning property name.
// Unknown properties fail with NOT_FOUND.
func (v *VertexInfo) GetPropertyGroup(name string) (*PropertyGroup, error) {
	g, ok := v.groups.groupOf(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "vertex %q has no property %q", v.label, name)
	}
	return g, nil
}

// GetPropertyType returns the data type of property name.
func (v *VertexInfo) GetPropertyType(name string) (DataType, error) {
	p, ok := v.groups.property(name)
	if !ok {
		return DataType{}, errors.New(errors.ErrCodeNotFound, "vertex %q has no property %q", v.label, name)
	}
	return p.Type, nil
}

// IsPrimaryKey reports whether name is the primary key property.
// Unknown properties are not primary keys.
func (v *VertexInfo) IsPrimaryKey(name string) bool {
	p, ok := v.groups.property(name)
	return ok && p.IsPrimary
}

// PrimaryKey returns the name of the primary key property, if any.
func (v *VertexInfo) PrimaryKey() (string, bool) {
	for _, g := range v.groups.groups {
		for _, p := range g.properties {
			if p.IsPrimary {
				return p.Name, true
			}
		}
	}
	return "", false
}

// GetPathPrefix returns the directory holding the chunks of group g.
func (v *VertexInfo) GetPathPrefix(g *PropertyGroup) (string, error) {
	if !v.HasPropertyGroup(g) {
		return "", errors.New(errors.ErrCodeNotFound, "property group %v is not registered on vertex %q", g, v.label)
	}
	return v.prefix + g.Prefix(), nil
}

// GetFilePath returns the path of chunk chunkIndex of group g:
// <prefix><group>chunk<i>.
func (v *VertexInfo) GetFilePath(g *PropertyGroup, chunkIndex int64) (string, error) {
	if err := checkIndex("chunk index", chunkIndex); err != nil {
		return "", err
	}
	if !v.HasPropertyGroup(g) {
		return "", errors.New(errors.ErrCodeNotFound, "property group %v is not registered on vertex %q", g, v.label)
	}
	return vertexChunkPath(v.prefix, g.Prefix(), chunkIndex), nil
}

// GetVerticesNumFilePath returns the path of the file recording the number
// of vertices: <prefix>vertex_count.
func (v *VertexInfo) GetVerticesNumFilePath() string {
	return v.prefix + VertexCountFile
}

// AddPropertyGroup returns a new VertexInfo with g registered.
//
// It fails with SCHEMA_CONFLICT if g shares a property name with a
// registered group. If v is validated and the result would not be (for
// example a second primary key), the validation error is returned instead.
// v itself is never modified.
func (v *VertexInfo) AddPropertyGroup(g *PropertyGroup) (*VertexInfo, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "property group is nil")
	}
	if err := v.groups.conflicts(g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaConflict, err, "vertex %q", v.label)
	}
	next, err := NewVertexInfo(v.label, v.chunkSize, v.groups.with(g), v.prefix, v.version)
	if err != nil {
		return nil, err
	}
	if v.IsValidated() && !next.IsValidated() {
		return nil, next.err
	}
	return next, nil
}

// Validate returns nil if the vertex info is consistent, or the first
// problem found.
func (v *VertexInfo) Validate() error { return v.err }

// IsValidated reports whether [VertexInfo.Validate] returns nil.
func (v *VertexInfo) IsValidated() bool { return v.err == nil }
