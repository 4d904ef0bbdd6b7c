package info

import (
	"regexp"
	"strings"

	"github.com/matzehuels/graphar/pkg/errors"
)

// =============================================================================
// Data Types
// =============================================================================

// TypeID identifies the kind of a [DataType].
type TypeID int

const (
	TypeBool TypeID = iota + 1
	TypeInt32
	TypeInt64
	TypeFloat
	TypeDouble
	TypeString
	TypeDate
	TypeTimestamp
	// TypeList is a list of a primitive element type, written "list<int32>".
	TypeList
	// TypeUserDefined is a type declared by the version tag, e.g. "gar/v1 (geo)".
	TypeUserDefined
)

var typeNames = map[TypeID]string{
	TypeBool:      "bool",
	TypeInt32:     "int32",
	TypeInt64:     "int64",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeString:    "string",
	TypeDate:      "date",
	TypeTimestamp: "timestamp",
	TypeList:      "list",
}

var typeIDs = map[string]TypeID{
	"bool":      TypeBool,
	"int32":     TypeInt32,
	"int64":     TypeInt64,
	"float":     TypeFloat,
	"double":    TypeDouble,
	"string":    TypeString,
	"date":      TypeDate,
	"timestamp": TypeTimestamp,
}

var (
	listTypeRe = regexp.MustCompile(`^list\s*<\s*([A-Za-z0-9_]+)\s*>$`)
	typeNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// DataType is the type of a property. It is a small value type; compare
// with [DataType.Equal].
type DataType struct {
	id   TypeID
	elem TypeID // element type for lists
	name string // name for user-defined types
}

// Primitive type constructors.

func Bool() DataType      { return DataType{id: TypeBool} }
func Int32() DataType     { return DataType{id: TypeInt32} }
func Int64() DataType     { return DataType{id: TypeInt64} }
func Float() DataType     { return DataType{id: TypeFloat} }
func Double() DataType    { return DataType{id: TypeDouble} }
func String() DataType    { return DataType{id: TypeString} }
func Date() DataType      { return DataType{id: TypeDate} }
func Timestamp() DataType { return DataType{id: TypeTimestamp} }

// List returns a list type of the given primitive element type.
// Nested lists and lists of user-defined types are not representable; such
// an element yields the zero DataType, which fails validation.
func List(elem DataType) DataType {
	if elem.id == TypeList || elem.id == TypeUserDefined || elem.id == 0 {
		return DataType{}
	}
	return DataType{id: TypeList, elem: elem.id}
}

// UserDefined returns a type known only by name. It is valid inside an info
// whose version declares the name.
func UserDefined(name string) DataType { return DataType{id: TypeUserDefined, name: name} }

// ParseDataType parses a type name such as "int64" or "list<string>".
// Unknown identifiers parse as user-defined types; whether they are accepted
// depends on the version of the owning info.
func ParseDataType(s string) (DataType, error) {
	s = strings.TrimSpace(s)
	if id, ok := typeIDs[s]; ok {
		return DataType{id: id}, nil
	}
	if m := listTypeRe.FindStringSubmatch(s); m != nil {
		id, ok := typeIDs[m[1]]
		if !ok {
			return DataType{}, errors.New(errors.ErrCodeInvalidArgument, "unsupported list element type %q", m[1])
		}
		return DataType{id: TypeList, elem: id}, nil
	}
	if typeNameRe.MatchString(s) && s != "list" {
		return UserDefined(s), nil
	}
	return DataType{}, errors.New(errors.ErrCodeInvalidArgument, "invalid data type %q", s)
}

// ID returns the type kind.
func (t DataType) ID() TypeID { return t.id }

// Elem returns the element type of a list, or the zero DataType.
func (t DataType) Elem() DataType {
	if t.id != TypeList {
		return DataType{}
	}
	return DataType{id: t.elem}
}

// IsZero reports whether t is the zero (invalid) type.
func (t DataType) IsZero() bool { return t.id == 0 }

// Equal reports whether two types are identical.
func (t DataType) Equal(o DataType) bool { return t == o }

// String returns the serialized type name.
func (t DataType) String() string {
	switch t.id {
	case 0:
		return ""
	case TypeList:
		return "list<" + typeNames[t.elem] + ">"
	case TypeUserDefined:
		return t.name
	}
	return typeNames[t.id]
}

// names returns every type name a version must accept for t.
func (t DataType) names() []string {
	switch t.id {
	case TypeList:
		return []string{"list", typeNames[t.elem]}
	case TypeUserDefined:
		return []string{t.name}
	}
	return []string{typeNames[t.id]}
}

// =============================================================================
// File Types
// =============================================================================

// FileType is the physical storage format of a chunk file.
type FileType int

const (
	// FileTypeCSV is row-oriented text.
	FileTypeCSV FileType = iota + 1
	// FileTypeORC is columnar binary (v1).
	FileTypeORC
	// FileTypeParquet is columnar binary (v2).
	FileTypeParquet
	// FileTypeJSON is line-delimited JSON.
	FileTypeJSON
)

var fileTypeNames = map[FileType]string{
	FileTypeCSV:     "csv",
	FileTypeORC:     "orc",
	FileTypeParquet: "parquet",
	FileTypeJSON:    "json",
}

// ParseFileType parses "csv", "orc", "parquet" or "json" (case-insensitive).
func ParseFileType(s string) (FileType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for ft, name := range fileTypeNames {
		if name == s {
			return ft, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown file type %q", s)
}

// Valid reports whether ft is one of the known file types.
func (ft FileType) Valid() bool {
	_, ok := fileTypeNames[ft]
	return ok
}

// String returns the serialized file type name.
func (ft FileType) String() string { return fileTypeNames[ft] }

// =============================================================================
// Adjacency List Types
// =============================================================================

// AdjListType is one of the four ways edges are grouped relative to their
// endpoints: aligned by source or destination, and optionally sorted.
type AdjListType int

const (
	UnorderedBySource AdjListType = iota + 1
	OrderedBySource
	UnorderedByDest
	OrderedByDest
)

// Values for the aligned_by field of serialized adjacency lists.
const (
	AlignedBySrc = "src"
	AlignedByDst = "dst"
)

var adjListTypeNames = map[AdjListType]string{
	UnorderedBySource: "unordered_by_source",
	OrderedBySource:   "ordered_by_source",
	UnorderedByDest:   "unordered_by_dest",
	OrderedByDest:     "ordered_by_dest",
}

// AdjListTypes returns all adjacency list types in a fixed order.
func AdjListTypes() []AdjListType {
	return []AdjListType{OrderedBySource, OrderedByDest, UnorderedBySource, UnorderedByDest}
}

// ParseAdjListType parses a type tag such as "ordered_by_source".
func ParseAdjListType(s string) (AdjListType, error) {
	for t, name := range adjListTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown adjacency list type %q", s)
}

// AdjListTypeOf returns the type for an (ordered, aligned_by) pair.
func AdjListTypeOf(ordered bool, alignedBy string) (AdjListType, error) {
	switch {
	case alignedBy == AlignedBySrc && ordered:
		return OrderedBySource, nil
	case alignedBy == AlignedBySrc:
		return UnorderedBySource, nil
	case alignedBy == AlignedByDst && ordered:
		return OrderedByDest, nil
	case alignedBy == AlignedByDst:
		return UnorderedByDest, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "aligned_by must be %q or %q, got %q", AlignedBySrc, AlignedByDst, alignedBy)
}

// Valid reports whether t is one of the four known types.
func (t AdjListType) Valid() bool {
	_, ok := adjListTypeNames[t]
	return ok
}

// String returns the type tag, which is also its default directory name.
func (t AdjListType) String() string { return adjListTypeNames[t] }

// IsOrdered reports whether edges are sorted within each anchor vertex, which
// is what makes offset chunks meaningful.
func (t AdjListType) IsOrdered() bool { return t == OrderedBySource || t == OrderedByDest }

// AlignedBy returns AlignedBySrc or AlignedByDst.
func (t AdjListType) AlignedBy() string {
	if t == UnorderedByDest || t == OrderedByDest {
		return AlignedByDst
	}
	return AlignedBySrc
}
