package info

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/graphar/pkg/errors"
)

// VersionNamespace is the only namespace recognized in version tags.
const VersionNamespace = "gar"

// builtinTypes lists the data type names each major version understands.
var builtinTypes = map[int][]string{
	1: {"bool", "int32", "int64", "float", "double", "string", "date", "timestamp", "list"},
}

// versionRe matches "<namespace>/v<major>" with an optional user type list,
// e.g. "gar/v1" or "gar/v1 (geo, point)".
var versionRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)/v(\d+)\s*(?:\(([^()]*)\))?$`)

// Version is a parsed format version tag.
// The zero value is not usable; obtain one from [ParseVersion] or [NewVersion].
type Version struct {
	major     int
	userTypes []string
}

// NewVersion returns the version gar/v<major> with optional user-defined
// type names. Unsupported majors fail with INVALID_VERSION.
func NewVersion(major int, userTypes ...string) (*Version, error) {
	if _, ok := builtinTypes[major]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "unsupported version %s/v%d", VersionNamespace, major)
	}
	types := make([]string, 0, len(userTypes))
	for _, t := range userTypes {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, errors.New(errors.ErrCodeInvalidVersion, "empty user-defined type name")
		}
		if slices.Contains(types, t) {
			return nil, errors.New(errors.ErrCodeInvalidVersion, "duplicate user-defined type %q", t)
		}
		types = append(types, t)
	}
	return &Version{major: major, userTypes: types}, nil
}

// ParseVersion parses a version tag such as "gar/v1" or "gar/v1 (geo,point)".
// Malformed tags, unknown namespaces and unsupported majors fail with
// INVALID_VERSION.
func ParseVersion(s string) (*Version, error) {
	m := versionRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "malformed version %q", s)
	}
	if m[1] != VersionNamespace {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "unknown version namespace %q", m[1])
	}
	major, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidVersion, err, "version %q", s)
	}
	var userTypes []string
	if strings.TrimSpace(m[3]) != "" {
		userTypes = strings.Split(m[3], ",")
	}
	return NewVersion(major, userTypes...)
}

// MustParseVersion is like [ParseVersion] but panics on error.
// It is intended for tests and package-level variables.
func MustParseVersion(s string) *Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Major returns the major version number.
func (v *Version) Major() int { return v.major }

// UserDefinedTypes returns a copy of the declared user-defined type names.
func (v *Version) UserDefinedTypes() []string { return slices.Clone(v.userTypes) }

// String returns the canonical tag, e.g. "gar/v1" or "gar/v1 (geo,point)".
func (v *Version) String() string {
	s := fmt.Sprintf("%s/v%d", VersionNamespace, v.major)
	if len(v.userTypes) > 0 {
		s += " (" + strings.Join(v.userTypes, ",") + ")"
	}
	return s
}

// Equal reports whether two versions have the same major and user types.
// User type order is irrelevant.
func (v *Version) Equal(o *Version) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.Compare(o) == 0
}

// Compare orders versions by major, then by their sorted user type lists.
func (v *Version) Compare(o *Version) int {
	if c := cmp.Compare(v.major, o.major); c != 0 {
		return c
	}
	a, b := slices.Sorted(slices.Values(v.userTypes)), slices.Sorted(slices.Values(o.userTypes))
	return slices.Compare(a, b)
}

// CheckType reports whether the version accepts a data type name.
// Built-in names depend on the major version; user-defined names are those
// listed in the tag.
func (v *Version) CheckType(name string) bool {
	return slices.Contains(builtinTypes[v.major], name) || slices.Contains(v.userTypes, name)
}
