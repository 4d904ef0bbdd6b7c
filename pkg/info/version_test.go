package info

import (
	"testing"

	"github.com/matzehuels/graphar/pkg/errors"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "gar/v1", want: "gar/v1"},
		{in: "  gar/v1  ", want: "gar/v1"},
		{in: "gar/v1 (geo, point)", want: "gar/v1 (geo,point)"},
		{in: "gar/v1()", want: "gar/v1"},
		{in: "gar/v2", wantErr: true},
		{in: "gar/v0", wantErr: true},
		{in: "foo/v1", wantErr: true},
		{in: "garv1", wantErr: true},
		{in: "gar/1", wantErr: true},
		{in: "", wantErr: true},
		{in: "gar/v1 (geo,geo)", wantErr: true},
		{in: "gar/v1 (geo,)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseVersion(tt.in)
			if tt.wantErr {
				wantCode(t, err, errors.ErrCodeInvalidVersion)
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) error: %v", tt.in, err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if v.Major() != 1 {
				t.Errorf("Major() = %d, want 1", v.Major())
			}
		})
	}
}

func TestVersionCheckType(t *testing.T) {
	plain := MustParseVersion("gar/v1")
	geo := MustParseVersion("gar/v1 (geo)")

	for _, name := range []string{"bool", "int32", "int64", "float", "double", "string", "date", "timestamp", "list"} {
		if !plain.CheckType(name) {
			t.Errorf("gar/v1 should accept %q", name)
		}
	}
	if plain.CheckType("geo") {
		t.Error("gar/v1 should not accept geo")
	}
	if !geo.CheckType("geo") {
		t.Error("gar/v1 (geo) should accept geo")
	}
}

func TestVersionEqualAndCompare(t *testing.T) {
	a := MustParseVersion("gar/v1 (a,b)")
	b := MustParseVersion("gar/v1 (b,a)")
	plain := MustParseVersion("gar/v1")

	if !a.Equal(b) {
		t.Error("user type order should not matter")
	}
	if a.Equal(plain) {
		t.Error("versions with different user types should differ")
	}
	if got := plain.Compare(a); got >= 0 {
		t.Errorf("Compare() = %d, want < 0", got)
	}
	var nilVersion *Version
	if !nilVersion.Equal(nil) || nilVersion.Equal(plain) {
		t.Error("nil versions are only equal to nil")
	}
}

func TestNewVersion(t *testing.T) {
	v, err := NewVersion(1, "geo")
	if err != nil {
		t.Fatalf("NewVersion() error: %v", err)
	}
	if got := v.UserDefinedTypes(); len(got) != 1 || got[0] != "geo" {
		t.Errorf("UserDefinedTypes() = %v", got)
	}
	_, err = NewVersion(7)
	wantCode(t, err, errors.ErrCodeInvalidVersion)
}
