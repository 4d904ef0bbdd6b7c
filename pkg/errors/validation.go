package errors

import (
	"strings"
	"unicode"
)

// ValidateName validates a label or property name.
// Names become directory tokens in the archive layout, so they must be safe
// path components.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidArgument, "%s cannot be empty", kind)
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidArgument, "%s too long (max 256 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "%s contains invalid control characters", kind)
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidArgument, "%s cannot contain path separators: %q", kind, name)
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidArgument, "%s cannot be %q", kind, name)
	}

	return nil
}

// ValidatePrefix validates a relative path prefix of an info object.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Empty prefix is allowed (entity data lives at the archive root)
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//   - Must end with "/" when non-empty
//
// Absolute prefixes and URIs are allowed for graph-level prefixes; use
// [ValidatePath] for entity prefixes that must stay relative.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}

	const maxPathLength = 500
	if len(prefix) > maxPathLength {
		return New(ErrCodeInvalidPath, "prefix too long (max %d characters)", maxPathLength)
	}

	for _, r := range prefix {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "prefix contains invalid characters")
		}
	}

	for _, seg := range strings.Split(prefix, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "prefix cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(prefix, "\\") {
		return New(ErrCodeInvalidPath, "prefix cannot contain backslashes")
	}

	if !strings.HasSuffix(prefix, "/") {
		return New(ErrCodeInvalidPath, "prefix must end with '/': %q", prefix)
	}

	return nil
}

// ValidatePath validates a relative entity prefix.
// It applies [ValidatePrefix] and additionally rejects absolute paths.
func ValidatePath(path string) error {
	if err := ValidatePrefix(path); err != nil {
		return err
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	return nil
}
