package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds element IDs after prefixing.
const maxIDLength = 512

// ValidateID validates a node, container or prefix identifier.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No surrounding whitespace
//   - Maximum length of 512 bytes
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidFragment, "%s ID cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidFragment, "%s ID too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFragment, "%s ID %q contains control characters", kind, id)
		}
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidFragment, "%s ID %q has surrounding whitespace", kind, id)
	}
	return nil
}

// ValidatePath validates a snapshot or fragment file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	for _, part := range strings.Split(strings.ReplaceAll(path, "\\", "/"), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}
	return nil
}
