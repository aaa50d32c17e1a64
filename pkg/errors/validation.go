package errors

import (
	"strings"
	"unicode"
)

// ValidateEntityName validates a display name for an entity.
//
// The rules are intentionally conservative:
//   - No control characters
//   - Maximum length of 128 characters
//
// An empty name is allowed: display falls back to the entity id.
func ValidateEntityName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "entity name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entity name contains control characters")
		}
	}
	return nil
}

// ValidateColor validates a CSS-style hex color of the form #rgb or
// #rrggbb. An empty color is allowed and means "default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !strings.HasPrefix(color, "#") {
		return New(ErrCodeInvalidColor, "color must start with '#': %q", color)
	}
	hex := color[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return New(ErrCodeInvalidColor, "color must be #rgb or #rrggbb: %q", color)
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return New(ErrCodeInvalidColor, "color contains non-hex digit: %q", color)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}

// ValidateScenePath validates a scene file path for safety: it must be a
// non-empty path without null bytes. Relative paths are allowed.
func ValidateScenePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "scene path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "scene path contains a null byte")
	}
	return nil
}
