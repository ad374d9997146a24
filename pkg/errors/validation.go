package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a user supplied output file path.
// An empty path means standard output and is accepted.
//
// Validation rules:
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (no trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" || path == "-" {
		return nil
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// ValidateModelPath validates an input model path before it is opened.
func ValidateModelPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "model file path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}

var hexColorRegex = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateHexColor validates a #rgb, #rrggbb or #rrggbbaa color string.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", s)
	}
	return nil
}

// identifierRegex matches identifiers accepted for layer and model names.
var identifierRegex = regexp.MustCompile(`^[^,;!\n\t]+$`)

// ValidateIdentifier validates an object identifier. Identifiers must be
// non-empty, at most 100 characters and free of separators.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > 100 {
		return New(ErrCodeInvalidInput, "identifier %q too long (max 100 characters)", id)
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "identifier %q contains invalid characters", id)
	}
	return nil
}
