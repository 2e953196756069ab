package errors

import (
	"strings"
	"unicode"
)

// maxFilenameLength bounds derived download names.
const maxFilenameLength = 128

// ValidateFilename validates an output base name for safety.
// It ensures the name is a simple basename without path components.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden files
//   - Maximum length of 128 characters
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidPath, "filename too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "filename cannot contain path traversal sequences (..)")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	return nil
}

// ValidateText checks text submitted through the HTTP API.
// Text is bounded and must not carry control characters other than tab.
func ValidateText(text string, maxLen int) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "text cannot be empty").WithField("text")
	}
	if maxLen > 0 && len(text) > maxLen {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", maxLen).WithField("text")
	}
	for _, r := range text {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "text contains invalid control characters").WithField("text")
		}
	}
	return nil
}
