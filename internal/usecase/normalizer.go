package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Matches ASCII control characters, including line and page breaks
	controlCharPattern = regexp.MustCompile(`[\x00-\x1f\x7f]`)

	// Multiple spaces cleanup
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
)

// NormalizeText cleans raw OCR output before pattern search: control
// characters and line breaks become spaces, whitespace runs collapse to a
// single space, and the ends are trimmed. Normalization is idempotent and
// has no failure mode; empty input yields empty output.
func NormalizeText(raw string) string {
	cleaned := controlCharPattern.ReplaceAllString(raw, " ")
	cleaned = whitespaceRunPattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
