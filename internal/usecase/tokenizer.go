package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxIngredients caps the token list to bound downstream classification cost
const MaxIngredients = 50

// Token length bounds after trimming, in runes (exclusive). Byte counts
// would misjudge non-ASCII names: a single Arabic letter is two bytes, and
// a legitimate accented name can exceed 100 bytes well under 100 characters.
const (
	minTokenLength = 1
	maxTokenLength = 100
)

// Package-level compiled regex patterns for performance
var (
	// Separator characters covering comma, semicolon, and their Arabic
	// equivalents (U+060C, U+061B)
	separatorPattern = regexp.MustCompile(`[,;\x{060C}\x{061B}]`)

	// Leading ordinal/number prefixes like "1. " or "2) "
	ordinalPrefixPattern = regexp.MustCompile(`^\s*\d+\s*[.)]\s*`)

	// Parenthesized and bracketed content, e.g. "Lecithin (from soy)"
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)

	// Pure numeric/percentage artifacts like "2", "1.5", "20 %"
	numericArtifactPattern = regexp.MustCompile(`^[\d.\s]+%?$`)

	// Leftover bracket/punctuation fragments like ")" or "[]"
	bracketArtifactPattern = regexp.MustCompile(`^[\[\](){}<>.*/\\|_\-+&:!?'"` + "`" + `]+$`)

	// Label boilerplate that never names an ingredient: allergen advisories,
	// weight statements, date marks, URLs
	boilerplatePhrasePattern = regexp.MustCompile(
		`(?i)\b(?:may\s+contain|net\s+w(?:t|eight)|best\s+before|use\s+by|exp(?:iry|\.)?\s+date|www\.|https?:)|\.com\b`)
)

// boilerplateTokens are connective or advisory words that survive splitting
// but never name an ingredient on their own
var boilerplateTokens = map[string]bool{
	"and":         true,
	"or":          true,
	"with":        true,
	"contains":    true,
	"may contain": true,
	"allergen":    true,
	"warning":     true,
	"note":        true,
	"see":         true,
	"www":         true,
	"http":        true,
	".com":        true,
}

// TokenizeIngredients splits a located segment into discrete ingredient
// tokens, preserving order of appearance. Candidates are trimmed, stripped
// of ordinal prefixes and parenthesized content, and dropped when they are
// too short, too long, numeric artifacts, bracket fragments, or known
// boilerplate. The result is capped at MaxIngredients entries.
//
// An empty result is valid and meaningful: it signals that no ingredients
// were recognized, which callers surface as an error rather than a pass.
func TokenizeIngredients(segment string) []string {
	candidates := separatorPattern.Split(segment, -1)

	var tokens []string
	for _, candidate := range candidates {
		token := cleanCandidate(candidate)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
		if len(tokens) == MaxIngredients {
			break
		}
	}

	return tokens
}

// cleanCandidate trims and filters one split candidate, returning the empty
// string when the candidate is noise rather than an ingredient name.
func cleanCandidate(candidate string) string {
	token := strings.TrimSpace(candidate)
	token = ordinalPrefixPattern.ReplaceAllString(token, "")
	token = parentheticalPattern.ReplaceAllString(token, "")
	token = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(token), "."))

	if runes := utf8.RuneCountInString(token); runes <= minTokenLength || runes >= maxTokenLength {
		return ""
	}
	if numericArtifactPattern.MatchString(token) {
		return ""
	}
	if bracketArtifactPattern.MatchString(token) {
		return ""
	}
	if boilerplateTokens[strings.ToLower(token)] {
		return ""
	}
	if boilerplatePhrasePattern.MatchString(token) {
		return ""
	}

	return token
}
