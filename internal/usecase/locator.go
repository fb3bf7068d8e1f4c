package usecase

import (
	"regexp"
	"strings"
)

// locatorRule is one language-tagged pattern for finding the ingredient
// declaration. Rules are tried in order with first-match-wins semantics, so
// adding a language is a data change, not a code change.
type locatorRule struct {
	language string
	pattern  *regexp.Regexp // exactly one capture group: the located segment
}

// segmentTerminators end a captured ingredient segment: a sentence break or
// the start of another label section (nutrition table, allergy advice,
// net weight, storage instructions). A sentence break is a period followed
// by whitespace; a bare period would truncate at decimals like "1.5%".
const segmentTerminators = `\.\s|nutrition|nutri[cç][ioaã]|valeur|n[aä]hrwert|allerg|net\s+(?:wt|weight)|storage|best\s+before|conserv`

// declarationRule compiles a rule that anchors on an ingredient-list
// declaration keyword followed by a colon.
func declarationRule(language, keyword string) locatorRule {
	return locatorRule{
		language: language,
		pattern:  regexp.MustCompile(`(?i)` + keyword + `\s*[:：]\s*(.+?)\s*(?:` + segmentTerminators + `|$)`),
	}
}

// locatorRules are tried in fixed priority order. The generic rule is the
// last resort: it has no declaration keyword and instead anchors on common
// food-ingredient words, trading precision for recall.
var locatorRules = []locatorRule{
	declarationRule("en", `ingredients`),
	declarationRule("fr", `ingr[eé]dients`),
	declarationRule("ar", `(?:ال)?مكونات`),
	declarationRule("es", `ingredientes`),
	declarationRule("de", `zutaten`),
	declarationRule("it", `ingredienti`),
	{
		language: "generic",
		pattern: regexp.MustCompile(
			`(?i)\b((?:water|sugar|salt|milk|wheat|flour|oil|syrup|cocoa|starch|yeast)\b.*?)\s*(?:` + segmentTerminators + `|$)`),
	},
}

// minHeuristicLength is the shortest text the comma heuristic will accept
// as "looks like an ingredient list".
const minHeuristicLength = 20

// LocateIngredients finds the substring of normalized text most likely to be
// the ingredient declaration. It returns the located segment and the tag of
// the rule that produced it ("heuristic" for the comma fallback,
// "fulltext" when the entire input is used verbatim).
//
// Only one segment is ever produced: the first rule whose pattern matches
// with a non-empty capture wins.
func LocateIngredients(text string) (string, string) {
	for _, rule := range locatorRules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		segment := trimSegment(m[1])
		if segment != "" {
			return segment, rule.language
		}
	}

	// No pattern matched. Input arrives normalized, so there are no line
	// breaks left to split on; the heuristic inspects the whole text and
	// accepts it when a comma plus enough length make it plausibly a list.
	trimmed := strings.TrimSpace(text)
	if strings.Contains(trimmed, ",") && len(trimmed) > minHeuristicLength {
		return trimSegment(trimmed), "heuristic"
	}

	// Worst case: hand the whole text to the tokenizer and let its noise
	// filter sort it out. Maximizes recall over precision.
	return trimSegment(text), "fulltext"
}

// trimSegment strips surrounding whitespace and trailing sentence
// punctuation from a located segment.
func trimSegment(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ". ")
}
