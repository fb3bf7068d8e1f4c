package usecase

import (
	"fmt"
	"strings"

	"github.com/cleanbite/backend/internal/domain"
)

// RuleEngine is the deterministic fallback classifier: a case-insensitive
// substring match of each ingredient against the preference's restricted
// terms. It is pure, never fails, and is always available, so it backs the
// primary classifier whenever that path cannot produce a valid verdict.
type RuleEngine struct {
	rules *domain.RestrictionRuleSet
}

// NewRuleEngine creates a rule engine over an immutable rule set
func NewRuleEngine(rules *domain.RestrictionRuleSet) *RuleEngine {
	return &RuleEngine{rules: rules}
}

// ruleMatch records one flagged ingredient and the restricted term (or
// custom restriction) that flagged it
type ruleMatch struct {
	ingredient string
	term       string
	custom     bool
}

// Classify evaluates the ingredient list against the preference's restricted
// terms, plus the custom restriction when preference is "other". Matches
// preserve ingredient order, so the first restricted ingredient on the label
// drives the primary reason. The same inputs always produce the same verdict.
//
// An unknown preference has no restricted terms and therefore always passes;
// that is documented behavior, not a bug.
func (e *RuleEngine) Classify(ingredients []string, preference domain.DietaryPreference, customRestriction string) *domain.ComplianceVerdict {
	var matches []ruleMatch

	terms := e.rules.Terms(preference)
	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				matches = append(matches, ruleMatch{ingredient: ingredient, term: term})
				break
			}
		}
	}

	// The custom restriction is matched the same way as a built-in term. An
	// ingredient already flagged above may appear again; each match is an
	// independent reason.
	if preference == domain.PreferenceOther && customRestriction != "" {
		custom := strings.ToLower(strings.TrimSpace(customRestriction))
		if custom != "" {
			for _, ingredient := range ingredients {
				if strings.Contains(strings.ToLower(ingredient), custom) {
					matches = append(matches, ruleMatch{ingredient: ingredient, term: custom, custom: true})
				}
			}
		}
	}

	if len(matches) == 0 {
		return &domain.ComplianceVerdict{
			Result:             domain.ResultPass,
			Confidence:         domain.ConfidenceMedium,
			Reasons:            []string{fmt.Sprintf("No obvious %s violation found in the ingredient list", e.label(preference, customRestriction))},
			FlaggedIngredients: []domain.FlaggedIngredient{},
		}
	}

	reasons := []string{
		fmt.Sprintf("Contains %s which is not %s compliant", matches[0].ingredient, e.label(preference, customRestriction)),
	}
	if len(matches) > 1 {
		reasons = append(reasons, fmt.Sprintf("%d ingredients may violate this restriction; verify ingredient sources", len(matches)))
	}

	flagged := make([]domain.FlaggedIngredient, 0, len(matches))
	for _, m := range matches {
		reason := fmt.Sprintf("%s is not suitable for a %s diet (contains %q)", m.ingredient, preference, m.term)
		if m.custom {
			reason = fmt.Sprintf("%s contains %q, which you asked to avoid", m.ingredient, m.term)
		}
		flagged = append(flagged, domain.FlaggedIngredient{
			Name:   m.ingredient,
			Level:  domain.FlagFail,
			Reason: reason,
		})
	}

	return &domain.ComplianceVerdict{
		Result:             domain.ResultFail,
		Confidence:         domain.ConfidenceMedium,
		Reasons:            reasons,
		FlaggedIngredients: flagged,
	}
}

// label names the restriction in human-readable reasons
func (e *RuleEngine) label(preference domain.DietaryPreference, customRestriction string) string {
	if preference == domain.PreferenceOther && customRestriction != "" {
		return fmt.Sprintf("%q-free", strings.ToLower(strings.TrimSpace(customRestriction)))
	}
	return string(preference)
}
