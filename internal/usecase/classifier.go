package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleanbite/backend/internal/domain"
)

// ruleDescriptions are the short static rule explanations supplied to the
// reasoning service per built-in preference
var ruleDescriptions = map[domain.DietaryPreference]string{
	domain.PreferenceHalal:      "Halal: no pork or pork derivatives, no alcohol, no gelatin or enzymes from non-halal-slaughtered animals.",
	domain.PreferenceKosher:     "Kosher: no pork, no shellfish, no mixing of milk and meat, no gelatin from non-kosher animals.",
	domain.PreferenceVegan:      "Vegan: no animal products of any kind, including milk, eggs, honey, gelatin, whey, and butter.",
	domain.PreferenceVegetarian: "Vegetarian: no meat, fish, or poultry, including derivatives such as meat broth and animal rennet.",
	domain.PreferenceGlutenFree: "Gluten-free: no wheat, barley, rye, or other gluten-containing grains and their derivatives.",
	domain.PreferenceDairyFree:  "Dairy-free: no milk or milk derivatives, including butter, cheese, whey, casein, and lactose.",
}

// systemPrompt frames the reasoning service as an ingredient-compliance
// analyst and pins down the expected output shape
const systemPrompt = `You are an expert in dietary ingredient compliance. You analyze food ingredient lists against a dietary restriction and respond with ONLY a JSON object in this exact shape:

{
  "result": "pass" or "fail",
  "confidence": "high", "medium" or "low",
  "reasons": ["short human-readable explanation", ...],
  "flaggedIngredients": [{"name": "...", "level": "fail" | "caution" | "pass", "reason": "..."}]
}

Mark an ingredient "fail" only when it clearly violates the restriction, "caution" when its origin is uncertain (for example unspecified gelatin or mono- and diglycerides), and "pass" otherwise. The overall result is "fail" if and only if at least one ingredient is marked "fail". Return valid JSON with no trailing commas and no text outside the object.`

// ComplianceClassifier produces a verdict for an ingredient list using a
// two-tier strategy: a primary reasoning-service path, and the deterministic
// RuleEngine whenever the primary path fails or returns an invalid payload.
// Both paths produce the same verdict shape, so callers never observe which
// one answered.
type ComplianceClassifier struct {
	reasoner domain.ReasoningClient
	engine   *RuleEngine
	log      zerolog.Logger
}

// NewComplianceClassifier creates a classifier. A nil reasoner is allowed
// and pins every request to the fallback engine.
func NewComplianceClassifier(reasoner domain.ReasoningClient, engine *RuleEngine, log zerolog.Logger) *ComplianceClassifier {
	return &ComplianceClassifier{
		reasoner: reasoner,
		engine:   engine,
		log:      log,
	}
}

// primaryOutcome is the tagged result of the primary classification path:
// either a validated verdict, or a reason the fallback engine must answer
// instead. Making the fallback trigger explicit keeps the branch visible
// and independently testable.
type primaryOutcome struct {
	verdict        *domain.ComplianceVerdict
	fallbackReason string
}

// Classify returns a verdict for the ingredient list. The primary path is
// all-or-nothing: any transport error, timeout, parse failure, or invalid
// payload discards it entirely in favor of the rule engine.
func (c *ComplianceClassifier) Classify(ctx context.Context, ingredients []string, preference domain.DietaryPreference, customRestriction string) *domain.ComplianceVerdict {
	outcome := c.tryPrimary(ctx, ingredients, preference, customRestriction)
	if outcome.fallbackReason != "" {
		c.log.Warn().
			Str("preference", string(preference)).
			Str("reason", outcome.fallbackReason).
			Msg("Primary classifier unavailable, using rule engine")
		return c.engine.Classify(ingredients, preference, customRestriction)
	}
	return outcome.verdict
}

// tryPrimary runs the reasoning-service path and validates its response
func (c *ComplianceClassifier) tryPrimary(ctx context.Context, ingredients []string, preference domain.DietaryPreference, customRestriction string) primaryOutcome {
	if c.reasoner == nil {
		return primaryOutcome{fallbackReason: "reasoning service not configured"}
	}

	raw, err := c.reasoner.Complete(ctx, systemPrompt, buildUserPrompt(ingredients, preference, customRestriction))
	if err != nil {
		return primaryOutcome{fallbackReason: fmt.Sprintf("completion failed: %v", err)}
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		return primaryOutcome{fallbackReason: fmt.Sprintf("invalid response: %v", err)}
	}

	return primaryOutcome{verdict: verdict}
}

// buildUserPrompt assembles the rule description and ingredient list into
// the analysis request
func buildUserPrompt(ingredients []string, preference domain.DietaryPreference, customRestriction string) string {
	rule, ok := ruleDescriptions[preference]
	if !ok {
		rule = fmt.Sprintf("Custom restriction: avoid %q and any derivative of it.", strings.TrimSpace(customRestriction))
	}

	var b strings.Builder
	b.WriteString("Dietary restriction:\n")
	b.WriteString(rule)
	b.WriteString("\n\nIngredient list:\n")
	for _, ingredient := range ingredients {
		b.WriteString("- ")
		b.WriteString(ingredient)
		b.WriteString("\n")
	}
	b.WriteString("\nAnalyze each ingredient against the restriction and return the JSON verdict.")
	return b.String()
}

// parseVerdict extracts and validates a verdict from free-form model output.
// The model is expected but not guaranteed to return bare JSON, so the first
// balanced object in the text is extracted rather than assuming the whole
// response parses.
func parseVerdict(raw string) (*domain.ComplianceVerdict, error) {
	object, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var verdict domain.ComplianceVerdict
	if err := json.Unmarshal([]byte(object), &verdict); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidVerdict, err)
	}

	verdict.Result = domain.Result(strings.ToLower(string(verdict.Result)))
	verdict.Confidence = domain.Confidence(strings.ToLower(string(verdict.Confidence)))
	for i := range verdict.FlaggedIngredients {
		verdict.FlaggedIngredients[i].Level = domain.FlagLevel(strings.ToLower(string(verdict.FlaggedIngredients[i].Level)))
	}

	if err := validateVerdict(&verdict); err != nil {
		return nil, err
	}
	if verdict.FlaggedIngredients == nil {
		verdict.FlaggedIngredients = []domain.FlaggedIngredient{}
	}
	return &verdict, nil
}

// validateVerdict enforces the minimum structure the pipeline promises its
// callers: a recognized result and confidence, at least one reason, and the
// fail-iff-fail-flag invariant.
func validateVerdict(v *domain.ComplianceVerdict) error {
	if v.Result != domain.ResultPass && v.Result != domain.ResultFail {
		return fmt.Errorf("%w: unrecognized result %q", domain.ErrInvalidVerdict, v.Result)
	}
	if v.Confidence != domain.ConfidenceHigh && v.Confidence != domain.ConfidenceMedium && v.Confidence != domain.ConfidenceLow {
		return fmt.Errorf("%w: unrecognized confidence %q", domain.ErrInvalidVerdict, v.Confidence)
	}
	if len(v.Reasons) == 0 {
		return fmt.Errorf("%w: empty reasons", domain.ErrInvalidVerdict)
	}

	hasFailFlag := false
	for _, f := range v.FlaggedIngredients {
		switch f.Level {
		case domain.FlagFail:
			hasFailFlag = true
		case domain.FlagCaution, domain.FlagPass:
		default:
			return fmt.Errorf("%w: unrecognized flag level %q", domain.ErrInvalidVerdict, f.Level)
		}
	}
	if (v.Result == domain.ResultFail) != hasFailFlag {
		return fmt.Errorf("%w: result %q inconsistent with flagged ingredients", domain.ErrInvalidVerdict, v.Result)
	}
	return nil
}

// extractJSONObject returns the first balanced top-level {...} block in the
// text, skipping braces inside string literals. Best effort: a model that
// emits prose around its JSON still parses, one that emits no object at all
// is rejected.
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON object in response", domain.ErrInvalidVerdict)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced JSON object in response", domain.ErrInvalidVerdict)
}
