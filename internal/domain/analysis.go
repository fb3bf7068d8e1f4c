package domain

// Result is the overall pass/fail outcome of a compliance check
type Result string

const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
)

// Confidence is the coarse reliability grade attached to a verdict
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// FlagLevel is the per-ingredient severity level
type FlagLevel string

const (
	FlagFail    FlagLevel = "fail"
	FlagCaution FlagLevel = "caution"
	FlagPass    FlagLevel = "pass"
)

// FlaggedIngredient marks a single ingredient with a severity level and reason
type FlaggedIngredient struct {
	Name   string    `json:"name"`
	Level  FlagLevel `json:"level"`
	Reason string    `json:"reason"`
}

// ComplianceVerdict is the output of classifying an ingredient list against
// a dietary preference. Invariant: Result == fail iff FlaggedIngredients
// contains at least one entry with Level == fail.
type ComplianceVerdict struct {
	Result             Result              `json:"result"`
	Confidence         Confidence          `json:"confidence"`
	Reasons            []string            `json:"reasons"`
	FlaggedIngredients []FlaggedIngredient `json:"flaggedIngredients"`
}

// AnalyzeRequest is the inbound request for a label scan.
// Exactly one of Image (base64, data-URL prefix tolerated) or
// IngredientsText must be provided.
type AnalyzeRequest struct {
	Image             string `json:"image,omitempty"`
	IngredientsText   string `json:"ingredientsText,omitempty"`
	Preference        string `json:"preference" binding:"required"`
	CustomRestriction string `json:"customRestriction,omitempty"`
}

// AnalysisResult is the success response payload: the recognized ingredient
// list plus the flattened verdict fields.
type AnalysisResult struct {
	Ingredients []string `json:"ingredients"`
	ComplianceVerdict
}

// ExtractedText is the best-effort output of the OCR collaborator.
// Empty Text with a nil error means "recognized empty text", which is
// distinct from an extraction failure.
type ExtractedText struct {
	Text       string   `json:"text"`
	Confidence float32  `json:"confidence"`
	Languages  []string `json:"languages,omitempty"`
}
