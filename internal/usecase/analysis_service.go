package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleanbite/backend/internal/domain"
)

// analysisState tracks the pipeline stage for logging. Transitions are
// sequential: idle -> located -> tokenized -> classified -> done, with
// errored reachable from any stage.
type analysisState string

const (
	stateIdle       analysisState = "idle"
	stateLocated    analysisState = "located"
	stateTokenized  analysisState = "tokenized"
	stateClassified analysisState = "classified"
	stateDone       analysisState = "done"
	stateErrored    analysisState = "errored"
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// AnalysisService orchestrates the scan pipeline: normalize the raw text,
// locate the ingredient declaration, tokenize it, and classify the tokens.
// It is the only component aware of all stages; the classifier's internal
// primary/fallback choice is opaque to it.
type AnalysisService struct {
	cache              domain.CacheRepository
	classifier         *ComplianceClassifier
	cacheTTL           time.Duration
	enableDebugLogging bool
	log                zerolog.Logger
}

// NewAnalysisService creates the orchestrator with its dependencies. The
// cache may be nil, in which case every request runs the full pipeline.
func NewAnalysisService(cache domain.CacheRepository, classifier *ComplianceClassifier, config AnalysisServiceConfig, log zerolog.Logger) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &AnalysisService{
		cache:              cache,
		classifier:         classifier,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
		log:                log,
	}
}

// AnalyzeText runs the full pipeline over raw OCR text. It returns
// domain.ErrInvalidRequest for a missing preference and
// domain.ErrNoIngredientsFound when tokenization yields nothing; in the
// latter case classification is never invoked, so absence of ingredients
// fails loud instead of defaulting to a pass verdict.
func (s *AnalysisService) AnalyzeText(ctx context.Context, rawText string, preference domain.DietaryPreference, customRestriction string) (*domain.AnalysisResult, error) {
	if preference == "" {
		return nil, domain.ErrInvalidRequest
	}

	state := stateIdle
	normalized := NormalizeText(rawText)

	cacheKey := s.generateCacheKey(normalized, preference, customRestriction)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		s.debugLog(stateDone, "cache hit")
		return cached, nil
	}

	segment, language := LocateIngredients(normalized)
	state = stateLocated
	s.debugLog(state, fmt.Sprintf("locator=%s segment_length=%d", language, len(segment)))

	tokens := TokenizeIngredients(segment)
	state = stateTokenized
	s.debugLog(state, fmt.Sprintf("tokens=%d", len(tokens)))

	if len(tokens) == 0 {
		s.debugLog(stateErrored, "no ingredients recognized")
		return nil, domain.ErrNoIngredientsFound
	}

	verdict := s.classifier.Classify(ctx, tokens, preference, customRestriction)
	state = stateClassified
	s.debugLog(state, fmt.Sprintf("result=%s confidence=%s", verdict.Result, verdict.Confidence))

	result := &domain.AnalysisResult{
		Ingredients:       tokens,
		ComplianceVerdict: *verdict,
	}

	if err := s.setInCache(ctx, cacheKey, result); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache analysis result")
	}

	state = stateDone
	s.debugLog(state, "analysis complete")
	return result, nil
}

// debugLog emits a stage-transition log line when debug logging is enabled
func (s *AnalysisService) debugLog(state analysisState, detail string) {
	if s.enableDebugLogging {
		s.log.Debug().Str("state", string(state)).Msg(detail)
	}
}

// generateCacheKey derives a stable key from the normalized text and the
// restriction being checked. The raw text never appears in the key.
func (s *AnalysisService) generateCacheKey(normalized string, preference domain.DietaryPreference, customRestriction string) string {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%s", normalized, preference, customRestriction)))
	return fmt.Sprintf("analysis:%x", digest)
}

// getFromCache retrieves a previous analysis result. Cached values come back
// as generic JSON structures, so they are round-tripped into the typed form.
func (s *AnalysisService) getFromCache(ctx context.Context, key string) (*domain.AnalysisResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}
	var result domain.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &result, nil
}

// setInCache stores an analysis result
func (s *AnalysisService) setInCache(ctx context.Context, key string, result *domain.AnalysisResult) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, result, s.cacheTTL)
}
