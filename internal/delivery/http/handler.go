package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cleanbite/backend/internal/domain"
	"github.com/cleanbite/backend/internal/logger"
	"github.com/cleanbite/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis  *usecase.AnalysisService
	extractor domain.TextExtractor
	log       zerolog.Logger
}

// NewHandler creates a new HTTP handler. The extractor may be nil when OCR
// is not configured; image requests are then rejected with a clear message.
func NewHandler(analysis *usecase.AnalysisService, extractor domain.TextExtractor) *Handler {
	return &Handler{
		analysis:  analysis,
		extractor: extractor,
		log:       logger.WithComponent("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cleanbite-backend",
		"version": "1.0.0",
	})
}

// Analyze handles a label scan: OCR the image if no text was supplied, then
// run the compliance pipeline. Error responses carry only {"error": msg}.
func (h *Handler) Analyze(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: preference and one of image or ingredientsText"})
		return
	}

	if req.Image == "" && req.IngredientsText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: image or ingredientsText"})
		return
	}

	preference := domain.DietaryPreference(strings.ToLower(strings.TrimSpace(req.Preference)))
	if !preference.IsKnown() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown dietary preference"})
		return
	}

	// ingredientsText wins when both are supplied; no point paying for a
	// second extraction of the same label
	rawText := req.IngredientsText
	if rawText == "" {
		text, ok := h.extractFromImage(c, req.Image)
		if !ok {
			return
		}
		rawText = text
	}

	result, err := h.analysis.AnalyzeText(c.Request.Context(), rawText, preference, req.CustomRestriction)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// extractFromImage decodes the base64 payload and runs OCR. It writes the
// error response itself and reports success through the second return value.
func (h *Handler) extractFromImage(c *gin.Context, image string) (string, bool) {
	if h.extractor == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image analysis is not available; submit ingredientsText instead"})
		return "", false
	}

	imageBytes, err := DecodeImagePayload(image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is not valid base64 data"})
		return "", false
	}

	extracted, err := h.extractor.ExtractText(c.Request.Context(), imageBytes)
	if err != nil {
		if errors.Is(err, domain.ErrImageTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is too large"})
			return "", false
		}
		h.log.Error().Err(err).Msg("OCR extraction failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not read text from the image. Please try a clearer photo."})
		return "", false
	}

	return extracted.Text, true
}

// writeAnalysisError maps pipeline errors to user-visible responses without
// leaking internal detail
func (h *Handler) writeAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoIngredientsFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No ingredients found. Retake the photo with the ingredient list clearly visible."})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: preference"})
	default:
		h.log.Error().Err(err).Msg("Analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during analysis. Please try again."})
	}
}

// DecodeImagePayload decodes a base64 image, tolerating the data-URL prefix
// that browser canvas exports produce ("data:image/jpeg;base64,...").
func DecodeImagePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.IndexByte(payload, ','); idx >= 0 {
			payload = payload[idx+1:]
		}
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
}
