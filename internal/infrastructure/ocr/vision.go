// Package ocr implements the OCR collaborator on top of the Google Cloud
// Vision API. The caller gets best-effort raw text with no guaranteed
// structure; recognizing no text at all is a success, not an error.
package ocr

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/cleanbite/backend/internal/domain"
	"github.com/cleanbite/backend/internal/logger"
)

// DefaultMaxImageBytes caps uploads at 10MB, well under the Vision API's
// 20MB request limit
const DefaultMaxImageBytes = 10 * 1024 * 1024

// VisionExtractor implements domain.TextExtractor using document text
// detection, which handles the dense multi-line print typical of ingredient
// labels better than plain text detection.
type VisionExtractor struct {
	client        *vision.ImageAnnotatorClient
	maxImageBytes int
	log           zerolog.Logger
}

// NewVisionExtractor creates an extractor. With an empty credentialsFile the
// client falls back to application default credentials.
func NewVisionExtractor(ctx context.Context, credentialsFile string, maxImageBytes int) (*VisionExtractor, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}

	return &VisionExtractor{
		client:        client,
		maxImageBytes: maxImageBytes,
		log:           logger.WithComponent("ocr"),
	}, nil
}

// ExtractText runs document text detection over the image bytes. A non-nil
// error always means the extraction itself failed; an empty Text with nil
// error means the image was processed but contained no recognizable text.
func (e *VisionExtractor) ExtractText(ctx context.Context, image []byte) (*domain.ExtractedText, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrOCRFailure)
	}
	if len(image) > e.maxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", domain.ErrImageTooLarge, len(image), e.maxImageBytes)
	}

	annotation, err := e.client.DetectDocumentText(ctx, &visionpb.Image{Content: image}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}

	if annotation == nil {
		// Processed fine, nothing legible in the frame
		return &domain.ExtractedText{}, nil
	}

	result := &domain.ExtractedText{
		Text:       annotation.GetText(),
		Confidence: averagePageConfidence(annotation),
		Languages:  detectedLanguages(annotation),
	}

	e.log.Debug().
		Int("text_length", len(result.Text)).
		Float32("confidence", result.Confidence).
		Strs("languages", result.Languages).
		Msg("Text extraction completed")

	return result, nil
}

// Close releases the underlying API client
func (e *VisionExtractor) Close() error {
	return e.client.Close()
}

// averagePageConfidence averages detection confidence across all pages
func averagePageConfidence(annotation *visionpb.TextAnnotation) float32 {
	pages := annotation.GetPages()
	if len(pages) == 0 {
		return 0
	}
	var total float32
	for _, page := range pages {
		total += page.GetConfidence()
	}
	return total / float32(len(pages))
}

// detectedLanguages collects unique detected language codes in page order
func detectedLanguages(annotation *visionpb.TextAnnotation) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, page := range annotation.GetPages() {
		for _, lang := range page.GetProperty().GetDetectedLanguages() {
			code := lang.GetLanguageCode()
			if code != "" && !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes
}
