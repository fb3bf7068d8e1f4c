package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TextExtractor defines the interface for the OCR collaborator.
// Implementations must distinguish extraction failure (non-nil error) from
// recognized empty text (empty Text, nil error).
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (*ExtractedText, error)
}

// ReasoningClient defines the interface for the external reasoning service
// used by the primary classification path. Complete returns the raw model
// output, which is expected but not guaranteed to contain one JSON object.
type ReasoningClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
