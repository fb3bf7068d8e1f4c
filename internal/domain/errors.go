package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoIngredientsFound is returned when tokenization yields zero ingredients
	ErrNoIngredientsFound = errors.New("no ingredients recognized in text")

	// ErrOCRFailure is returned when the OCR collaborator fails outright,
	// as opposed to successfully recognizing empty text
	ErrOCRFailure = errors.New("text extraction failed")

	// ErrImageTooLarge is returned when an uploaded image exceeds the size limit
	ErrImageTooLarge = errors.New("image exceeds size limit")

	// ErrReasoningUnavailable is returned when the reasoning service call
	// fails or times out
	ErrReasoningUnavailable = errors.New("reasoning service unavailable")

	// ErrInvalidVerdict is returned when the reasoning service response cannot
	// be parsed into a structurally valid verdict
	ErrInvalidVerdict = errors.New("invalid verdict payload")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
