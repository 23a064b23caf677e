package ncosearch

import "github.com/kailas-cloud/ncosearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation      = domain.ErrValidation
	ErrInvalidRequest  = domain.ErrInvalidRequest
	ErrEmptyVocabulary = domain.ErrEmptyVocabulary
)

// ValidationError carries the offending row and column of a rejected ingest.
// Use errors.As() to extract it.
type ValidationError = domain.ValidationError
