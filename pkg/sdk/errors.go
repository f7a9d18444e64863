package stranalyzer

import "github.com/kailas-cloud/stranalyzer/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrStringNotFound
	ErrAlreadyExists = domain.ErrAlreadyExists
	ErrInvalidValue  = domain.ErrInvalidValue
	ErrCorruptEntry  = domain.ErrCorruptEntry
)
