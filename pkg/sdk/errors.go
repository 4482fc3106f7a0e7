package docsearch

import "github.com/kailas-cloud/docsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrInvalidContentType = domain.ErrInvalidContentType
	ErrInvalidDocument    = domain.ErrInvalidDocument
	ErrBackend            = domain.ErrBackend
)

// IsClientError reports whether err was caused by invalid input rather than the engine.
func IsClientError(err error) bool {
	return domain.IsClientError(err)
}
