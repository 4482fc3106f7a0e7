package domain

import "errors"

var (
	// ErrInvalidQuery signals a missing, blank or oversized query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidContentType signals a content type outside the known set.
	ErrInvalidContentType = errors.New("invalid content type")
	// ErrInvalidDocument signals a document that cannot be indexed.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrBackend signals a search engine failure (unreachable, rejected, malformed reply).
	ErrBackend = errors.New("search backend error")
)

// IsClientError reports whether err was caused by caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, ErrInvalidContentType) ||
		errors.Is(err, ErrInvalidDocument)
}
