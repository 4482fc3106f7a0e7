package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in bytes.
	MaxQueryLength = 4096
	DefaultSize    = 10
	MaxSize        = 100
)

// Request is a validated search query.
type Request struct {
	query       string
	contentType document.ContentType
	size        int
}

// New validates search parameters. An empty contentType means no filter.
// Size falls back to DefaultSize and is clamped to MaxSize.
func New(query, contentType string, size int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("%w: missing 'q' parameter", domain.ErrInvalidQuery)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidQuery, MaxQueryLength)
	}

	var ct document.ContentType
	if contentType != "" {
		parsed, err := document.ParseContentType(contentType)
		if err != nil {
			return Request{}, err
		}
		ct = parsed
	}

	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Request{query: query, contentType: ct, size: size}, nil
}

// Query returns the query text as given.
func (r *Request) Query() string { return r.query }

// ContentType returns the category filter, empty when unfiltered.
func (r *Request) ContentType() document.ContentType { return r.contentType }

// HasContentType reports whether results are filtered by category.
func (r *Request) HasContentType() bool { return r.contentType != "" }

// Size returns the page size.
func (r *Request) Size() int { return r.size }
