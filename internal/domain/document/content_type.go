package document

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// ContentType is the document category, matched exactly.
type ContentType string

// Known content types.
const (
	News     ContentType = "news"
	Tutorial ContentType = "tutorial"
	Review   ContentType = "review"
	Report   ContentType = "report"
)

// ContentTypes lists every known content type.
func ContentTypes() []ContentType {
	return []ContentType{News, Tutorial, Review, Report}
}

// IsValid checks if the content type is one of the known values.
func (c ContentType) IsValid() bool {
	return c == News || c == Tutorial || c == Review || c == Report
}

// ParseContentType validates s against the known set. Matching is exact.
func ParseContentType(s string) (ContentType, error) {
	c := ContentType(s)
	if !c.IsValid() {
		names := make([]string, 0, 4)
		for _, k := range ContentTypes() {
			names = append(names, string(k))
		}
		return "", fmt.Errorf("%w: %q (want one of %s)", domain.ErrInvalidContentType, s, strings.Join(names, ", "))
	}
	return c, nil
}
