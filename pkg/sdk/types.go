package docsearch

import (
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
)

// Content types accepted by Document.ContentType and the Search filter.
const (
	ContentTypeNews     = string(document.News)
	ContentTypeTutorial = string(document.Tutorial)
	ContentTypeReview   = string(document.Review)
	ContentTypeReport   = string(document.Report)
)

// Document is a unit of indexed content. An empty ID is derived from
// Title and ContentType, so reloading the same set does not duplicate.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// Result is one search hit. Snippet is the content cut to 50 characters.
type Result struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Snippet     string  `json:"snippet"`
	ContentType string  `json:"content_type"`
	Score       float64 `json:"score"`
}

func documentToDomain(d Document) (document.Document, error) {
	return document.New(d.ID, d.Title, d.Content, document.ContentType(d.ContentType))
}

func documentFromDomain(d *document.Document) Document {
	return Document{
		ID:          d.ID(),
		Title:       d.Title(),
		Content:     d.Content(),
		ContentType: string(d.ContentType()),
	}
}

func resultFromHit(h *result.Hit) Result {
	item := h.Item()
	return Result{
		ID:          h.ID(),
		Title:       item.Title(),
		Snippet:     item.Snippet(),
		ContentType: string(h.ContentType()),
		Score:       h.Score(),
	}
}
