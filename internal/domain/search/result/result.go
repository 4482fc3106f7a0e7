package result

import "github.com/kailas-cloud/docsearch/internal/domain/document"

// SnippetLength is the number of characters kept before the ellipsis.
const SnippetLength = 50

const ellipsis = "..."

// Hit is a single raw search hit as returned by the engine.
type Hit struct {
	id          string
	score       float64
	title       string
	content     string
	contentType document.ContentType
}

// NewHit creates a search hit.
func NewHit(id string, score float64, title, content string, contentType document.ContentType) Hit {
	return Hit{id: id, score: score, title: title, content: content, contentType: contentType}
}

// ID returns the document identifier.
func (h *Hit) ID() string { return h.id }

// Score returns the engine relevance score.
func (h *Hit) Score() float64 { return h.score }

// Title returns the document title.
func (h *Hit) Title() string { return h.title }

// Content returns the full document body.
func (h *Hit) Content() string { return h.content }

// ContentType returns the document category (may be empty if not returned).
func (h *Hit) ContentType() document.ContentType { return h.contentType }

// Item shapes the hit for presentation.
func (h *Hit) Item() Item {
	return Item{title: h.title, snippet: Snippet(h.content)}
}

// Item is the presented form of a hit: title plus a short preview.
type Item struct {
	title   string
	snippet string
}

// Title returns the document title.
func (i *Item) Title() string { return i.title }

// Snippet returns the content preview.
func (i *Item) Snippet() string { return i.snippet }

// Snippet truncates content to SnippetLength characters and appends "..."
// when anything was cut. Characters are Unicode code points.
func Snippet(content string) string {
	n := 0
	for i := range content {
		if n == SnippetLength {
			return content[:i] + ellipsis
		}
		n++
	}
	return content
}
