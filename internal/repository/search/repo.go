package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

var (
	searchFields = []string{document.FieldTitle, document.FieldContent}
	returnFields = []string{document.FieldTitle, document.FieldContent, document.FieldContentType}
)

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search matches the query against title and content, filtered by content
// type when the request carries one. Hits keep engine order.
func (r *Repo) Search(ctx context.Context, index string, req *request.Request) ([]result.Hit, error) {
	q := &db.TextQuery{
		IndexName:    index,
		Query:        req.Query(),
		Fields:       searchFields,
		Size:         req.Size(),
		ReturnFields: returnFields,
	}
	if req.HasContentType() {
		q.Filters = []db.Term{{Field: document.FieldContentType, Value: string(req.ContentType())}}
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}

	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		hits = append(hits, result.NewHit(
			e.ID,
			e.Score,
			e.Fields[document.FieldTitle],
			e.Fields[document.FieldContent],
			document.ContentType(e.Fields[document.FieldContentType]),
		))
	}
	return hits, nil
}
