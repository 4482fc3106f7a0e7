package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
)

// Service answers keyword queries over one index.
type Service struct {
	repo  Repository
	index string
}

// New creates a search service for the named index.
func New(repo Repository, index string) *Service {
	return &Service{repo: repo, index: index}
}

// Hits returns raw hits in engine relevance order. Engine failures are
// wrapped in domain.ErrBackend.
func (s *Service) Hits(ctx context.Context, req *request.Request) ([]result.Hit, error) {
	hits, err := s.repo.Search(ctx, s.index, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	return hits, nil
}

// Search returns the first page of hits shaped as title plus snippet.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Item, error) {
	hits, err := s.Hits(ctx, req)
	if err != nil {
		return nil, err
	}

	items := make([]result.Item, 0, len(hits))
	for i := range hits {
		items = append(items, hits[i].Item())
	}
	return items, nil
}
