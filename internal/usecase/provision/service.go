package provision

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/logger"
)

// Service (re)creates the search index and loads documents into it.
type Service struct {
	repo  Repository
	index string
}

// New creates a provisioning service for the named index.
func New(repo Repository, index string) *Service {
	return &Service{repo: repo, index: index}
}

// Provision drops any existing index, creates it from the mapping and
// bulk-loads docs. On success exactly docs are present and searchable.
// Returns the number of documents loaded.
func (s *Service) Provision(ctx context.Context, docs []document.Document) (int, error) {
	log := logger.FromContext(ctx).With(zap.String("index", s.index))
	start := time.Now()

	dropped, err := s.repo.Recreate(ctx, s.index)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	if dropped {
		log.Info("previous index dropped")
	}

	if err := s.repo.Load(ctx, s.index, docs); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}

	log.Info("index provisioned",
		zap.Int("documents", len(docs)),
		zap.Duration("took", time.Since(start)),
	)
	return len(docs), nil
}
