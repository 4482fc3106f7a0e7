package db

import (
	"context"
	"time"
)

// Engine is the search engine facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces.
type Engine interface {
	Pinger
	IndexManager
	BulkLoader
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Document is a single flat document submitted to BulkIndex.
type Document struct {
	ID     string
	Fields map[string]string
}

// BulkLoader indexes many documents in one round-trip.
// Documents are searchable when BulkIndex returns without error.
type BulkLoader interface {
	BulkIndex(ctx context.Context, index string, docs []Document) error
}

// Searcher provides full-text search over an index.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
}
