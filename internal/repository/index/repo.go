package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// store is the consumer interface for index lifecycle and loading (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	BulkIndex(ctx context.Context, index string, docs []db.Document) error
}

// Repo implements usecase/provision.Repository.
type Repo struct {
	store store
}

// New creates an index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Schema is the document mapping: title and content are full-text,
// content_type is exact-match.
func Schema(name string) (*db.IndexDefinition, error) {
	def, err := db.NewIndex(name).
		Prefix(db.KeyPrefix(name)).
		Text(document.FieldTitle).
		Text(document.FieldContent).
		Keyword(document.FieldContentType).
		Build()
	if err != nil {
		return nil, fmt.Errorf("index %q: %w", name, err)
	}
	return def, nil
}

// Recreate drops the index when present and creates it from Schema.
// Reports whether a previous index was dropped.
func (r *Repo) Recreate(ctx context.Context, name string) (bool, error) {
	def, err := Schema(name)
	if err != nil {
		return false, err
	}

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", name, err)
	}

	dropped := false
	if exists {
		// a concurrent drop between the probe and here is fine
		if err := r.store.DropIndex(ctx, name); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return false, fmt.Errorf("drop index %s: %w", name, err)
		}
		dropped = true
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return dropped, fmt.Errorf("create index %s: %w", def, err)
	}
	return dropped, nil
}

// Load bulk-indexes docs into the named index in one request.
func (r *Repo) Load(ctx context.Context, name string, docs []document.Document) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.Document, len(docs))
	for i := range docs {
		items[i] = db.Document{ID: docs[i].ID(), Fields: docs[i].Fields()}
	}

	if err := r.store.BulkIndex(ctx, name, items); err != nil {
		return fmt.Errorf("load %d documents into %s: %w", len(docs), name, err)
	}
	return nil
}
