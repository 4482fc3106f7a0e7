package index

import (
	"context"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// mockStore implements the consumer interface for tests and records calls in order.
type mockStore struct {
	calls []string

	existsFn func(ctx context.Context, name string) (bool, error)
	dropFn   func(ctx context.Context, name string) error
	createFn func(ctx context.Context, def *db.IndexDefinition) error
	bulkFn   func(ctx context.Context, index string, docs []db.Document) error
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	m.calls = append(m.calls, "exists")
	if m.existsFn != nil {
		return m.existsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	m.calls = append(m.calls, "drop")
	if m.dropFn != nil {
		return m.dropFn(ctx, name)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	m.calls = append(m.calls, "create")
	if m.createFn != nil {
		return m.createFn(ctx, def)
	}
	return nil
}

func (m *mockStore) BulkIndex(ctx context.Context, index string, docs []db.Document) error {
	m.calls = append(m.calls, "bulk")
	if m.bulkFn != nil {
		return m.bulkFn(ctx, index, docs)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
