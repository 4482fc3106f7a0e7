package provision

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Repository defines the index lifecycle and loading contract.
type Repository interface {
	Recreate(ctx context.Context, name string) (dropped bool, err error)
	Load(ctx context.Context, name string, docs []document.Document) error
}
