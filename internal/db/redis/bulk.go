package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// BulkIndex writes every document as a hash under the index key prefix
// in a single DoMulti round-trip. The Query Engine indexes hashes
// synchronously, so they are searchable once the pipeline returns.
func (s *Store) BulkIndex(ctx context.Context, index string, docs []db.Document) error {
	if len(docs) == 0 {
		return nil
	}

	prefix := db.KeyPrefix(index)
	cmds := make(rueidis.Commands, 0, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			return &db.Error{Op: db.OpBulk, Err: fmt.Errorf("document id is required")}
		}
		cmd := s.b().Hset().Key(prefix + doc.ID).FieldValue()
		for k, v := range doc.Fields {
			cmd = cmd.FieldValue(k, v)
		}
		cmds = append(cmds, cmd.Build())
	}

	failed := 0
	var first error
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			failed++
			if first == nil {
				first = fmt.Errorf("%w: key %s: %w", db.ErrBulkRejected, prefix+docs[i].ID, err)
			}
		}
	}
	if failed > 0 {
		return &db.Error{Op: db.OpBulk, Err: fmt.Errorf("%d of %d documents failed: %w", failed, len(docs), first)}
	}
	return nil
}
