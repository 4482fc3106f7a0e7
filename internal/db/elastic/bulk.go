package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
)

type bulkAction struct {
	Index struct {
		ID string `json:"_id"`
	} `json:"index"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// BulkIndex loads docs in a single _bulk request and waits for a refresh,
// so every document is searchable on return. A response with item-level
// failures is reported as db.ErrBulkRejected.
func (s *Store) BulkIndex(ctx context.Context, index string, docs []db.Document) error {
	if len(docs) == 0 {
		return nil
	}

	body, err := encodeBulk(docs)
	if err != nil {
		return &db.Error{Op: db.OpBulk, Err: err}
	}

	res, err := s.es.Bulk(bytes.NewReader(body),
		s.es.Bulk.WithIndex(index),
		s.es.Bulk.WithRefresh("wait_for"),
		s.es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return &db.Error{Op: db.OpBulk, Err: err}
	}
	defer closeBody(res)

	if res.IsError() {
		apiErr := responseError(res)
		if apiErr.Type == "index_not_found_exception" {
			return &db.Error{Op: db.OpBulk, Err: db.ErrIndexNotFound}
		}
		return &db.Error{Op: db.OpBulk, Err: apiErr}
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return &db.Error{Op: db.OpBulk, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !br.Errors {
		return nil
	}

	failed := 0
	var first string
	for _, item := range br.Items {
		for _, r := range item {
			if r.Error == nil {
				continue
			}
			failed++
			if first == "" {
				first = fmt.Sprintf("id %s: %s: %s", r.ID, r.Error.Type, r.Error.Reason)
			}
		}
	}
	return &db.Error{Op: db.OpBulk, Err: fmt.Errorf("%w: %d of %d documents failed, first %s",
		db.ErrBulkRejected, failed, len(docs), first)}
}

// encodeBulk renders the NDJSON body: an action line then a source line per document.
func encodeBulk(docs []db.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		if doc.ID == "" {
			return nil, fmt.Errorf("document id is required")
		}
		var action bulkAction
		action.Index.ID = doc.ID
		if err := enc.Encode(action); err != nil {
			return nil, fmt.Errorf("encode action: %w", err)
		}
		if err := enc.Encode(doc.Fields); err != nil {
			return nil, fmt.Errorf("encode document %s: %w", doc.ID, err)
		}
	}
	return buf.Bytes(), nil
}
