package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// CreateIndex creates an index with an explicit mapping built from def.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	body, err := buildMapping(def)
	if err != nil {
		return err
	}

	res, err := s.es.Indices.Create(def.Name,
		s.es.Indices.Create.WithBody(bytes.NewReader(body)),
		s.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	defer closeBody(res)

	if res.IsError() {
		apiErr := responseError(res)
		if apiErr.Type == "resource_already_exists_exception" {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: apiErr}
	}
	return nil
}

// DropIndex deletes an index and every document in it.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	res, err := s.es.Indices.Delete([]string{name}, s.es.Indices.Delete.WithContext(ctx))
	if err != nil {
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	defer closeBody(res)

	if res.StatusCode == http.StatusNotFound {
		return db.ErrIndexNotFound
	}
	if res.IsError() {
		return &db.Error{Op: db.OpDropIndex, Err: responseError(res)}
	}
	return nil
}

// IndexExists probes the index with HEAD /<name>: 200 present, 404 absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	res, err := s.es.Indices.Exists([]string{name}, s.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, &db.Error{Op: db.OpIndexExists, Err: err}
	}
	defer closeBody(res)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &db.Error{Op: db.OpIndexExists, Err: responseError(res)}
	}
}

// buildMapping renders {"mappings":{"properties":{field:{"type":kind}}}}.
func buildMapping(def *db.IndexDefinition) ([]byte, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	props := make(map[string]any, len(def.Fields))
	for _, f := range def.Fields {
		switch f.Type {
		case db.IndexFieldText, db.IndexFieldKeyword:
			props[f.Name] = map[string]string{"type": f.Type.String()}
		default:
			return nil, fmt.Errorf("unknown field type for %s", f.Name)
		}
	}

	body, err := json.Marshal(map[string]any{
		"mappings": map[string]any{"properties": props},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal mapping: %w", err)
	}
	return body, nil
}
