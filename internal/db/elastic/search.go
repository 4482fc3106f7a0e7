package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
)

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Score  float64        `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchText runs a bool query: multi_match over q.Fields in must, one term
// clause per filter in filter.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if len(q.Fields) == 0 {
		return nil, fmt.Errorf("at least one search field is required")
	}
	if q.Size <= 0 {
		return nil, fmt.Errorf("size must be positive")
	}

	body, err := json.Marshal(buildSearchBody(q))
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(q.IndexName),
		s.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer closeBody(res)

	if res.IsError() {
		apiErr := responseError(res)
		if apiErr.Type == "index_not_found_exception" {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: apiErr}
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode response: %w", err)}
	}

	entries := make([]db.SearchEntry, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		entries = append(entries, db.SearchEntry{
			ID:     h.ID,
			Score:  h.Score,
			Fields: flattenSource(h.Source),
		})
	}
	return &db.SearchResult{Total: sr.Hits.Total.Value, Entries: entries}, nil
}

func buildSearchBody(q *db.TextQuery) map[string]any {
	boolQuery := map[string]any{
		"must": map[string]any{
			"multi_match": map[string]any{
				"query":  q.Query,
				"fields": q.Fields,
			},
		},
	}

	if len(q.Filters) > 0 {
		filters := make([]map[string]any, 0, len(q.Filters))
		for _, f := range q.Filters {
			filters = append(filters, map[string]any{
				"term": map[string]string{f.Field: f.Value},
			})
		}
		boolQuery["filter"] = filters
	}

	body := map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"size":  q.Size,
	}
	if len(q.ReturnFields) > 0 {
		body["_source"] = q.ReturnFields
	}
	return body
}

// flattenSource keeps string values as-is and renders the rest with %v;
// the index only stores flat string fields.
func flattenSource(src map[string]any) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		switch tv := v.(type) {
		case string:
			out[k] = tv
		case nil:
		default:
			out[k] = fmt.Sprint(tv)
		}
	}
	return out
}
