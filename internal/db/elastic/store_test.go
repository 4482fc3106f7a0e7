package elastic

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// newTestStore starts an httptest server that answers like Elasticsearch
// (product header included) and returns a Store pointed at it.
func newTestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	s, err := NewStore(Config{Addrs: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func docsIndex() *db.IndexDefinition {
	def, err := db.NewIndex("my_documents").
		Text("title").
		Text("content").
		Keyword("content_type").
		Build()
	if err != nil {
		panic(err)
	}
	return def
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead || r.URL.Path != "/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Unauthorized(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	err := s.Ping(context.Background())
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestCreateIndex_SendsMapping(t *testing.T) {
	var got map[string]any
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/my_documents" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeBody(w, http.StatusOK, `{"acknowledged":true,"index":"my_documents"}`)
	})

	if err := s.CreateIndex(context.Background(), docsIndex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"title":        map[string]any{"type": "text"},
				"content":      map[string]any{"type": "text"},
				"content_type": map[string]any{"type": "keyword"},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mapping = %v\nwant      %v", got, want)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusBadRequest,
			`{"error":{"type":"resource_already_exists_exception","reason":"index [my_documents] already exists"},"status":400}`)
	})

	err := s.CreateIndex(context.Background(), docsIndex())
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestCreateIndex_OtherError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusBadRequest,
			`{"error":{"type":"mapper_parsing_exception","reason":"bad mapping"},"status":400}`)
	})

	err := s.CreateIndex(context.Background(), docsIndex())
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if !strings.Contains(err.Error(), "mapper_parsing_exception") {
		t.Errorf("error lacks engine reason: %v", err)
	}
}

func TestCreateIndex_InvalidDefinition(t *testing.T) {
	s := newTestStore(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})
	if err := s.CreateIndex(context.Background(), &db.IndexDefinition{Name: "Bad Name"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDropIndex(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"deleted", http.StatusOK, `{"acknowledged":true}`, nil},
		{"missing", http.StatusNotFound, `{"error":{"type":"index_not_found_exception","reason":"no such index"},"status":404}`, db.ErrIndexNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/my_documents" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				writeBody(w, tc.status, tc.body)
			})
			err := s.DropIndex(context.Background(), "my_documents")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDropIndex_ServerError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusInternalServerError, `oops`)
	})
	err := s.DropIndex(context.Background(), "my_documents")
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error = %v", err)
	}
}

func TestIndexExists(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{"present", http.StatusOK, true, false},
		{"absent", http.StatusNotFound, false, false},
		{"server error", http.StatusInternalServerError, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodHead || r.URL.Path != "/my_documents" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tc.status)
			})
			got, err := s.IndexExists(context.Background(), "my_documents")
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("exists = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBulkIndex_NDJSONAndRefresh(t *testing.T) {
	var lines []string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/my_documents/_bulk" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("refresh"); got != "wait_for" {
			t.Errorf("refresh = %q, want wait_for", got)
		}
		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		writeBody(w, http.StatusOK, `{"took":3,"errors":false,"items":[{"index":{"_id":"a","status":201}},{"index":{"_id":"b","status":201}}]}`)
	})

	err := s.BulkIndex(context.Background(), "my_documents", []db.Document{
		{ID: "a", Fields: map[string]string{"title": "A"}},
		{ID: "b", Fields: map[string]string{"title": "B"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		`{"index":{"_id":"a"}}`,
		`{"title":"A"}`,
		`{"index":{"_id":"b"}}`,
		`{"title":"B"}`,
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("body lines = %v\nwant %v", lines, want)
	}
}

func TestBulkIndex_ItemFailures(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, `{"took":3,"errors":true,"items":[
			{"index":{"_id":"a","status":201}},
			{"index":{"_id":"b","status":400,"error":{"type":"document_parsing_exception","reason":"failed to parse"}}}
		]}`)
	})

	err := s.BulkIndex(context.Background(), "my_documents", []db.Document{
		{ID: "a", Fields: map[string]string{"title": "A"}},
		{ID: "b", Fields: map[string]string{"title": "B"}},
	})
	if !errors.Is(err, db.ErrBulkRejected) {
		t.Fatalf("expected ErrBulkRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "1 of 2") || !strings.Contains(err.Error(), "id b") {
		t.Errorf("error lacks detail: %v", err)
	}
}

func TestBulkIndex_Empty(t *testing.T) {
	s := newTestStore(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})
	if err := s.BulkIndex(context.Background(), "my_documents", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBulkIndex_MissingID(t *testing.T) {
	s := newTestStore(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})
	err := s.BulkIndex(context.Background(), "my_documents", []db.Document{{Fields: map[string]string{"title": "A"}}})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestSearchText_QueryShapeAndHits(t *testing.T) {
	var got map[string]any
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/my_documents/_search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeBody(w, http.StatusOK, `{"hits":{"total":{"value":1,"relation":"eq"},"hits":[
			{"_id":"doc-2","_score":2.25,"_source":{"title":"Latest Tech News","content":"Major tech companies"}}
		]}}`)
	})

	res, err := s.SearchText(context.Background(), &db.TextQuery{
		IndexName:    "my_documents",
		Query:        "tech",
		Fields:       []string{"title", "content"},
		Filters:      []db.Term{{Field: "content_type", Value: "news"}},
		Size:         10,
		ReturnFields: []string{"title", "content"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  "tech",
						"fields": []any{"title", "content"},
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"content_type": "news"}},
				},
			},
		},
		"size":    float64(10),
		"_source": []any{"title", "content"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("query body = %v\nwant         %v", got, want)
	}

	if res.Total != 1 || len(res.Entries) != 1 {
		t.Fatalf("result = %+v", res)
	}
	e := res.Entries[0]
	if e.ID != "doc-2" || e.Score != 2.25 || e.Fields["title"] != "Latest Tech News" {
		t.Errorf("entry = %+v", e)
	}
}

func TestSearchText_NoFilterOmitsFilterClause(t *testing.T) {
	body := buildSearchBody(&db.TextQuery{Query: "q", Fields: []string{"title"}, Size: 3})

	b := body["query"].(map[string]any)["bool"].(map[string]any)
	if _, ok := b["filter"]; ok {
		t.Error("filter clause present without filters")
	}
	if _, ok := body["_source"]; ok {
		t.Error("_source present without return fields")
	}
}

func TestSearchText_IndexNotFound(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusNotFound,
			`{"error":{"type":"index_not_found_exception","reason":"no such index [my_documents]"},"status":404}`)
	})

	_, err := s.SearchText(context.Background(), &db.TextQuery{
		IndexName: "my_documents", Query: "x", Fields: []string{"title"}, Size: 10,
	})
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearchText_MalformedResponse(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, `{"hits":`)
	})

	_, err := s.SearchText(context.Background(), &db.TextQuery{
		IndexName: "my_documents", Query: "x", Fields: []string{"title"}, Size: 10,
	})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestSearchText_Validation(t *testing.T) {
	s := newTestStore(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})
	tests := []db.TextQuery{
		{Query: "x", Fields: []string{"t"}, Size: 1},
		{IndexName: "i", Query: "x", Size: 1},
		{IndexName: "i", Query: "x", Fields: []string{"t"}},
	}
	for i := range tests {
		if _, err := s.SearchText(context.Background(), &tests[i]); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestFlattenSource(t *testing.T) {
	got := flattenSource(map[string]any{"a": "x", "b": float64(3), "c": nil, "d": true})
	want := map[string]string{"a": "x", "b": "3", "d": "true"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("flattenSource = %v, want %v", got, want)
	}
}
