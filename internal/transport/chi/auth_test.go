package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveAuth(t *testing.T, keys []string, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	handler := APIKeyMiddleware(keys)(okHandler())

	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAPIKeyMiddleware_NoKeys_PassThrough(t *testing.T) {
	for _, keys := range [][]string{nil, {"", "  "}} {
		rr := serveAuth(t, keys, "/search?q=x", nil)
		if rr.Code != http.StatusOK {
			t.Errorf("keys %q: got %d, want %d", keys, rr.Code, http.StatusOK)
		}
	}
}

func TestAPIKeyMiddleware_Missing_401(t *testing.T) {
	rr := serveAuth(t, []string{"secret"}, "/search?q=x", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var body errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error != "missing api key" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"bearer ok", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
		{"second key", map[string]string{"Authorization": "Bearer other"}, http.StatusOK},
		{"header ok", map[string]string{APIKeyHeader: "secret"}, http.StatusOK},
		{"wrong bearer", map[string]string{"Authorization": "Bearer wrong"}, http.StatusUnauthorized},
		{"wrong header", map[string]string{APIKeyHeader: "wrong"}, http.StatusUnauthorized},
		{"basic scheme", map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}, http.StatusUnauthorized},
		{"empty bearer", map[string]string{"Authorization": "Bearer "}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serveAuth(t, []string{"secret", "other"}, "/search?q=x", tt.headers)
			if rr.Code != tt.want {
				t.Errorf("got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestAPIKeyMiddleware_PublicPaths(t *testing.T) {
	for _, path := range []string{"/", "/health", "/metrics"} {
		rr := serveAuth(t, []string{"secret"}, path, nil)
		if rr.Code != http.StatusOK {
			t.Errorf("public path %s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}
