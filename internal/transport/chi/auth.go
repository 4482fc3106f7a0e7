package chi

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

// publicPaths skip authentication.
var publicPaths = map[string]struct{}{
	"/":        {},
	"/health":  {},
	"/metrics": {},
}

// APIKeyHeader is accepted as an alternative to a Bearer token.
const APIKeyHeader = "X-API-Key"

type apiKeyCtxKey struct{}

// authenticatedKey returns the API key accepted by APIKeyMiddleware, if any.
func authenticatedKey(ctx context.Context) (string, bool) {
	k, ok := ctx.Value(apiKeyCtxKey{}).(string)
	return k, ok
}

// APIKeyMiddleware guards the query endpoints with static API keys.
// Keys come from "Authorization: Bearer <key>" or the X-API-Key header.
// Blank keys are ignored; with no keys left the middleware is a pass-through.
func APIKeyMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := extractKey(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing api key")
				return
			}
			if !knownKey(keys, token) {
				writeError(w, http.StatusUnauthorized, "invalid api key")
				return
			}

			ctx := context.WithValue(r.Context(), apiKeyCtxKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractKey(r *http.Request) (string, bool) {
	if k := r.Header.Get(APIKeyHeader); k != "" {
		return k, true
	}
	const bearerPrefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(auth[len(bearerPrefix):])
	return token, token != ""
}

func knownKey(keys [][]byte, token string) bool {
	t := []byte(token)
	found := false
	for _, k := range keys {
		if subtle.ConstantTimeCompare(k, t) == 1 {
			found = true
		}
	}
	return found
}
