package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// OperatorKeyHeader carries the key for destructive operator routes.
const OperatorKeyHeader = "X-Operator-Key"

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

func keySet(keys []string) [][]byte {
	set := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			set = append(set, []byte(k))
		}
	}
	return set
}

func containsKey(set [][]byte, candidate string) bool {
	c := []byte(candidate)
	found := false
	for _, k := range set {
		if subtle.ConstantTimeCompare(k, c) == 1 {
			found = true
		}
	}
	return found
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens.
// If apiKeys is empty, authentication is disabled (pass-through).
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := keySet(apiKeys)

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			if !containsKey(validKeys, auth[len(bearerPrefix):]) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OperatorKeyMiddleware guards destructive routes. Unlike bearer auth, an
// empty key list disables the routes entirely.
func OperatorKeyMiddleware(operatorKeys []string) func(http.Handler) http.Handler {
	validKeys := keySet(operatorKeys)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(validKeys) == 0 {
				writeError(w, http.StatusForbidden, codeForbidden, "operator routes are disabled")
				return
			}
			key := r.Header.Get(OperatorKeyHeader)
			if key == "" {
				writeError(w, http.StatusForbidden, codeForbidden, "missing "+OperatorKeyHeader+" header")
				return
			}
			if !containsKey(validKeys, key) {
				writeError(w, http.StatusForbidden, codeForbidden, "invalid operator key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
