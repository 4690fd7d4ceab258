package middleware

import (
	"crypto/subtle"
	"net/http"
)

const apiKeyHeader = "X-API-Key"

// APIKey guards a route with a shared key. A missing credential and a wrong
// one are distinct failures so clients can tell misconfiguration from a bad
// key. An empty configured key disables the check.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(apiKeyHeader)
			if presented == "" {
				writeError(w, r, http.StatusUnauthorized, "unauthenticated", "missing API key", 0)
				return
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				writeError(w, r, http.StatusForbidden, "forbidden", "invalid API key", 0)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
