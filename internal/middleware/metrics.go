package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"thearchives/internal/observability"
)

// Metrics records request count and latency per chi route pattern. Requests
// that matched no route are grouped under "unmatched" to keep label
// cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)

		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				pattern = p
			}
		}
		observability.ObserveHTTP(pattern, r.Method, wrapped.statusCode, time.Since(start))
	})
}
