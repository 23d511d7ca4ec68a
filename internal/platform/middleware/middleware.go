// Package middleware provides the request-scoped context middleware shared by
// all modules: request IDs, a single request timestamp, and tenant resolution.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"polydom/pkg/requestcontext"
)

// RequestID assigns a request ID when the client did not send one and echoes
// it back in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime pins one timestamp per request so every timestamp written during
// the request (record mutation, audit entry) agrees.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ResolveTenant resolves the tenant slug for the request and stores it in the
// context. Resolution order: X-Domain header, then the left-most Host label.
// Unknown slugs are ignored; handlers that need a tenant reject the request
// themselves, because public routes (registry reads, health) are tenant-free.
func ResolveTenant(valid func(slug string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := r.Header.Get("X-Domain")
			if slug == "" {
				if host, _, ok := strings.Cut(r.Host, ":"); ok {
					slug, _, _ = strings.Cut(host, ".")
				} else {
					slug, _, _ = strings.Cut(r.Host, ".")
				}
			}
			if slug != "" && valid(slug) {
				ctx := requestcontext.WithTenant(r.Context(), slug)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
