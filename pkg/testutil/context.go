package testutil

import (
	"net/http"
	"time"

	"polydom/pkg/requestcontext"
)

// WithTenant adds a tenant slug to the request context.
// This simulates what the tenant resolution middleware would do.
func WithTenant(req *http.Request, tenant string) *http.Request {
	return req.WithContext(requestcontext.WithTenant(req.Context(), tenant))
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithTime pins the request time in the context.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
