// Package ratelimit provides a fixed-window request limiter for the payment
// endpoints, backed by Redis. The external payment network retries callbacks
// aggressively; the limiter keeps a misbehaving client from hammering the
// per-tenant stores while staying fail-open when Redis is down.
package ratelimit

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"polydom/internal/platform/redis"
	"polydom/pkg/platform/httputil"
)

// Limiter counts requests per client IP in fixed windows.
type Limiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// New builds a limiter. A nil redis client yields a pass-through limiter.
func New(rdb *redis.Client, limit int, window time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{rdb: rdb, limit: int64(limit), window: window, logger: logger}
}

// Middleware enforces the limit. Redis errors fail open: blocking legitimate
// payment callbacks is worse than letting a burst through.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	if l == nil || l.rdb == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := l.windowKey(clientIP(r))

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			l.logger.WarnContext(ctx, "rate limit check unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.rdb.Expire(ctx, key, l.window)
		}
		if count > l.limit {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
			httputil.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate_limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) windowKey(ip string) string {
	bucket := time.Now().Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("ratelimit:payments:%s:%d", ip, bucket)
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
