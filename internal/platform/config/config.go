package config

import (
	"os"
	"time"
)

// Server captures process-level configuration resolved from the environment.
// Per-tenant store targets are intentionally NOT here; the tenant store
// resolver reads them lazily so a missing tenant DSN fails that tenant's
// requests instead of the whole process.
type Server struct {
	Addr string

	// Sandbox switches the approval evaluator and the payment network client
	// into permissive test mode. It never changes correctness, only tagging
	// and the network base URL.
	Sandbox bool

	// PiAPIBase and PiAPIKey configure the external payment network client.
	// Empty base disables server-side confirmation calls.
	PiAPIBase string
	PiAPIKey  string

	// RedisURL enables the payment-route rate limiter when set.
	RedisURL string

	// StoreDebug turns on per-query logging in tenant stores. Diagnostic only.
	StoreDebug bool

	LogLevel string

	// NetworkTimeout bounds every call to the external payment network.
	NetworkTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("POLYDOM_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// NEXT_PUBLIC_PI_SANDBOX is honored as a fallback for deployments that
	// still share env files with the web frontend.
	sandbox := os.Getenv("PI_SANDBOX") == "true" || os.Getenv("NEXT_PUBLIC_PI_SANDBOX") == "true"

	timeout := 10 * time.Second
	if raw := os.Getenv("PI_API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			timeout = d
		}
	}

	return Server{
		Addr:           addr,
		Sandbox:        sandbox,
		PiAPIBase:      os.Getenv("PI_API_BASE"),
		PiAPIKey:       os.Getenv("PI_API_KEY"),
		RedisURL:       os.Getenv("REDIS_URL"),
		StoreDebug:     os.Getenv("STORE_DEBUG") == "true",
		LogLevel:       os.Getenv("LOG_LEVEL"),
		NetworkTimeout: timeout,
	}
}
