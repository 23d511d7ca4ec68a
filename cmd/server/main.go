package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"polydom/internal/approval"
	approvalhandler "polydom/internal/approval/handler"
	approvalmetrics "polydom/internal/approval/metrics"
	paymenthandler "polydom/internal/payment/handler"
	paymentmetrics "polydom/internal/payment/metrics"
	"polydom/internal/payment/service"
	paymentstore "polydom/internal/payment/store"
	"polydom/internal/pinetwork"
	"polydom/internal/platform/config"
	"polydom/internal/platform/httpserver"
	"polydom/internal/platform/logger"
	"polydom/internal/platform/middleware"
	"polydom/internal/platform/ratelimit"
	"polydom/internal/platform/redis"
	"polydom/internal/registry"
	registryhandler "polydom/internal/registry/handler"
	"polydom/internal/tenantstore"
	"polydom/pkg/platform/audit"
	"polydom/pkg/platform/httputil"
	auditmemory "polydom/pkg/platform/audit/store/memory"
	auditpostgres "polydom/pkg/platform/audit/store/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	reg := registry.MustNew()

	resolver := tenantstore.NewResolver(reg.IsValid, log, tenantstore.WithDebug(cfg.StoreDebug))
	defer resolver.Close()

	// Payment stores: postgres per tenant when any DSN is configured,
	// in-memory otherwise so the server stays usable in local development.
	var stores service.StoreProvider
	if anyDatabaseConfigured() {
		stores = paymentstore.NewTenantProvider(resolver)
	} else {
		log.Warn("no database configured, payments held in memory")
		stores = paymentstore.NewMemoryProvider(reg.IsValid)
	}

	auditStore, auditPool, err := buildAuditStore(ctx)
	if err != nil {
		return fmt.Errorf("audit store: %w", err)
	}
	if auditPool != nil {
		defer auditPool.Close()
	}
	emitter := audit.NewEmitter(auditStore, log)

	evaluator := approval.NewStatic(cfg.Sandbox, emitter, approvalmetrics.New())

	svcOpts := []service.Option{service.WithMetrics(paymentmetrics.New())}
	if cfg.PiAPIBase != "" {
		network := pinetwork.New(cfg.PiAPIBase, cfg.PiAPIKey, log, pinetwork.WithTimeout(cfg.NetworkTimeout))
		svcOpts = append(svcOpts, service.WithNetwork(network))
	} else {
		log.Warn("payment network base URL not set, server-side confirmation disabled")
	}
	payments := service.New(stores, log, svcOpts...)

	rdb, err := redis.New(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}
	limiter := ratelimit.New(rdb, 60, time.Minute, log)

	router := buildRouter(log, reg, evaluator, payments, rdb, limiter)

	server := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr, "sandbox", cfg.Sandbox)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildRouter(
	log *slog.Logger,
	reg *registry.Registry,
	evaluator approval.Evaluator,
	payments *service.Service,
	rdb *redis.Client,
	limiter *ratelimit.Limiter,
) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.ResolveTenant(reg.IsValid))

	router.Get("/healthz", healthHandler(rdb))
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	registryhandler.New(reg, log).Register(router)
	approvalhandler.New(evaluator, log).Register(router)

	router.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		paymenthandler.New(payments, evaluator, log).Register(r)
	})

	return router
}

func healthHandler(rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok"}
		code := http.StatusOK
		if rdb != nil {
			if err := rdb.Health(r.Context()); err != nil {
				body["redis"] = "unreachable"
				code = http.StatusServiceUnavailable
			} else {
				body["redis"] = "ok"
			}
		}
		httputil.WriteJSON(w, code, body)
	}
}

// anyDatabaseConfigured reports whether a shared or per-tenant database DSN
// is present in the environment.
func anyDatabaseConfigured() bool {
	if os.Getenv("DATABASE_URL") != "" {
		return true
	}
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasSuffix(key, "_DATABASE_URL") {
			return true
		}
	}
	return false
}

// buildAuditStore opens the shared audit store. Audit entries go to the
// shared database when one is configured, otherwise to process memory.
func buildAuditStore(ctx context.Context) (audit.Store, *pgxpool.Pool, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return auditmemory.NewInMemoryStore(), nil, nil
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return auditpostgres.New(pool), pool, nil
}
