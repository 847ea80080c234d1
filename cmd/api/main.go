// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the portal HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the session store (memory with cleanup worker, or Redis).
//  4. Build the credential verifier (static demo account, or Postgres with
//     migrations and an idempotent demo-account seed).
//  5. Wire the upstream client and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/portal/internal/api"
	"github.com/taibuivan/portal/internal/auth"
	"github.com/taibuivan/portal/internal/platform/config"
	"github.com/taibuivan/portal/internal/platform/constants"
	"github.com/taibuivan/portal/internal/platform/migration"
	pgstore "github.com/taibuivan/portal/internal/platform/postgres"
	redisstore "github.com/taibuivan/portal/internal/platform/redis"
	"github.com/taibuivan/portal/internal/posts"
	"github.com/taibuivan/portal/internal/session"
	"github.com/taibuivan/portal/internal/upstream"
	"github.com/taibuivan/portal/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_backend", cfg.SessionBackend),
		slog.String("credential_backend", cfg.CredentialBackend),
	)

	// rootCtx stops the background workers on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	var health api.HealthDependencies

	demoAccount := auth.Account{
		ID:       cfg.DemoUserID,
		Email:    cfg.DemoUserEmail,
		Name:     cfg.DemoUserName,
		Password: cfg.DemoUserPassword,
	}

	// ── 3. Session Store ──────────────────────────────────────────────────
	var store session.Store

	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		store = session.NewRedisStore(rdb)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }

	default:
		memoryStore := session.NewMemoryStore()
		go memoryStore.RunCleanup(rootCtx, cfg.SessionCleanupInterval, log)
		store = memoryStore
	}

	// ── 4. Credential Verifier ────────────────────────────────────────────
	var verifier auth.CredentialVerifier

	switch cfg.CredentialBackend {
	case config.CredentialBackendPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		postgresVerifier, err := auth.NewPostgresVerifier(pool)
		must(log, err, "initialize postgres verifier")
		must(log, postgresVerifier.EnsureAccount(startupCtx, demoAccount), "seed demo account")

		verifier = postgresVerifier
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }

	default:
		staticVerifier, err := auth.NewStaticVerifier(bcrypt.DefaultCost, demoAccount)
		must(log, err, "initialize static verifier")
		verifier = staticVerifier
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(store, verifier, cfg.SessionTTL)

	client, err := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	must(log, err, "initialize upstream client")

	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Users:     users.NewHandler(users.NewService(client)),
		Posts:     posts.NewHandler(posts.NewService(client)),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, authService, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		rootCancel()
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON stdout logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
