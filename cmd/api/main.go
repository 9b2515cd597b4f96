// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

// Command api is the entry point for the DreamWeaver studio HTTP API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env autoloaded).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Load the identity token verifier.
//  7. Build the optional collaborators (object storage, Gemini, Stripe).
//  8. Wire catalog, studio and dashboard handlers.
//  9. Start HTTP server with graceful shutdown.
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

	_ "github.com/joho/godotenv/autoload"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/api"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/dashboard"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/integrations/billing"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/integrations/gemini"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/integrations/storage"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/config"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/constants"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/migration"
	pgstore "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/postgres"
	redisstore "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/redis"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/sec"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/studio"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
		slog.Bool("gemini_enabled", cfg.GeminiEnabled()),
		slog.Bool("billing_enabled", cfg.BillingEnabled()),
	)

	// Misconfiguration should fail fast rather than hang.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Background workers (rate limiter eviction) stop with rootCtx.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token verifier ─────────────────────────────────────────────────
	verifier, err := sec.LoadTokenVerifier(cfg.AuthPublicKeyPath, cfg.AuthIssuer, cfg.AuthAudience)
	must(log, err, "load token verifier")

	// ── 7. Collaborators ──────────────────────────────────────────────────
	var uploader style.PreviewUploader
	storageClient, err := storage.New(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	must(log, err, "initialize object storage")
	if storageClient != nil {
		uploader = storageClient
	}

	var generator studio.Generator
	if client := gemini.New(gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
	}); client != nil {
		generator = client
	}

	var balance studio.BalanceReader
	if client := billing.New(cfg.StripeSecretKey, cfg.StripeBaseURL); client != nil {
		balance = client
	}

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	defaultCache := catalog.NewRedisDefaultCache(rdb, cfg.DefaultCacheTTL, log)

	templateService := pagetemplate.NewService(pagetemplate.NewPostgresRepository(pool), defaultCache, log)
	styleService := style.NewService(style.NewPostgresRepository(pool), defaultCache, uploader, log)
	studioService := studio.NewService(generator, balance, log)

	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		PageTemplate: pagetemplate.NewHandler(templateService),
		Style:        style.NewHandler(styleService),
		Studio:       studio.NewHandler(studioService),
		Dashboard:    dashboard.NewHandler(dashboard.NewService(templateService, styleService)),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "dreamweaver"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is
// non-nil. It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
