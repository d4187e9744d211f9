// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

// Command api is the entry point for the Fabula HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/joho/godotenv"

	"github.com/nvtphong/fabula/internal/admin"
	"github.com/nvtphong/fabula/internal/ads"
	"github.com/nvtphong/fabula/internal/api"
	"github.com/nvtphong/fabula/internal/auth"
	"github.com/nvtphong/fabula/internal/core/book"
	"github.com/nvtphong/fabula/internal/core/chapter"
	"github.com/nvtphong/fabula/internal/core/tag"
	"github.com/nvtphong/fabula/internal/engagement"
	"github.com/nvtphong/fabula/internal/library"
	"github.com/nvtphong/fabula/internal/platform/config"
	"github.com/nvtphong/fabula/internal/platform/constants"
	"github.com/nvtphong/fabula/internal/platform/migration"
	pgstore "github.com/nvtphong/fabula/internal/platform/postgres"
	redisstore "github.com/nvtphong/fabula/internal/platform/redis"
	"github.com/nvtphong/fabula/internal/platform/sec"
	"github.com/nvtphong/fabula/internal/social/comment"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Fabula] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env file is optional; real deployments inject the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("dotenv_load_failed", slog.Any("error", err))
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	bookRepository := book.NewPostgresRepository(pool)
	bookService := book.NewService(bookRepository, nil, log)
	bookHandler := book.NewHandler(bookService, cfg.HomePageSize, cfg.CatalogPageSize)

	chapterRepository := chapter.NewPostgresRepository(pool)
	chapterService := chapter.NewService(chapterRepository, log)
	chapterHandler := chapter.NewHandler(chapterService)

	tagRepository := tag.NewPostgresRepository(pool)
	tagService := tag.NewService(tagRepository, log)
	tagHandler := tag.NewHandler(tagService)

	engagementRepository := engagement.NewPostgresRepository(pool)
	engagementService := engagement.NewService(engagementRepository, log)
	engagementHandler := engagement.NewHandler(engagementService)

	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository, log)
	commentHandler := comment.NewHandler(commentService)

	libraryRepository := library.NewPostgresRepository(pool)
	libraryService := library.NewService(libraryRepository, log)
	libraryHandler := library.NewHandler(libraryService)

	adsRepository := ads.NewPostgresRepository(pool)
	adsService := ads.NewService(adsRepository, log)
	adsHandler := ads.NewHandler(adsService)

	adminRepository := admin.NewPostgresRepository(pool)
	adminService := admin.NewService(adminRepository, log)
	adminHandler := admin.NewHandler(adminService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Book:       bookHandler,
		Chapter:    chapterHandler,
		Tag:        tagHandler,
		Engagement: engagementHandler,
		Comment:    commentHandler,
		Library:    libraryHandler,
		Ads:        adsHandler,
		Admin:      adminHandler,
	}

	// Process-lifetime context for the server's background routines; the
	// startup context above expires and must not be reused here.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
