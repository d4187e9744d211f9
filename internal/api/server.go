// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nvtphong/fabula/internal/admin"
	"github.com/nvtphong/fabula/internal/ads"
	"github.com/nvtphong/fabula/internal/auth"
	"github.com/nvtphong/fabula/internal/core/book"
	"github.com/nvtphong/fabula/internal/core/chapter"
	"github.com/nvtphong/fabula/internal/core/tag"
	"github.com/nvtphong/fabula/internal/engagement"
	"github.com/nvtphong/fabula/internal/library"
	"github.com/nvtphong/fabula/internal/platform/config"
	"github.com/nvtphong/fabula/internal/platform/constants"
	"github.com/nvtphong/fabula/internal/platform/middleware"
	"github.com/nvtphong/fabula/internal/social/comment"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles identity routes (register, login, sessions, profile).
	Auth *auth.Handler

	// Book handles catalogue discovery and admin book management.
	Book *book.Handler

	// Chapter handles reading navigation and admin chapter management.
	Chapter *chapter.Handler

	// Tag exposes the tag vocabulary.
	Tag *tag.Handler

	// Engagement handles likes, favorites and ratings.
	Engagement *engagement.Handler

	// Comment handles discussion threads.
	Comment *comment.Handler

	// Library handles per-reader progress tracking.
	Library *library.Handler

	// Ads handles promotional placements.
	Ads *ads.Handler

	// Admin handles the operator console and reader feedback.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain handlers register their own route groups under the versioned
	// prefix; several domains span more than one top-level path.
	r.Route("/api/v1", func(api chi.Router) {
		h.Auth.RegisterRoutes(api)
		h.Book.RegisterRoutes(api)
		h.Chapter.RegisterRoutes(api)
		h.Tag.RegisterRoutes(api)
		h.Engagement.RegisterRoutes(api)
		h.Comment.RegisterRoutes(api)
		h.Library.RegisterRoutes(api)
		h.Ads.RegisterRoutes(api)
		h.Admin.RegisterRoutes(api)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
