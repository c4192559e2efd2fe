// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/taibuivan/ascender/internal/core/chapter"
	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/library/favorite"
	"github.com/taibuivan/ascender/internal/library/history"
	"github.com/taibuivan/ascender/internal/media/upload"
	"github.com/taibuivan/ascender/internal/moderation/report"
	"github.com/taibuivan/ascender/internal/moderation/rolerequest"
	"github.com/taibuivan/ascender/internal/notification"
	"github.com/taibuivan/ascender/internal/platform/config"
	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/metrics"
	"github.com/taibuivan/ascender/internal/platform/middleware"
	"github.com/taibuivan/ascender/internal/social/comment"
	"github.com/taibuivan/ascender/internal/social/like"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/links"
	"github.com/taibuivan/ascender/internal/system/stats"
	"github.com/taibuivan/ascender/internal/users/account"
	"github.com/taibuivan/ascender/internal/users/auth"
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
type Handlers struct {
	Health *HealthHandler

	Auth    *auth.Handler
	Account *account.Handler

	Work    *work.Handler
	Chapter *chapter.Handler

	Comment *comment.Handler
	Like    *like.Handler

	Favorite *favorite.Handler
	History  *history.Handler

	Report      *report.Handler
	RoleRequest *rolerequest.Handler

	Notification *notification.Handler
	Upload       *upload.Handler

	Audit *audit.Handler
	Stats *stats.Handler
	Links *links.Handler
}

// Dependencies are the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	// Resolver turns the session cookie into a viewer.
	Resolver middleware.ViewerResolver

	// HashIP keys client addresses for rate limiting and view dedupe.
	HashIP func(ip string) string

	// Global throttles every client before any per-action limit.
	Global *middleware.GlobalLimiter

	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.Metrics
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(deps.Metrics.Instrument)
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.ClientHash(deps.HashIP))
	if deps.Global != nil {
		r.Use(deps.Global.Handler)
	}
	r.Use(middleware.Authenticate(deps.Resolver))
	r.Use(middleware.DenyHardBanned("/api/v1/auth/logout"))

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Health.Liveness)
	r.Get("/ready", h.Health.Readiness)
	if cfg.MetricsEnabled && deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Everything nested under a work shares one subrouter and the {id} param.
		api.Route("/works", func(router chi.Router) {
			h.Work.RegisterRoutes(router)
			h.Chapter.RegisterWorkRoutes(router)
			h.Comment.RegisterWorkRoutes(router)
			h.Like.RegisterWorkRoutes(router)
		})

		h.Chapter.RegisterRoutes(api)
		h.Comment.RegisterRoutes(api)
		h.Favorite.RegisterRoutes(api)
		h.History.RegisterRoutes(api)
		h.Report.RegisterRoutes(api)
		h.RoleRequest.RegisterRoutes(api)
		h.Notification.RegisterRoutes(api)
		h.Upload.RegisterRoutes(api)

		h.Account.RegisterRoutes(api)
		h.Audit.RegisterRoutes(api)
		h.Stats.RegisterRoutes(api)
		h.Links.RegisterRoutes(api)
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

// Router exposes the mux for in-process tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
