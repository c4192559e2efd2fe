// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Ascender HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and, when configured, Redis.
//  4. Run database migrations (idempotent).
//  5. Wire services and HTTP handlers.
//  6. Start background jobs and the HTTP server with graceful shutdown.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/ascender/internal/api"
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
	"github.com/taibuivan/ascender/internal/platform/migration"
	pgstore "github.com/taibuivan/ascender/internal/platform/postgres"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	redisstore "github.com/taibuivan/ascender/internal/platform/redis"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/social/comment"
	"github.com/taibuivan/ascender/internal/social/like"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/links"
	"github.com/taibuivan/ascender/internal/system/stats"
	"github.com/taibuivan/ascender/internal/users/account"
	"github.com/taibuivan/ascender/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

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
		slog.String("rate_limit_backend", cfg.RateLimitBackend),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if cfg.MigrateOnStart {
		_, err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
		must(log, err, "run migrations")
	}

	// Background jobs stop with this context.
	jobs, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	// ── 5. Platform ───────────────────────────────────────────────────────
	collector := metrics.New()

	var store ratelimit.Store
	if cfg.RateLimitBackend == "redis" {
		store = ratelimit.NewRedisStore(rdb)
	} else {
		memory := ratelimit.NewMemoryStore()
		go memory.Run(jobs, ratelimit.SweepInterval)
		store = memory
	}
	limiter := ratelimit.New(store,
		ratelimit.WithLogger(log),
		ratelimit.WithDenyHook(collector.RateLimited),
	)

	global := middleware.NewGlobalLimiter(constants.GlobalRateLimitPerMinute, constants.GlobalRateLimitBurst)
	go global.Run(jobs)

	hasher := sec.NewIPHasher(cfg.SessionSecret)

	var verifier auth.IdentityVerifier
	if cfg.IdentityPublicKeyPath != "" {
		identityVerifier, err := sec.LoadIdentityVerifier(cfg.IdentityPublicKeyPath, cfg.IdentityIssuer, cfg.IdentityAudience)
		must(log, err, "load identity verifier")
		verifier = identityVerifier
	} else {
		log.Warn("identity_verifier_disabled")
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	auditService := audit.NewService(audit.NewPostgresRepository(pool), log)
	linkService := links.NewService(links.NewPostgresRepository(pool), auditService, log)

	accountRepository := account.NewPostgresRepository(pool)
	accountService := account.NewService(accountRepository, auditService, log)
	authService := auth.NewService(accountRepository, auth.NewSessionRepository(pool), verifier, limiter,
		auth.Config{OwnerExternalID: cfg.OwnerExternalID}, log)

	workRepository := work.NewPostgresRepository(pool)
	workService := work.NewService(workRepository, limiter, auditService, collector, log)
	chapterService := chapter.NewService(chapter.NewPostgresRepository(pool), workRepository, limiter, auditService, collector, log)

	commentService := comment.NewService(comment.NewPostgresRepository(pool), workRepository, limiter, auditService, log)
	likeService := like.NewService(like.NewPostgresRepository(pool), workRepository)
	favoriteService := favorite.NewService(favorite.NewPostgresRepository(pool), workRepository)
	historyService := history.NewService(history.NewPostgresRepository(pool))

	reportService := report.NewService(report.NewPostgresRepository(pool), limiter, auditService, log)
	roleRequestService := rolerequest.NewService(rolerequest.NewPostgresRepository(pool), linkService, collector, log)
	notificationService := notification.NewService(notification.NewPostgresRepository(pool), log)

	// Object storage is an external collaborator; without one, uploads answer 503.
	uploadService := upload.NewService(nil, limiter, log)

	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Health:       api.NewHealthHandler(health, log),
		Auth:         auth.NewHandler(authService, cfg.IsProduction()),
		Account:      account.NewHandler(accountService),
		Work:         work.NewHandler(workService),
		Chapter:      chapter.NewHandler(chapterService),
		Comment:      comment.NewHandler(commentService),
		Like:         like.NewHandler(likeService),
		Favorite:     favorite.NewHandler(favoriteService),
		History:      history.NewHandler(historyService),
		Report:       report.NewHandler(reportService),
		RoleRequest:  rolerequest.NewHandler(roleRequestService),
		Notification: notification.NewHandler(notificationService),
		Upload:       upload.NewHandler(uploadService),
		Audit:        audit.NewHandler(auditService),
		Stats:        stats.NewHandler(stats.NewService(stats.NewPostgresRepository(pool))),
		Links:        links.NewHandler(linkService),
	}

	server := api.NewServer(cfg, log, api.Dependencies{
		Resolver: authService,
		HashIP:   hasher.Hash,
		Global:   global,
		Metrics:  collector,
	}, handlers)

	// ── 8. Background Jobs ────────────────────────────────────────────────
	go authService.RunSessionCleanup(jobs, cfg.SessionCleanupInterval)
	if cfg.WeeklyResetEnabled {
		go workService.RunWeeklyReset(jobs, constants.WeeklyResetInterval)
	}

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Error("server_startup_error", slog.Any("error", err))
	}

	stopJobs()

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "ascender"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
