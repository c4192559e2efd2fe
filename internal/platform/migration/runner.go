// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate before the server accepts traffic.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty means a previous run stopped halfway; an operator has to force the version.
var ErrDirty = errors.New("migration: database is dirty")

// Result describes one run. From and To are equal when nothing was pending.
type Result struct {
	From uint
	To   uint
}

// Applied reports whether the run changed the schema.
func (result Result) Applied() bool { return result.From != result.To }

// RunUp applies every pending migration found under migrationsPath.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) (Result, error) {
	migrator, err := migrate.New("file://"+migrationsPath, pgx5URL(dsn))
	if err != nil {
		return Result{}, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, databaseError := migrator.Close()
		if err := errors.Join(sourceError, databaseError); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()
	migrator.Log = &slogAdapter{logger: logger}

	from, err := version(migrator)
	if err != nil {
		return Result{}, err
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return Result{From: from}, fmt.Errorf("migration: up failed: %w", err)
	}

	to, err := version(migrator)
	if err != nil {
		return Result{From: from}, err
	}

	result := Result{From: from, To: to}
	logger.Info("migrations_applied",
		slog.Uint64("from_version", uint64(result.From)),
		slog.Uint64("to_version", uint64(result.To)),
		slog.Bool("changed", result.Applied()),
	)
	return result, nil
}

// version treats an empty database as version 0.
func version(migrator *migrate.Migrate) (uint, error) {
	current, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return current, fmt.Errorf("%w at version %d", ErrDirty, current)
	}
	return current, nil
}

// pgx5URL rewrites postgres:// URLs to the scheme the pgx/v5 driver registers.
func pgx5URL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter forwards golang-migrate output at debug level.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter *slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug("migration_log", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (adapter *slogAdapter) Verbose() bool {
	return adapter.logger.Enabled(context.Background(), slog.LevelDebug)
}
