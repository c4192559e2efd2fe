// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ascender/internal/platform/ctxkey"
	"github.com/taibuivan/ascender/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithViewer attaches the resolved viewer. A nil viewer is stored as anonymous.
func WithViewer(ctx context.Context, viewer *sec.Viewer) context.Context {
	return context.WithValue(ctx, ctxkey.KeyViewer, viewer)
}

// GetViewer returns the request's viewer, or nil for anonymous visitors.
func GetViewer(ctx context.Context) *sec.Viewer {
	viewer, _ := ctx.Value(ctxkey.KeyViewer).(*sec.Viewer)
	return viewer
}

// WithClientHash attaches the hashed client IP.
func WithClientHash(ctx context.Context, hash string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyClientHash, hash)
}

// GetClientHash returns the hashed client IP, or "unknown" when absent.
func GetClientHash(ctx context.Context) string {
	hash, _ := ctx.Value(ctxkey.KeyClientHash).(string)
	if hash == "" {
		return "unknown"
	}
	return hash
}
