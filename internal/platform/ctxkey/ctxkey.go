// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// An unexported key type keeps these values from colliding with keys set by
// third-party packages, since [context.Context] compares both value and type.
package ctxkey

type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyViewer is the context key for the resolved [*sec.Viewer].
	KeyViewer key = "viewer"

	// KeyClientHash is the context key for the keyed digest of the client IP.
	KeyClientHash key = "client_hash"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
