// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: global per-IP token bucket settings.
  - Sessions: cookie name and lifetime.
  - Moderation: caps and cooldowns shared by several services.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "ascender-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// GlobalRateLimitPerMinute is the sustained request budget per client IP.
	GlobalRateLimitPerMinute = 300

	// GlobalRateLimitBurst lets page loads fan out without tripping the limiter.
	GlobalRateLimitBurst = 60

	// RateLimitCleanupInterval is how often idle IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions

const (
	// SessionCookieName carries the opaque session id.
	SessionCookieName = "asc_session"

	// SessionTTL is the lifetime of a session and of its cookie.
	SessionTTL = 30 * 24 * time.Hour

	// IdentityProviderGoogle prefixes external ids of Google accounts.
	IdentityProviderGoogle = "google"
)

// # Moderation

const (
	// ApprenticePendingChapterCap bounds the review queue of one apprentice.
	ApprenticePendingChapterCap = 10

	// RoleRequestCooldown is the minimum time between two role requests.
	RoleRequestCooldown = 10 * 24 * time.Hour

	// NotificationListLimit is how many notifications the inbox shows.
	NotificationListLimit = 20

	// WeeklyResetInterval is how often weekly view counters start over.
	WeeklyResetInterval = 7 * 24 * time.Hour

	// PublicLinkTelegram is the key of the community link sent to new team members.
	PublicLinkTelegram = "telegram"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
