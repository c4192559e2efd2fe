// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ratelimit implements the per-action fixed-window limiter.

Every throttled action (commenting, reporting, publishing, uploading, logging
in, counting a view) is a [Profile]: a name plus a (max, window) pair. Counters
live under the composite key "<profile>:<identity>", so a user throttled on
comments is never throttled on logins, and every profile goes through the same
algorithm:

  - no entry, or the window has elapsed: reset to count=1 and allow
  - count < max: increment and allow
  - otherwise: deny and report the time left until the window resets

Two stores implement the algorithm: [MemoryStore] for a single process and
[RedisStore] when several API replicas must share counters.
*/
package ratelimit

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/taibuivan/ascender/internal/platform/apperr"
)

// Profile is a named (max, window) pair.
type Profile struct {
	Name   string
	Max    int
	Window time.Duration
}

// Key builds the counter key for an identity under this profile.
func (p Profile) Key(identity string) string {
	return p.Name + ":" + identity
}

// Built-in profiles.
var (
	Comment       = Profile{Name: "comment", Max: 10, Window: time.Minute}
	Report        = Profile{Name: "report", Max: 3, Window: time.Hour}
	CreateWork    = Profile{Name: "create_work", Max: 3, Window: 24 * time.Hour}
	CreateChapter = Profile{Name: "create_chapter", Max: 10, Window: time.Hour}
	Upload        = Profile{Name: "upload", Max: 30, Window: time.Hour}
	Login         = Profile{Name: "login", Max: 10, Window: 15 * time.Minute}
	View          = Profile{Name: "view", Max: 1, Window: time.Hour}
)

// SweepInterval is how often elapsed entries are dropped from memory.
const SweepInterval = 5 * time.Minute

// Decision is the outcome of one check.
type Decision struct {
	Allowed bool
	// RetryAfter is the time left in the current window when denied.
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up, never below one second on denial.
func (d Decision) RetryAfterSeconds() int {
	if d.Allowed {
		return 0
	}
	seconds := int(math.Ceil(d.RetryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// Store performs one atomic check-and-increment.
type Store interface {
	Take(ctx context.Context, key string, max int, window time.Duration) (Decision, error)
}

// Option customizes a [Limiter].
type Option func(*Limiter)

// WithLogger sets the logger used when the store fails.
func WithLogger(logger *slog.Logger) Option {
	return func(limiter *Limiter) { limiter.logger = logger }
}

// WithDenyHook registers a callback invoked with the profile name on every denial.
func WithDenyHook(hook func(profile string)) Option {
	return func(limiter *Limiter) { limiter.onDeny = hook }
}

// Limiter applies profiles against a [Store].
type Limiter struct {
	store  Store
	logger *slog.Logger
	onDeny func(profile string)
}

// New creates a limiter backed by store.
func New(store Store, options ...Option) *Limiter {
	limiter := &Limiter{store: store, logger: slog.Default()}
	for _, option := range options {
		option(limiter)
	}
	return limiter
}

// Allow checks and consumes one slot. Store failures fail open.
func (limiter *Limiter) Allow(context context.Context, profile Profile, identity string) Decision {
	decision, err := limiter.store.Take(context, profile.Key(identity), profile.Max, profile.Window)
	if err != nil {
		limiter.logger.WarnContext(context, "rate_limit_store_failed",
			slog.String("profile", profile.Name),
			slog.Any("error", err),
		)
		return Decision{Allowed: true}
	}

	if !decision.Allowed && limiter.onDeny != nil {
		limiter.onDeny(profile.Name)
	}
	return decision
}

// Check is Allow expressed as an error: nil when allowed, a RATE_LIMITED
// [apperr.AppError] carrying the whole-second retry hint otherwise.
func (limiter *Limiter) Check(context context.Context, profile Profile, identity string) error {
	decision := limiter.Allow(context, profile, identity)
	if decision.Allowed {
		return nil
	}
	return apperr.RateLimited(time.Duration(decision.RetryAfterSeconds()) * time.Second)
}
