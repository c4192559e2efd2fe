// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/ascender/internal/users/account"
)

// SessionRepository defines the data access contract for sessions.
//
// Accounts are owned by the account package; this repository only joins them
// when resolving a session.
type SessionRepository interface {
	// Create persists a new session.
	Create(context context.Context, session *Session) error

	// FindWithUser returns the session and its user in one round trip.
	//
	// Returns [apperr.NotFound] if the session does not exist.
	FindWithUser(context context.Context, id string) (*Session, *account.User, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(context context.Context, id string) error

	// DeleteExpired removes every session that expired before now and returns how many.
	DeleteExpired(context context.Context, now time.Time) (int64, error)
}
