// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth signs users in with an external identity provider and manages
their server-side sessions.

# Session Model

A session is a random 256-bit id (64 hex characters) stored in the
asc_session cookie and in users.session. It lives 30 days. Expired rows are
deleted lazily when presented and periodically by [Service.RunSessionCleanup].

The package also implements [middleware.ViewerResolver], turning a cookie
into the per-request [sec.Viewer].
*/
package auth

import "time"

// Session binds an opaque token to a user.
type Session struct {
	ID         string    `json:"-"`
	UserID     string    `json:"user_id"`
	ExternalID string    `json:"-"`
	IPHash     string    `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Expired reports whether the session is no longer valid at now.
func (session *Session) Expired(now time.Time) bool {
	return !now.Before(session.ExpiresAt)
}

const (
	FieldCredential  = "credential"
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"
)
