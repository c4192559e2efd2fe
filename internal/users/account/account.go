// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account owns the user record and the administrative operations on it.

Accounts are created on first sign-in by the auth package. After that only an
administrator changes a user's role or ban flags, and never their own.

# Ban Levels

  - Soft ban (Banned): the user keeps reading but every interaction is refused.
  - Hard ban (BannedTotal): every request except logout is refused.

A hard ban always takes precedence when both flags are set.
*/
package account

import (
	"time"

	"github.com/taibuivan/ascender/internal/platform/sec"
)

// # Core Entities

// User is a registered account.
type User struct {
	ID                string     `json:"id"` // UUIDv7
	ExternalID        string     `json:"-"`  // e.g. google_<sub>
	Name              *string    `json:"name,omitempty"`
	Email             *string    `json:"email,omitempty"`
	DisplayName       *string    `json:"display_name,omitempty"`
	AvatarURL         *string    `json:"avatar_url,omitempty"`
	Role              sec.Role   `json:"role"`
	Banned            bool       `json:"banned"`
	BannedTotal       bool       `json:"banned_total"`
	LastRoleRequestAt *time.Time `json:"last_role_request_at,omitempty"`
	LastSignedIn      time.Time  `json:"last_signed_in"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Viewer converts the account into the per-request capability.
func (user *User) Viewer() *sec.Viewer {
	return &sec.Viewer{
		UserID:            user.ID,
		ExternalID:        user.ExternalID,
		Role:              user.Role,
		Banned:            user.Banned,
		BannedTotal:       user.BannedTotal,
		LastRoleRequestAt: user.LastRoleRequestAt,
	}
}

// # Search & Filtering

// Filter holds the admin user search parameters.
type Filter struct {
	// Search matches the id exactly when it is a UUID, otherwise the name.
	Search string
	Role   sec.Role
}

// PageSize is the fixed page size of the admin user list.
const PageSize = 30

// # Field Identifiers

const (
	FieldRole        = "role"
	FieldSearch      = "search"
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"
)
