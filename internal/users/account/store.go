// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/ascender/internal/platform/sec"
)

// # Account Data Access

// Repository defines the persistence contract for user accounts.
type Repository interface {

	/*
		FindByID retrieves a user by id.

		Returns:
		  - *User: Loaded account
		  - error: apperr.NotFound when absent
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		UpsertByExternalID creates the account on first sign-in, or refreshes
		name, email and last sign-in on later ones. The user is rehydrated from
		the stored row.
	*/
	UpsertByExternalID(context context.Context, user *User) error

	/*
		UpdateProfile sets the self-service profile fields. Empty strings clear them.
	*/
	UpdateProfile(context context.Context, id, displayName, avatarURL string) (*User, error)

	/*
		List returns a filtered page of users, newest first, with the total count.
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error)

	/*
		UpdateRole replaces a user's role.
	*/
	UpdateRole(context context.Context, id string, role sec.Role) (*User, error)

	/*
		UpdateBan replaces both ban flags.
	*/
	UpdateBan(context context.Context, id string, banned, bannedTotal bool) (*User, error)
}
