// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"time"

	"github.com/taibuivan/ascender/internal/platform/apperr"
)

// Viewer is the capability resolved once per request from the session cookie.
//
// A nil *Viewer is the anonymous visitor. Session lookup failures always
// resolve to nil, so every guard below treats nil as "not logged in".
type Viewer struct {
	UserID            string
	ExternalID        string
	Role              Role
	Banned            bool
	BannedTotal       bool
	LastRoleRequestAt *time.Time
}

// Authenticated reports whether the viewer carries a user.
func (v *Viewer) Authenticated() bool { return v != nil && v.UserID != "" }

// IsAdmin is nil-safe.
func (v *Viewer) IsAdmin() bool { return v.Authenticated() && v.Role.IsAdmin() }

// IsSuperAdmin is nil-safe.
func (v *Viewer) IsSuperAdmin() bool { return v.Authenticated() && v.Role.IsSuperAdmin() }

// IsTranslatorOrAbove is nil-safe.
func (v *Viewer) IsTranslatorOrAbove() bool {
	return v.Authenticated() && v.Role.IsTranslatorOrAbove()
}

// Owns reports whether the viewer is the given owner.
func (v *Viewer) Owns(ownerID string) bool {
	return v.Authenticated() && ownerID != "" && v.UserID == ownerID
}

// CanSeeUnpublished reports whether content owned by ownerID is visible to the
// viewer regardless of its moderation status.
func (v *Viewer) CanSeeUnpublished(ownerID string) bool {
	return v.IsAdmin() || v.Owns(ownerID)
}

// # Guards

// Errors returned by the guards. They are shared values so callers and tests can
// compare messages without string literals.
var (
	ErrLoginRequired  = apperr.Unauthorized("You must be logged in")
	ErrHardBanned     = apperr.Forbidden("Account permanently suspended")
	ErrSoftBanned     = apperr.Forbidden("Interaction blocked: your account is restricted")
	ErrAdminOnly      = apperr.Forbidden("Administrators only")
	ErrSuperAdminOnly = apperr.Forbidden("Super administrator only")
	ErrTranslatorOnly = apperr.Forbidden("Translators only")
)

// RequireUser fails with Unauthorized for anonymous viewers.
func RequireUser(v *Viewer) error {
	if !v.Authenticated() {
		return ErrLoginRequired
	}
	return nil
}

// CanInteract gates every write a community member performs (works, chapters,
// comments, likes, favorites, uploads). Hard ban is checked before soft ban.
func CanInteract(v *Viewer) error {
	if err := RequireUser(v); err != nil {
		return err
	}
	if v.BannedTotal {
		return ErrHardBanned
	}
	if v.Banned {
		return ErrSoftBanned
	}
	return nil
}

// NotHardBanned passes soft-banned users; used by reports and avatar uploads.
func NotHardBanned(v *Viewer) error {
	if err := RequireUser(v); err != nil {
		return err
	}
	if v.BannedTotal {
		return ErrHardBanned
	}
	return nil
}

// RequireTranslator requires an apprentice translator or above.
func RequireTranslator(v *Viewer) error {
	if err := RequireUser(v); err != nil {
		return err
	}
	if !v.Role.IsTranslatorOrAbove() {
		return ErrTranslatorOnly
	}
	return nil
}

// RequireAdmin requires an admin or super admin.
func RequireAdmin(v *Viewer) error {
	if err := RequireUser(v); err != nil {
		return err
	}
	if !v.Role.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// RequireSuperAdmin requires the super admin.
func RequireSuperAdmin(v *Viewer) error {
	if err := RequireUser(v); err != nil {
		return err
	}
	if !v.Role.IsSuperAdmin() {
		return ErrSuperAdminOnly
	}
	return nil
}
