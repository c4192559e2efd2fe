// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/users/account"
	"github.com/taibuivan/ascender/pkg/pointer"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// IdentityVerifier validates a credential issued by the identity provider.
// [*sec.IdentityVerifier] is the production implementation.
type IdentityVerifier interface {
	Verify(credential string) (*sec.Identity, error)
}

// Config carries the settings the service needs from the environment.
type Config struct {
	// OwnerExternalID is promoted to super admin on sign-in.
	OwnerExternalID string
}

// Service implements sign-in, sign-out, session resolution and profile edits.
type Service struct {
	accounts account.Repository
	sessions SessionRepository
	verifier IdentityVerifier
	limiter  *ratelimit.Limiter
	config   Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a new auth [Service]. verifier may be nil, in which
// case sign-in reports the provider as not configured.
func NewService(
	accounts account.Repository,
	sessions SessionRepository,
	verifier IdentityVerifier,
	limiter *ratelimit.Limiter,
	config Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		verifier: verifier,
		limiter:  limiter,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// ErrInvalidCredential hides why a credential was refused.
var ErrInvalidCredential = apperr.Unauthorized("Invalid sign-in credential")

// LoginResult is a freshly created session and its user.
type LoginResult struct {
	User    *account.User
	Session *Session
}

// # Sign-in

/*
LoginWithGoogle exchanges a Google ID token for a session.

# Flow

 1. Throttle by hashed client IP (login profile).
 2. Verify the ID token; any failure is a generic 401.
 3. Upsert the account by external id; the configured owner becomes super admin.
 4. Create a 30-day session bound to the hashed IP.
*/
func (service *Service) LoginWithGoogle(context context.Context, credential, clientHash string) (*LoginResult, error) {
	// ── 1. Throttling ─────────────────────────────────────────────────────

	if err := service.limiter.Check(context, ratelimit.Login, clientHash); err != nil {
		return nil, err
	}

	// ── 2. Identity Verification ─────────────────────────────────────────

	if err := (&validate.Validator{}).Required(FieldCredential, credential).Err(); err != nil {
		return nil, err
	}
	if service.verifier == nil {
		return nil, apperr.ServiceUnavailable("Sign-in is not configured")
	}

	identity, err := service.verifier.Verify(credential)
	if err != nil {
		service.logger.WarnContext(context, "identity_verification_failed", slog.Any("error", err))
		return nil, ErrInvalidCredential
	}

	// ── 3. Account Upsert ─────────────────────────────────────────────────

	externalID := identity.ExternalID(constants.IdentityProviderGoogle)
	role := sec.RoleReader
	if service.config.OwnerExternalID != "" && externalID == service.config.OwnerExternalID {
		role = sec.RoleSuperAdmin
	}

	user := &account.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Name:       pointer.NonZero(identity.Name),
		Email:      pointer.NonZero(identity.Email),
		AvatarURL:  pointer.NonZero(identity.AvatarURL),
		Role:       role,
	}
	if err := service.accounts.UpsertByExternalID(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_upsert_failed: %w", err)
	}

	// ── 4. Session Creation ───────────────────────────────────────────────

	token, err := sec.GenerateSecureToken(sec.SessionTokenBytes)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_failed: %w", err))
	}

	now := service.now()
	session := &Session{
		ID:         token,
		UserID:     user.ID,
		ExternalID: externalID,
		IPHash:     clientHash,
		ExpiresAt:  now.Add(constants.SessionTTL),
		CreatedAt:  now,
	}
	if err := service.sessions.Create(context, session); err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(context, "user_signed_in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return &LoginResult{User: user, Session: session}, nil
}

// Logout deletes the session behind the cookie value, if it looks like one.
func (service *Service) Logout(context context.Context, sessionID string) error {
	if !sec.IsSessionToken(sessionID) {
		return nil
	}
	if err := service.sessions.Delete(context, sessionID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// # Session Resolution

/*
ResolveViewer implements [middleware.ViewerResolver].

Missing and expired sessions resolve to nil (anonymous). An expired session is
deleted on the spot. Storage errors are returned so the middleware can log them
before falling back to anonymous.
*/
func (service *Service) ResolveViewer(context context.Context, sessionID string) (*sec.Viewer, error) {
	session, user, err := service.sessions.FindWithUser(context, sessionID)
	if dberr.IsNotFound(err) || apperr.HasCode(err, "NOT_FOUND") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(service.now()) {
		if err := service.sessions.Delete(context, session.ID); err != nil {
			service.logger.WarnContext(context, "expired_session_delete_failed", slog.Any("error", err))
		}
		return nil, nil
	}

	return user.Viewer(), nil
}

/*
PurgeExpiredSessions deletes every expired session.

Returns:
  - int64: Number of sessions removed
*/
func (service *Service) PurgeExpiredSessions(context context.Context) (int64, error) {
	return service.sessions.DeleteExpired(context, service.now())
}

// RunSessionCleanup purges expired sessions every interval until ctx is done.
func (service *Service) RunSessionCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := service.PurgeExpiredSessions(ctx)
			if err != nil {
				service.logger.ErrorContext(ctx, "session_cleanup_failed", slog.Any("error", err))
				continue
			}
			if removed > 0 {
				service.logger.InfoContext(ctx, "expired_sessions_purged", slog.Int64("removed", removed))
			}
		}
	}
}

// # Profile

// Me returns the viewer's account, or nil for anonymous visitors.
func (service *Service) Me(context context.Context, viewer *sec.Viewer) (*account.User, error) {
	if !viewer.Authenticated() {
		return nil, nil
	}
	return service.accounts.FindByID(context, viewer.UserID)
}

// ProfileInput holds the self-service profile fields. Empty strings clear them.
type ProfileInput struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// UpdateProfile changes the viewer's display name and avatar.
func (service *Service) UpdateProfile(context context.Context, viewer *sec.Viewer, input ProfileInput) (*account.User, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldDisplayName, input.DisplayName, 100)
	validator.OptionalURL(FieldAvatarURL, input.AvatarURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.accounts.UpdateProfile(context, viewer.UserID, input.DisplayName, input.AvatarURL)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", viewer.UserID))
	return user, nil
}
