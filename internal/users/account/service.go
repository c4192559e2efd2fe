// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// # Service Layer

// Service implements the administrative user operations.
type Service struct {
	repo   Repository
	audit  audit.Recorder
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: recorder, logger: logger}
}

// Errors specific to account administration.
var (
	ErrSelfRoleChange  = apperr.Forbidden("You cannot change your own role")
	ErrSelfBan         = apperr.Forbidden("You cannot ban yourself")
	ErrBanSuperAdmin   = apperr.Forbidden("The super administrator cannot be banned")
	ErrGrantAdmin      = apperr.Forbidden("Only the super administrator can grant the admin role")
	ErrGrantSuperAdmin = apperr.Forbidden("The super admin role cannot be granted")
	ErrTouchSuperAdmin = apperr.Forbidden("The super administrator's role cannot be changed")
	ErrTouchAdmin      = apperr.Forbidden("Only the super administrator can change another admin's role")
)

/*
List returns a page of users to an administrator.

Returns:
  - []*User: Matching accounts, newest first
  - int: Total matching count
  - error: ErrAdminOnly, validation or retrieval failures
*/
func (service *Service) List(context context.Context, viewer *sec.Viewer, filter Filter, limit, offset int) ([]*User, int, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, 0, err
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldSearch, filter.Search, 100)
	if filter.Role != "" {
		validator.OneOf(FieldRole, string(filter.Role), sec.RoleNames()...)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.List(context, filter, limit, offset)
}

/*
SetRole changes another user's role.

# Rules

  - Only administrators may call it, and never on themselves.
  - super_admin is never grantable, and the super admin's role never changes.
  - Granting admin, or changing an existing admin, requires the super admin.
*/
func (service *Service) SetRole(context context.Context, viewer *sec.Viewer, targetID string, role sec.Role) (*User, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, validate.RequiredError(FieldRole, "Must be one of: "+strings.Join(sec.RoleNames(), ", "))
	}
	if targetID == viewer.UserID {
		return nil, ErrSelfRoleChange
	}
	if role == sec.RoleSuperAdmin {
		return nil, ErrGrantSuperAdmin
	}
	if role == sec.RoleAdmin && !viewer.IsSuperAdmin() {
		return nil, ErrGrantAdmin
	}

	target, err := service.find(context, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role.IsSuperAdmin() {
		return nil, ErrTouchSuperAdmin
	}
	if target.Role.IsAdmin() && !viewer.IsSuperAdmin() {
		return nil, ErrTouchAdmin
	}

	updated, err := service.repo.UpdateRole(context, targetID, role)
	if err != nil {
		return nil, err
	}

	service.audit.Record(context, viewer, audit.ActionChangeRole, audit.TargetUser, targetID, fmt.Sprintf("new role: %s", role))
	service.logger.InfoContext(context, "user_role_changed",
		slog.String("user_id", targetID),
		slog.String("from", string(target.Role)),
		slog.String("to", string(role)),
	)
	return updated, nil
}

// BanInput is the requested ban state. Total without Banned is treated as an unban.
type BanInput struct {
	Banned bool `json:"banned"`
	Total  bool `json:"total"`
}

/*
SetBan applies a soft ban, a hard ban or lifts both.

Unbanning always clears both flags. The super admin cannot be banned and
nobody can ban themselves.
*/
func (service *Service) SetBan(context context.Context, viewer *sec.Viewer, targetID string, input BanInput) (*User, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, err
	}
	if targetID == viewer.UserID {
		return nil, ErrSelfBan
	}

	target, err := service.find(context, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role.IsSuperAdmin() {
		return nil, ErrBanSuperAdmin
	}

	banned, total := input.Banned, input.Banned && input.Total
	updated, err := service.repo.UpdateBan(context, targetID, banned, total)
	if err != nil {
		return nil, err
	}

	action := audit.ActionUnbanUser
	switch {
	case total:
		action = audit.ActionBanTotal
	case banned:
		action = audit.ActionBanSoft
	}

	service.audit.Record(context, viewer, action, audit.TargetUser, targetID, "")
	service.logger.WarnContext(context, "user_ban_changed",
		slog.String("user_id", targetID),
		slog.String("action", string(action)),
	)
	return updated, nil
}

func (service *Service) find(context context.Context, id string) (*User, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("User")
	}
	return service.repo.FindByID(context, id)
}
