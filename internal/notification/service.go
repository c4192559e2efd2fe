// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// Service implements the inbox operations of the current user.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new notification [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the viewer's latest notifications.
func (service *Service) List(context context.Context, viewer *sec.Viewer) ([]*Notification, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return nil, err
	}
	return service.repo.ListLatest(context, viewer.UserID, ListLimit)
}

// UnreadCount returns the number of unread notifications of the viewer.
func (service *Service) UnreadCount(context context.Context, viewer *sec.Viewer) (int, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return 0, err
	}
	return service.repo.CountUnread(context, viewer.UserID)
}

// MarkRead marks one of the viewer's notifications as read.
func (service *Service) MarkRead(context context.Context, viewer *sec.Viewer, id string) error {
	if err := sec.RequireUser(viewer); err != nil {
		return err
	}
	if !uuid.Valid(id) {
		return apperr.NotFound("Notification")
	}
	return service.repo.MarkRead(context, id, viewer.UserID)
}

// MarkAllRead marks every notification of the viewer as read.
func (service *Service) MarkAllRead(context context.Context, viewer *sec.Viewer) (int64, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return 0, err
	}

	updated, err := service.repo.MarkAllRead(context, viewer.UserID)
	if err != nil {
		return 0, err
	}

	service.logger.DebugContext(context, "notifications_marked_read",
		slog.String("user_id", viewer.UserID),
		slog.Int64("updated", updated),
	)
	return updated, nil
}
