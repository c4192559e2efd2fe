// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// Recorder is what other services depend on to write the log.
type Recorder interface {
	Record(context context.Context, actor *sec.Viewer, action Action, targetType, targetID, detail string)
}

// Service writes and reads the audit log.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new audit [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// NewEntry builds an entry stamped with a fresh id and the current time.
func NewEntry(actor *sec.Viewer, action Action, targetType, targetID, detail string, now time.Time) *Entry {
	entry := &Entry{
		ID:         uuid.New(),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
		CreatedAt:  now,
	}
	if actor != nil {
		entry.ActorID = actor.UserID
	}
	return entry
}

/*
Record appends one entry after the audited mutation has been committed.

A failed write is logged and swallowed; the mutation it describes stands.
*/
func (service *Service) Record(context context.Context, actor *sec.Viewer, action Action, targetType, targetID, detail string) {
	entry := NewEntry(actor, action, targetType, targetID, detail, service.now())
	if err := service.repo.Append(context, entry); err != nil {
		service.logger.ErrorContext(context, "audit_write_failed",
			slog.String("action", string(action)),
			slog.String("target_type", targetType),
			slog.String("target_id", targetID),
			slog.Any("error", err),
		)
		return
	}

	service.logger.InfoContext(context, "audit_recorded",
		slog.String("action", string(action)),
		slog.String("actor_id", entry.ActorID),
		slog.String("target_id", targetID),
	)
}

// List returns a page of the log to an administrator.
func (service *Service) List(context context.Context, viewer *sec.Viewer, limit, offset int) ([]*Entry, int, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, limit, offset)
}
