// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// Service implements the comment use cases.
type Service struct {
	repo    Repository
	works   work.Finder
	limiter *ratelimit.Limiter
	audit   audit.Recorder
	logger  *slog.Logger
}

func NewService(repo Repository, works work.Finder, limiter *ratelimit.Limiter, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, works: works, limiter: limiter, audit: recorder, logger: logger}
}

// visibleWork resolves a work the viewer is allowed to see.
func (service *Service) visibleWork(context context.Context, viewer *sec.Viewer, workID string) (*work.Work, error) {
	if !uuid.Valid(workID) {
		return nil, apperr.NotFound("Work")
	}
	parent, err := service.works.FindByID(context, workID)
	if err != nil {
		return nil, err
	}
	if !parent.VisibleTo(viewer) {
		return nil, apperr.NotFound("Work")
	}
	return parent, nil
}

// List returns a page of live comments on a visible work.
func (service *Service) List(context context.Context, viewer *sec.Viewer, workID string, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.visibleWork(context, viewer, workID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByWork(context, workID, limit, offset)
}

/*
Create posts a comment.

Content is trimmed and must hold 1 to [MaxLength] characters. Subject to the
interaction guard and the comment quota.
*/
func (service *Service) Create(context context.Context, viewer *sec.Viewer, workID, content string) (*Comment, error) {
	if err := sec.CanInteract(viewer); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.MaxLen(FieldContent, content, MaxLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.visibleWork(context, viewer, workID); err != nil {
		return nil, err
	}
	if err := service.limiter.Check(context, ratelimit.Comment, viewer.UserID); err != nil {
		return nil, err
	}

	item := &Comment{
		ID:       uuid.New(),
		WorkID:   workID,
		AuthorID: viewer.UserID,
		Content:  content,
	}
	if err := service.repo.Create(context, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete soft deletes a comment. Administrators only; audited.
func (service *Service) Delete(context context.Context, viewer *sec.Viewer, id string) error {
	if err := sec.RequireAdmin(viewer); err != nil {
		return err
	}
	if !uuid.Valid(id) {
		return apperr.NotFound("Comment")
	}

	deleted, err := service.repo.SoftDelete(context, id)
	if err != nil {
		return err
	}

	service.audit.Record(context, viewer, audit.ActionDeleteComment, audit.TargetComment, deleted.ID, deleted.Content)
	service.logger.InfoContext(context, "comment_deleted",
		slog.String("comment_id", deleted.ID),
		slog.String("work_id", deleted.WorkID),
	)
	return nil
}
