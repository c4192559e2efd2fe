// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// ErrDuplicate is returned when the reader already reported the chapter.
var ErrDuplicate = apperr.Conflict("You have already reported this chapter")

// Service implements the report workflow.
type Service struct {
	repo    Repository
	limiter *ratelimit.Limiter
	audit   audit.Recorder
	logger  *slog.Logger
}

func NewService(repo Repository, limiter *ratelimit.Limiter, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, limiter: limiter, audit: recorder, logger: logger}
}

/*
Create files a report. Soft-banned readers may still report; hard-banned may not.

Returns:
  - *Report: The stored report
  - error: ErrDuplicate, RATE_LIMITED, validation or NOT_FOUND when the chapter is not in the work
*/
func (service *Service) Create(context context.Context, viewer *sec.Viewer, input Input) (*Report, error) {
	if err := sec.NotHardBanned(viewer); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.UUID(FieldChapterID, input.ChapterID)
	validator.UUID(FieldWorkID, input.WorkID)
	validator.OneOf(FieldKind, string(input.Kind), KindNames()...)
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, MaxDescription)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.limiter.Check(context, ratelimit.Report, viewer.UserID); err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.New(),
		ChapterID:   input.ChapterID,
		WorkID:      input.WorkID,
		UserID:      viewer.UserID,
		Kind:        input.Kind,
		Description: input.Description,
	}
	if err := service.repo.Create(context, report); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "report_created",
		slog.String("report_id", report.ID),
		slog.String("chapter_id", report.ChapterID),
		slog.String("kind", string(report.Kind)),
	)
	return report, nil
}

// List returns reports to an administrator.
func (service *Service) List(context context.Context, viewer *sec.Viewer, resolved *bool, limit, offset int) ([]*Report, int, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, resolved, limit, offset)
}

// Resolve marks a report resolved or reopens it. Audited.
func (service *Service) Resolve(context context.Context, viewer *sec.Viewer, id string, resolved bool) (*Report, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, err
	}
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Report")
	}

	report, err := service.repo.SetResolved(context, id, resolved)
	if err != nil {
		return nil, err
	}

	service.audit.Record(context, viewer, audit.ActionResolveReport, audit.TargetReport, report.ID, fmt.Sprintf("resolved: %t", resolved))
	return report, nil
}
