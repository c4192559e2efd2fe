// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/metrics"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// # Service Layer

// Service orchestrates the chapter workflow.
type Service struct {
	repo    Repository
	works   work.Finder
	limiter *ratelimit.Limiter
	audit   audit.Recorder
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService constructs a new chapter [Service]. metrics may be nil.
func NewService(repo Repository, works work.Finder, limiter *ratelimit.Limiter, recorder audit.Recorder, collector *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		works:   works,
		limiter: limiter,
		audit:   recorder,
		metrics: collector,
		logger:  logger,
	}
}

// Errors specific to chapter submission.
var (
	ErrNotWorkOwner = apperr.Forbidden("Only the work's owner can add chapters")
	ErrPendingCap   = apperr.Forbidden(fmt.Sprintf(
		"Apprentice translators can have at most %d chapters awaiting review", constants.ApprenticePendingChapterCap,
	))
)

// CreateInput is a chapter submission.
type CreateInput struct {
	Number   float64  `json:"number"`
	Title    *string  `json:"title"`
	Pages    []string `json:"pages"`
	PageKeys []string `json:"page_keys"`
}

func (input *CreateInput) validate() error {
	validator := &validate.Validator{}
	validator.Custom(FieldNumber, input.Number < 0, "Must not be negative")
	if input.Title != nil {
		validator.MaxLen(FieldTitle, *input.Title, 255)
	}
	validator.Count(FieldPages, len(input.Pages), 1, MaxPages)
	validator.URLs(FieldPages, input.Pages)
	validator.Count(FieldPageKeys, len(input.PageKeys), 1, MaxPages)
	for _, key := range input.PageKeys {
		validator.Required(FieldPageKeys, key)
	}
	return validator.Err()
}

// # Reading

/*
List returns the chapters of a visible work.

includeAll exposes pending and rejected chapters, and is honored only for
administrators and for a translator who owns the work.
*/
func (service *Service) List(context context.Context, viewer *sec.Viewer, workID string, includeAll bool) ([]*Chapter, error) {
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

	privileged := viewer.IsAdmin() || (viewer.IsTranslatorOrAbove() && viewer.Owns(parent.OwnerID))
	return service.repo.ListByWork(context, workID, includeAll && privileged)
}

// ListPending returns the admin review queue.
func (service *Service) ListPending(context context.Context, viewer *sec.Viewer, limit, offset int) ([]*Chapter, int, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, 0, err
	}
	return service.repo.ListPending(context, limit, offset)
}

// Get returns a chapter, hiding unpublished ones from everyone but their owner and administrators.
func (service *Service) Get(context context.Context, viewer *sec.Viewer, id string) (*Chapter, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Chapter")
	}

	chapter, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !chapter.Status.Approved() && !viewer.CanSeeUnpublished(chapter.OwnerID) {
		return nil, apperr.NotFound("Chapter")
	}
	return chapter, nil
}

// # Writing

/*
Create submits a chapter under a work.

Order of checks:
 1. Interaction guard and translator role.
 2. Input shape.
 3. The work exists and the viewer owns it (administrators bypass ownership).
 4. create_chapter quota.
 5. Pending cap for apprentices, before anything is written.
*/
func (service *Service) Create(context context.Context, viewer *sec.Viewer, workID string, input CreateInput) (*Chapter, error) {
	if err := sec.CanInteract(viewer); err != nil {
		return nil, err
	}
	if err := sec.RequireTranslator(viewer); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if !uuid.Valid(workID) {
		return nil, apperr.NotFound("Work")
	}

	parent, err := service.works.FindByID(context, workID)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(parent.OwnerID) && !viewer.IsAdmin() {
		return nil, ErrNotWorkOwner
	}

	if err := service.limiter.Check(context, ratelimit.CreateChapter, viewer.UserID); err != nil {
		return nil, err
	}

	if viewer.Role == sec.RoleApprenticeTranslator {
		pending, err := service.repo.CountPendingByOwner(context, viewer.UserID)
		if err != nil {
			return nil, err
		}
		if pending >= constants.ApprenticePendingChapterCap {
			return nil, ErrPendingCap
		}
	}

	chapter := &Chapter{
		ID:       uuid.New(),
		WorkID:   parent.ID,
		OwnerID:  viewer.UserID,
		Number:   input.Number,
		Title:    input.Title,
		Pages:    input.Pages,
		PageKeys: input.PageKeys,
		Status:   moderation.InitialStatus(viewer.Role),
	}

	if err := service.repo.Create(context, chapter); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("work_id", chapter.WorkID),
		slog.String("status", string(chapter.Status)),
		slog.Int("pages", len(chapter.Pages)),
	)
	return chapter, nil
}

// Review records an administrator's decision on a chapter.
func (service *Service) Review(context context.Context, viewer *sec.Viewer, id, rawStatus string) (*Chapter, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, err
	}

	status, err := moderation.ParseDecision(rawStatus)
	if err != nil {
		return nil, err
	}
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Chapter")
	}

	chapter, err := service.repo.UpdateStatus(context, id, status)
	if err != nil {
		return nil, err
	}

	action := audit.ActionApproveChapter
	if status == moderation.StatusRejected {
		action = audit.ActionRejectChapter
	}
	service.audit.Record(context, viewer, action, audit.TargetChapter, chapter.ID, fmt.Sprintf("chapter %g of work %s", chapter.Number, chapter.WorkID))
	service.metrics.ModerationTransition("chapter", string(status))

	return chapter, nil
}

// IncrementViews counts one view per client per hour; repeats are skipped.
func (service *Service) IncrementViews(context context.Context, id, clientHash string) (*ViewResult, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Chapter")
	}

	decision := service.limiter.Allow(context, ratelimit.View, "chapter:"+clientHash+":"+id)
	if !decision.Allowed {
		service.metrics.ViewIncrement("chapter", true)
		return &ViewResult{Skipped: true}, nil
	}

	if err := service.repo.IncrementViews(context, id); err != nil {
		return nil, err
	}

	service.metrics.ViewIncrement("chapter", false)
	return &ViewResult{Skipped: false}, nil
}
