// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/metrics"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/pkg/slug"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// # Service Layer

// Service implements the catalog use cases.
type Service struct {
	repo    Repository
	limiter *ratelimit.Limiter
	audit   audit.Recorder
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService constructs a new work [Service]. metrics may be nil.
func NewService(repo Repository, limiter *ratelimit.Limiter, recorder audit.Recorder, collector *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		limiter: limiter,
		audit:   recorder,
		metrics: collector,
		logger:  logger,
	}
}

// CreateInput holds the fields a translator submits.
type CreateInput struct {
	Title          string   `json:"title"`
	Synopsis       *string  `json:"synopsis"`
	Genres         []string `json:"genres"`
	CoverURL       *string  `json:"cover_url"`
	CoverKey       *string  `json:"cover_key"`
	OriginalAuthor *string  `json:"original_author"`
}

func (input *CreateInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.MaxLen(FieldTitle, input.Title, 200)
	if input.Synopsis != nil {
		validator.MaxLen(FieldSynopsis, *input.Synopsis, 5000)
	}
	validator.Count(FieldGenres, len(input.Genres), 0, 20)
	for _, genre := range input.Genres {
		validator.MaxLen(FieldGenres, genre, 50)
	}
	if input.CoverURL != nil {
		validator.OptionalURL(FieldCoverURL, *input.CoverURL)
	}
	if input.CoverKey != nil {
		validator.MaxLen(FieldCoverKey, *input.CoverKey, 500)
	}
	if input.OriginalAuthor != nil {
		validator.MaxLen(FieldOriginalAuthor, *input.OriginalAuthor, 200)
	}
	return validator.Err()
}

// # Reading

/*
List returns approved works for the public catalog.

Returns:
  - []*Work: One page of approved works
  - int: Total matching count
  - error: Validation or retrieval failures
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldSearch, filter.Search, 100)
	validator.MaxLen(FieldGenre, filter.Genre, 50)
	if filter.Sort == "" {
		filter.Sort = SortRecent
	}
	validator.OneOf(FieldSort, string(filter.Sort), string(SortHot), string(SortRecent), string(SortMost))
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	filter.Status = moderation.StatusApproved
	return service.repo.List(context, filter, limit, offset)
}

// ListAll returns every work, optionally filtered by status, to an administrator.
func (service *Service) ListAll(context context.Context, viewer *sec.Viewer, rawStatus string, limit, offset int) ([]*Work, int, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, 0, err
	}

	status, err := moderation.ParseStatus(rawStatus)
	if err != nil {
		return nil, 0, err
	}

	return service.repo.List(context, Filter{Status: status, Sort: SortRecent}, limit, offset)
}

// ListPending returns the review queue, oldest submission first.
func (service *Service) ListPending(context context.Context, viewer *sec.Viewer, limit, offset int) ([]*Work, int, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, Filter{Status: moderation.StatusPending, Sort: SortOldest}, limit, offset)
}

// Mine returns the viewer's own works. Non-translators get an empty list.
func (service *Service) Mine(context context.Context, viewer *sec.Viewer) ([]*Work, error) {
	if !viewer.IsTranslatorOrAbove() {
		return []*Work{}, nil
	}
	return service.repo.ListByOwner(context, viewer.UserID, MineLimit)
}

/*
Get returns a single work if the viewer may see it.

Unpublished works are reported as missing to anyone but their owner and
administrators.
*/
func (service *Service) Get(context context.Context, viewer *sec.Viewer, id string) (*Work, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Work")
	}

	work, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !work.VisibleTo(viewer) {
		return nil, apperr.NotFound("Work")
	}
	return work, nil
}

// # Writing

/*
Create submits a new work.

Order of checks: interaction guard, translator role, input, create_work quota.
Official translators and above publish immediately.
*/
func (service *Service) Create(context context.Context, viewer *sec.Viewer, input CreateInput) (*Work, error) {
	if err := sec.CanInteract(viewer); err != nil {
		return nil, err
	}
	if err := sec.RequireTranslator(viewer); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := service.limiter.Check(context, ratelimit.CreateWork, viewer.UserID); err != nil {
		return nil, err
	}

	id := uuid.New()
	genres := input.Genres
	if genres == nil {
		genres = []string{}
	}

	work := &Work{
		ID:             id,
		Slug:           slug.WithSuffix(input.Title, id[len(id)-8:]),
		Title:          input.Title,
		Synopsis:       input.Synopsis,
		Genres:         genres,
		CoverURL:       input.CoverURL,
		CoverKey:       input.CoverKey,
		OwnerID:        viewer.UserID,
		OriginalAuthor: input.OriginalAuthor,
		Status:         moderation.InitialStatus(viewer.Role),
	}

	if err := service.repo.Create(context, work); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "work_created",
		slog.String("work_id", work.ID),
		slog.String("owner_id", work.OwnerID),
		slog.String("status", string(work.Status)),
	)
	return work, nil
}

// Review records an administrator's decision on a work.
func (service *Service) Review(context context.Context, viewer *sec.Viewer, id, rawStatus string) (*Work, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, err
	}

	status, err := moderation.ParseDecision(rawStatus)
	if err != nil {
		return nil, err
	}
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Work")
	}

	work, err := service.repo.UpdateStatus(context, id, status)
	if err != nil {
		return nil, err
	}

	action := audit.ActionApproveWork
	if status == moderation.StatusRejected {
		action = audit.ActionRejectWork
	}
	service.audit.Record(context, viewer, action, audit.TargetWork, work.ID, work.Title)
	service.metrics.ModerationTransition("work", string(status))

	return work, nil
}

// ChangeOwner transfers a work to another user. Super administrator only.
func (service *Service) ChangeOwner(context context.Context, viewer *sec.Viewer, id, newOwnerID string) (*Work, error) {
	if err := sec.RequireSuperAdmin(viewer); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.UUID(FieldNewOwnerID, newOwnerID)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Work")
	}

	work, err := service.repo.UpdateOwner(context, id, newOwnerID)
	if err != nil {
		return nil, err
	}

	service.audit.Record(context, viewer, audit.ActionChangeWorkOwner, audit.TargetWork, work.ID, fmt.Sprintf("new owner: %s", newOwnerID))
	return work, nil
}

// # View Counter

/*
IncrementViews counts one view per client per hour.

A repeated view inside the window is reported as skipped, not as an error.
*/
func (service *Service) IncrementViews(context context.Context, id, clientHash string) (*ViewResult, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Work")
	}

	decision := service.limiter.Allow(context, ratelimit.View, "work:"+clientHash+":"+id)
	if !decision.Allowed {
		service.metrics.ViewIncrement("work", true)
		return &ViewResult{Skipped: true}, nil
	}

	if err := service.repo.IncrementViews(context, id); err != nil {
		return nil, err
	}

	service.metrics.ViewIncrement("work", false)
	return &ViewResult{Skipped: false}, nil
}

// ResetWeeklyViews zeroes the weekly counters.
func (service *Service) ResetWeeklyViews(context context.Context) (int64, error) {
	return service.repo.ResetWeeklyViews(context)
}

// RunWeeklyReset resets the weekly counters every interval until ctx is done.
func (service *Service) RunWeeklyReset(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := service.ResetWeeklyViews(ctx)
			if err != nil {
				service.logger.ErrorContext(ctx, "weekly_views_reset_failed", slog.Any("error", err))
				continue
			}
			service.logger.InfoContext(ctx, "weekly_views_reset", slog.Int64("works", changed))
		}
	}
}
