// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolerequest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/taibuivan/ascender/internal/notification"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/metrics"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/links"
	"github.com/taibuivan/ascender/pkg/pointer"
	"github.com/taibuivan/ascender/pkg/slice"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// LinkResolver looks up a public link value. [links.Service] satisfies it.
type LinkResolver interface {
	Value(context context.Context, key string) string
}

// Service implements the role request workflow.
type Service struct {
	repo    Repository
	links   LinkResolver
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, resolver LinkResolver, collector *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{repo: repo, links: resolver, metrics: collector, logger: logger, now: time.Now}
}

// ErrReadersOnly rejects submissions from users who already hold a team role.
var ErrReadersOnly = apperr.Forbidden("Only readers can request a translator role")

// DefaultRejection is sent when the administrator leaves no response.
const DefaultRejection = "We can't take on new translators right now."

var roleLabels = map[sec.Role]string{
	sec.RoleApprenticeTranslator: "Apprentice Translator",
	sec.RoleOfficialTranslator:   "Official Translator",
}

// cooldownDays renders a remaining duration as whole days, rounded up.
func cooldownDays(remaining time.Duration) int {
	return int(math.Ceil(remaining.Hours() / 24))
}

// # Reader

/*
Submit files a request for the viewer.

Rules, in order:
 1. The viewer is a logged-in reader.
 2. The viewer is not banned, softly or totally.
 3. The previous submission is at least 10 days old.
*/
func (service *Service) Submit(context context.Context, viewer *sec.Viewer, input SubmitInput) (*RoleRequest, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return nil, err
	}
	if viewer.Role != sec.RoleReader {
		return nil, ErrReadersOnly
	}
	if err := sec.CanInteract(viewer); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldType, string(input.Type), string(TypeLearner), string(TypeHelper))
	if input.Message != nil {
		validator.MaxLen(FieldMessage, *input.Message, MaxMessage)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now()
	if last := viewer.LastRoleRequestAt; last != nil {
		if remaining := last.Add(constants.RoleRequestCooldown).Sub(now); remaining > 0 {
			return nil, apperr.CoolingDown(remaining, cooldownDays(remaining))
		}
	}

	request := &RoleRequest{
		ID:        uuid.New(),
		UserID:    viewer.UserID,
		Type:      input.Type,
		Message:   input.Message,
		Status:    moderation.StatusPending,
		CreatedAt: now,
	}
	if err := service.repo.Submit(context, request); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "role_request_submitted",
		slog.String("request_id", request.ID),
		slog.String("user_id", request.UserID),
		slog.String("type", string(request.Type)),
	)
	return request, nil
}

// Mine returns the viewer's pending request status and the end of the cooldown.
func (service *Service) Mine(context context.Context, viewer *sec.Viewer) (*Mine, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return nil, err
	}

	mine := &Mine{}
	if last := viewer.LastRoleRequestAt; last != nil {
		blockedUntil := last.Add(constants.RoleRequestCooldown)
		mine.BlockedUntil = &blockedUntil
	}

	pending, err := service.repo.LatestPending(context, viewer.UserID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		mine.Status = &pending.Status
	}
	return mine, nil
}

// # Administration

// List returns requests to an administrator, newest first.
func (service *Service) List(context context.Context, viewer *sec.Viewer, rawStatus string, limit, offset int) ([]*RoleRequest, int, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, 0, err
	}

	status, err := moderation.ParseStatus(rawStatus)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, status, limit, offset)
}

/*
Review approves or rejects a request.

A request that was already reviewed can be reviewed again; the new decision
overwrites the old one and produces its own notification and audit entry.
*/
func (service *Service) Review(context context.Context, viewer *sec.Viewer, id string, input ReviewInput) (*RoleRequest, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, err
	}

	status, err := moderation.ParseDecision(input.Status)
	if err != nil {
		return nil, err
	}
	if input.Response != nil {
		validator := &validate.Validator{}
		validator.MaxLen(FieldResponse, *input.Response, MaxMessage)
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("RoleRequest")
	}

	request, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	plan := service.plan(context, viewer, request, status, input.Response)
	reviewed, err := service.repo.ApplyReview(context, plan)
	if err != nil {
		return nil, err
	}

	service.metrics.ModerationTransition("role_request", string(status))
	service.logger.InfoContext(context, "role_request_reviewed",
		slog.String("request_id", reviewed.ID),
		slog.String("user_id", reviewed.UserID),
		slog.String("status", string(status)),
	)
	return reviewed, nil
}

// plan builds every write of a review.
func (service *Service) plan(context context.Context, reviewer *sec.Viewer, request *RoleRequest, status moderation.Status, response *string) *ReviewPlan {
	now := service.now()

	var reviewerMessage *string
	if response != nil && *response != "" {
		reviewerMessage = response
	}

	plan := &ReviewPlan{
		RequestID:       request.ID,
		ReviewerID:      reviewer.UserID,
		Status:          status,
		ReviewerMessage: reviewerMessage,
		ReviewedAt:      now,
		UserID:          request.UserID,
	}

	message := &notification.Notification{
		ID:        uuid.New(),
		UserID:    request.UserID,
		CreatedAt: now,
	}

	if status == moderation.StatusApproved {
		role := request.Type.PromotesTo()
		plan.Promote = pointer.To(role)
		plan.PromoteFrom = slice.Filter(sec.Roles, func(candidate sec.Role) bool {
			return candidate.Level() < role.Level()
		})

		message.Kind = notification.KindRoleApproved
		message.Title = "Request approved! Welcome to the team!"
		message.Message = fmt.Sprintf("Your request to join as an %s was approved!", roleLabels[role])
		if telegram := service.links.Value(context, links.KeyTelegram); telegram != "" {
			message.Message += "\n\nJoin our group: " + telegram
		}

		plan.Audit = audit.NewEntry(reviewer, audit.ActionRoleRequestApproved, audit.TargetRoleRequest, request.ID, "promoted to "+string(role), now)
	} else {
		reason := pointer.Fallback(reviewerMessage, DefaultRejection)

		message.Kind = notification.KindRoleRejected
		message.Title = "Request not approved this time"
		message.Message = fmt.Sprintf("Unfortunately your request was not approved right now. %s You can try again in %d days.",
			reason, cooldownDays(constants.RoleRequestCooldown))

		plan.Audit = audit.NewEntry(reviewer, audit.ActionRoleRequestRejected, audit.TargetRoleRequest, request.ID, "user "+request.UserID, now)
	}

	plan.Notification = message
	return plan
}
