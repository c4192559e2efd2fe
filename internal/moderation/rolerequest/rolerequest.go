// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rolerequest handles readers asking to join the translation team.

# Lifecycle

  - A reader submits a request. The submission time starts a 10 day cooldown
    before another request can be sent, whatever the outcome.
  - An administrator approves or rejects it. Approval promotes the reader
    (learner to apprentice translator, helper to official translator). Either
    way the reader receives exactly one notification.
  - The request update, the promotion, the notification and the audit entry are
    committed together.
*/
package rolerequest

import (
	"context"
	"time"

	"github.com/taibuivan/ascender/internal/notification"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/system/audit"
)

// Type is what the reader is offering.
type Type string

const (
	TypeLearner Type = "learner" // wants to learn, becomes an apprentice
	TypeHelper  Type = "helper"  // already translates, becomes official
)

// PromotesTo returns the role granted on approval.
func (t Type) PromotesTo() sec.Role {
	if t == TypeHelper {
		return sec.RoleOfficialTranslator
	}
	return sec.RoleApprenticeTranslator
}

// RoleRequest is one application to the translation team.
type RoleRequest struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	UserName        *string           `json:"user_name,omitempty"`
	Type            Type              `json:"type"`
	Message         *string           `json:"message,omitempty"`
	Status          moderation.Status `json:"status"`
	ReviewerID      *string           `json:"reviewer_id,omitempty"`
	ReviewerMessage *string           `json:"reviewer_message,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Mine is the caller's own request state.
type Mine struct {
	Status       *moderation.Status `json:"status"`
	BlockedUntil *time.Time         `json:"blocked_until"`
}

// SubmitInput is the reader's application.
type SubmitInput struct {
	Type    Type    `json:"type"`
	Message *string `json:"message"`
}

// ReviewInput is the administrator's decision.
type ReviewInput struct {
	Status   string  `json:"status"`
	Response *string `json:"response"`
}

/*
ReviewPlan is everything a review writes. Repositories apply it atomically.

Promote is nil on rejection. When set, the user's role is only replaced if it
is one of PromoteFrom, so a review never lowers a role granted in the meantime.
*/
type ReviewPlan struct {
	RequestID       string
	ReviewerID      string
	Status          moderation.Status
	ReviewerMessage *string
	ReviewedAt      time.Time
	UserID          string
	Promote         *sec.Role
	PromoteFrom     []sec.Role
	Notification    *notification.Notification
	Audit           *audit.Entry
}

const (
	PageSize   = 30
	MaxMessage = 500

	FieldType     = "type"
	FieldMessage  = "message"
	FieldResponse = "response"
)

// Repository defines the data access contract for role requests.
type Repository interface {
	// Submit stores the request and stamps the user's last request time together.
	Submit(context context.Context, request *RoleRequest) error

	// LatestPending returns the user's pending request, or nil.
	LatestPending(context context.Context, userID string) (*RoleRequest, error)

	List(context context.Context, status moderation.Status, limit, offset int) ([]*RoleRequest, int, error)

	FindByID(context context.Context, id string) (*RoleRequest, error)

	ApplyReview(context context.Context, plan *ReviewPlan) (*RoleRequest, error)
}
