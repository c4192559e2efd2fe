// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notification delivers immutable, per-user messages.

Notifications are created by other domains (currently the role request review)
and can only be marked as read by the user they belong to.
*/
package notification

import (
	"time"

	"github.com/taibuivan/ascender/internal/platform/constants"
)

// Kind classifies a notification for client-side rendering.
type Kind string

const (
	KindRoleApproved Kind = "role_approved"
	KindRoleRejected Kind = "role_rejected"
	KindTeamWelcome  Kind = "team_welcome"
)

// Notification is a message addressed to one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLimit is how many notifications the inbox shows.
const ListLimit = constants.NotificationListLimit

const (
	FieldCount   = "count"
	FieldUpdated = "updated"
)
