// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import "context"

// Repository defines the data access contract for notifications.
type Repository interface {
	// ListLatest returns the newest notifications of a user.
	ListLatest(context context.Context, userID string, limit int) ([]*Notification, error)

	// CountUnread returns how many of the user's notifications are unread.
	CountUnread(context context.Context, userID string) (int, error)

	// MarkRead marks one notification as read. It returns NotFound when the
	// notification does not exist or belongs to someone else.
	MarkRead(context context.Context, id, userID string) error

	// MarkAllRead marks every unread notification of the user and returns how many changed.
	MarkAllRead(context context.Context, userID string) (int64, error)
}
