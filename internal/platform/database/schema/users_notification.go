// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserNotificationTable represents the 'users.notification' table
type UserNotificationTable struct {
	Table     string
	ID        string
	UserID    string
	Kind      string
	Title     string
	Message   string
	Read      string
	CreatedAt string
}

// UserNotification is the schema definition for users.notification
var UserNotification = UserNotificationTable{
	Table:     "users.notification",
	ID:        "id",
	UserID:    "userid",
	Kind:      "kind",
	Title:     "title",
	Message:   "message",
	Read:      "isread",
	CreatedAt: "createdat",
}
