// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ModerationReportTable represents the 'moderation.report' table
type ModerationReportTable struct {
	Table       string
	ID          string
	ChapterID   string
	WorkID      string
	UserID      string
	Kind        string
	Description string
	Resolved    string
	CreatedAt   string
}

// ModerationReport is the schema definition for moderation.report
var ModerationReport = ModerationReportTable{
	Table:       "moderation.report",
	ID:          "id",
	ChapterID:   "chapterid",
	WorkID:      "workid",
	UserID:      "userid",
	Kind:        "kind",
	Description: "description",
	Resolved:    "resolved",
	CreatedAt:   "createdat",
}

// ModerationRoleRequestTable represents the 'moderation.rolerequest' table
type ModerationRoleRequestTable struct {
	Table           string
	ID              string
	UserID          string
	Type            string
	Message         string
	Status          string
	ReviewerID      string
	ReviewerMessage string
	ReviewedAt      string
	CreatedAt       string
}

// ModerationRoleRequest is the schema definition for moderation.rolerequest
var ModerationRoleRequest = ModerationRoleRequestTable{
	Table:           "moderation.rolerequest",
	ID:              "id",
	UserID:          "userid",
	Type:            "type",
	Message:         "message",
	Status:          "status",
	ReviewerID:      "reviewerid",
	ReviewerMessage: "reviewermessage",
	ReviewedAt:      "reviewedat",
	CreatedAt:       "createdat",
}
