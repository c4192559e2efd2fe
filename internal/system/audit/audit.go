// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit records privileged actions in an append-only log.

Every moderation decision, role change, ban and configuration change made by
an administrator produces exactly one [Entry]. Entries are never updated or
deleted through the API.
*/
package audit

import "time"

// Action is the closed set of audited operations.
type Action string

const (
	ActionApproveWork         Action = "approve_work"
	ActionRejectWork          Action = "reject_work"
	ActionChangeWorkOwner     Action = "change_work_owner"
	ActionApproveChapter      Action = "approve_chapter"
	ActionRejectChapter       Action = "reject_chapter"
	ActionDeleteComment       Action = "delete_comment"
	ActionChangeRole          Action = "change_role"
	ActionBanSoft             Action = "ban_soft"
	ActionBanTotal            Action = "ban_total"
	ActionUnbanUser           Action = "unban_user"
	ActionRoleRequestApproved Action = "role_request_approved"
	ActionRoleRequestRejected Action = "role_request_rejected"
	ActionResolveReport       Action = "resolve_report"
	ActionSetPublicLink       Action = "set_public_link"
)

// Target types referenced by entries.
const (
	TargetWork        = "work"
	TargetChapter     = "chapter"
	TargetComment     = "comment"
	TargetUser        = "user"
	TargetRoleRequest = "role_request"
	TargetReport      = "report"
	TargetPublicLink  = "public_link"
)

// Entry is one audited action.
type Entry struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorName  *string   `json:"actor_name,omitempty"` // Denormalized for the admin log view
	Action     Action    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PageSize is the fixed page size of the admin log view.
const PageSize = 50
