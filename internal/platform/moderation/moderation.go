// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package moderation holds the review state shared by works, chapters and role requests.

Every moderated entity starts pending (unless its author is trusted enough to
skip review) and is moved by an administrator to approved or rejected. A
terminal state can be reviewed again; the newest decision wins.
*/
package moderation

import (
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
)

// Status is the review state of a moderated entity.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// FieldStatus is the request field carrying a review decision.
const FieldStatus = "status"

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Approved is a shorthand used by visibility checks.
func (s Status) Approved() bool { return s == StatusApproved }

// ParseStatus parses an optional list filter. An empty value returns "" and no error.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return "", nil
	}
	status := Status(raw)
	if !status.Valid() {
		return "", apperr.ValidationError("Invalid status filter",
			apperr.FieldError{Field: FieldStatus, Message: "must be one of pending, approved, rejected"},
		)
	}
	return status, nil
}

// ParseDecision parses the target state of a review. Pending is never a valid target.
func ParseDecision(raw string) (Status, error) {
	status := Status(raw)
	if status != StatusApproved && status != StatusRejected {
		return "", apperr.ValidationError("Invalid review decision",
			apperr.FieldError{Field: FieldStatus, Message: "must be approved or rejected"},
		)
	}
	return status, nil
}

// InitialStatus is the state a new submission starts in. Official translators
// and above publish without review.
func InitialStatus(role sec.Role) Status {
	if role.IsOfficialOrAbove() {
		return StatusApproved
	}
	return StatusPending
}
