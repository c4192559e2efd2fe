// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package report lets readers flag broken chapters for administrators.
//
// A reader reports a given chapter at most once.
package report

import (
	"context"
	"time"
)

// Kind classifies the problem being reported.
type Kind string

const (
	KindMissingImage      Kind = "missing_image"
	KindChapterNotLoading Kind = "chapter_not_loading"
	KindTranslationError  Kind = "translation_error"
	KindOther             Kind = "other"
)

// KindNames lists every valid kind for validation messages.
func KindNames() []string {
	return []string{
		string(KindMissingImage), string(KindChapterNotLoading),
		string(KindTranslationError), string(KindOther),
	}
}

// Report is one reader complaint about a chapter.
type Report struct {
	ID          string    `json:"id"`
	ChapterID   string    `json:"chapter_id"`
	WorkID      string    `json:"work_id"`
	UserID      string    `json:"user_id"`
	Kind        Kind      `json:"kind"`
	Description *string   `json:"description,omitempty"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Input is a report submission.
type Input struct {
	ChapterID   string  `json:"chapter_id"`
	WorkID      string  `json:"work_id"`
	Kind        Kind    `json:"kind"`
	Description *string `json:"description"`
}

const (
	PageSize       = 30
	MaxDescription = 1000

	FieldChapterID   = "chapter_id"
	FieldWorkID      = "work_id"
	FieldKind        = "kind"
	FieldDescription = "description"
)

// Repository defines the data access contract for reports.
type Repository interface {
	// Create fails with Conflict when the user already reported the chapter.
	Create(context context.Context, report *Report) error

	// List returns reports newest first; a nil resolved matches both states.
	List(context context.Context, resolved *bool, limit, offset int) ([]*Report, int, error)

	SetResolved(context context.Context, id string, resolved bool) (*Report, error)
}
