// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements reader comments on works.
//
// Comments are soft deleted by administrators and never edited.
package comment

import (
	"context"
	"time"
)

// Comment is a reader comment attached to a work.
type Comment struct {
	ID         string     `json:"id"`
	WorkID     string     `json:"work_id"`
	AuthorID   string     `json:"author_id"`
	AuthorName *string    `json:"author_name,omitempty"`
	AuthorRole string     `json:"author_role,omitempty"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"-"`
}

const (
	// MaxLength is the content limit in characters.
	MaxLength = 500

	FieldContent = "content"
)

// Repository defines the data access contract for comments.
type Repository interface {
	// ListByWork returns live comments, newest first, with the total count.
	ListByWork(context context.Context, workID string, limit, offset int) ([]*Comment, int, error)

	Create(context context.Context, comment *Comment) error

	// SoftDelete stamps deletedat. Already deleted comments are NotFound.
	SoftDelete(context context.Context, id string) (*Comment, error)
}
