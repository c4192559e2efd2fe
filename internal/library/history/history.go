// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package history records the reading position of each reader, one row per work.
package history

import (
	"context"
	"time"
)

// Entry is the last chapter a reader opened in a work.
type Entry struct {
	WorkID        string    `json:"work_id"`
	WorkTitle     string    `json:"work_title"`
	WorkSlug      string    `json:"work_slug"`
	CoverURL      *string   `json:"cover_url,omitempty"`
	ChapterID     string    `json:"chapter_id"`
	ChapterNumber float64   `json:"chapter_number"`
	Progress      int       `json:"progress"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Input is a reading position update.
type Input struct {
	WorkID    string `json:"work_id"`
	ChapterID string `json:"chapter_id"`
	Progress  int    `json:"progress"` // percent, 0..100
}

const (
	ListLimit = 50

	FieldWorkID    = "work_id"
	FieldChapterID = "chapter_id"
	FieldProgress  = "progress"
)

// Repository defines the data access contract for reading history.
type Repository interface {
	// Upsert stores the position. A chapter outside the work is NotFound.
	Upsert(context context.Context, userID string, input Input) error
	List(context context.Context, userID string, limit int) ([]*Entry, error)
}
