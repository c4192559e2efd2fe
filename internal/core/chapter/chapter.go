// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the chapters published under a work.

Chapters follow the same moderation rules as works. Apprentice translators may
hold at most [constants.ApprenticePendingChapterCap] chapters awaiting review.
*/
package chapter

import (
	"time"

	"github.com/taibuivan/ascender/internal/platform/moderation"
)

// # Core Entities

// Chapter is one numbered release of a work.
type Chapter struct {
	ID         string            `json:"id"`
	WorkID     string            `json:"work_id"`
	OwnerID    string            `json:"owner_id"`
	Number     float64           `json:"number"` // 12.5 for extras
	Title      *string           `json:"title,omitempty"`
	Pages      []string          `json:"pages"`
	PageKeys   []string          `json:"page_keys"`
	Status     moderation.Status `json:"status"`
	ViewsTotal int64             `json:"views_total"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ViewResult reports whether a view was counted.
type ViewResult struct {
	Skipped bool `json:"skipped"`
}

const (
	// MaxPages bounds both the page URLs and the storage keys of a chapter.
	MaxPages = 100
	// PendingPageSize is the page size of the admin review queue.
	PendingPageSize = 30
)

const (
	FieldNumber   = "number"
	FieldTitle    = "title"
	FieldPages    = "pages"
	FieldPageKeys = "page_keys"
)
