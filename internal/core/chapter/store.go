// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"

	"github.com/taibuivan/ascender/internal/platform/moderation"
)

// # Chapter Data Access

// Repository defines the data access contract for chapters.
type Repository interface {

	/*
		ListByWork returns the chapters of a work ordered by number.
		When includeAll is false only approved chapters are returned.
	*/
	ListByWork(context context.Context, workID string, includeAll bool) ([]*Chapter, error)

	// ListPending returns the review queue, oldest first, with the total count.
	ListPending(context context.Context, limit, offset int) ([]*Chapter, int, error)

	// FindByID returns apperr.NotFound when missing.
	FindByID(context context.Context, id string) (*Chapter, error)

	Create(context context.Context, chapter *Chapter) error

	UpdateStatus(context context.Context, id string, status moderation.Status) (*Chapter, error)

	IncrementViews(context context.Context, id string) error

	// CountPendingByOwner counts the owner's chapters still awaiting review.
	CountPendingByOwner(context context.Context, ownerID string) (int, error)
}
