// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"context"

	"github.com/taibuivan/ascender/internal/platform/moderation"
)

// # Work Data Access

// Repository defines the data access contract for works.
type Repository interface {

	/*
		List returns a filtered, paginated slice of works and the total count.
		An empty Filter.Status matches every status.
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error)

	/*
		ListByOwner returns the owner's works, most recently updated first.
	*/
	ListByOwner(context context.Context, ownerID string, limit int) ([]*Work, error)

	/*
		FindByID retrieves a work regardless of status.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Work, error)

	/*
		Create persists a new work. ID, Slug and Status are set by the caller.
	*/
	Create(context context.Context, work *Work) error

	/*
		UpdateStatus records a review decision.
	*/
	UpdateStatus(context context.Context, id string, status moderation.Status) (*Work, error)

	/*
		UpdateOwner transfers the work. A missing new owner is NotFound("User").
	*/
	UpdateOwner(context context.Context, id, ownerID string) (*Work, error)

	/*
		IncrementViews adds one to both view counters.
	*/
	IncrementViews(context context.Context, id string) error

	/*
		ResetWeeklyViews zeroes every weekly counter and returns how many changed.
	*/
	ResetWeeklyViews(context context.Context) (int64, error)
}
