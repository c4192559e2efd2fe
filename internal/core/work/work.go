// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package work manages the catalog of translated works.

A work is submitted by a translator and published once an administrator
approves it. Official translators and above publish directly.

# Visibility

  - Approved works are public.
  - Pending and rejected works are visible only to their owner and to
    administrators. Everyone else gets NOT_FOUND, never FORBIDDEN.
*/
package work

import (
	"context"
	"time"

	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/sec"
)

// # Core Entities

// Work is one title in the catalog.
type Work struct {
	ID             string            `json:"id"` // UUIDv7
	Slug           string            `json:"slug"`
	Title          string            `json:"title"`
	Synopsis       *string           `json:"synopsis,omitempty"`
	Genres         []string          `json:"genres"`
	CoverURL       *string           `json:"cover_url,omitempty"`
	CoverKey       *string           `json:"cover_key,omitempty"`
	OwnerID        string            `json:"owner_id"`
	OriginalAuthor *string           `json:"original_author,omitempty"`
	Status         moderation.Status `json:"status"`
	ViewsTotal     int64             `json:"views_total"`
	ViewsWeek      int64             `json:"views_week"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// VisibleTo applies the visibility rule for unpublished works.
func (work *Work) VisibleTo(viewer *sec.Viewer) bool {
	return work.Status.Approved() || viewer.CanSeeUnpublished(work.OwnerID)
}

// Finder resolves a work by id. Packages that hang data off a work depend on
// it instead of the full [Repository].
type Finder interface {
	FindByID(context context.Context, id string) (*Work, error)
}

// ViewResult reports whether a view was counted.
type ViewResult struct {
	Skipped bool `json:"skipped"`
}

// # Search & Filtering

// Sort orders the public catalog.
type Sort string

const (
	SortRecent Sort = "recent" // updatedat desc
	SortHot    Sort = "hot"    // viewsweek desc
	SortMost   Sort = "most"   // viewstotal desc
	SortOldest Sort = "oldest" // createdat asc, used by the review queue
)

// Filter holds catalog list parameters.
type Filter struct {
	Status moderation.Status
	Search string
	Genre  string
	Sort   Sort
}

// # Limits

const (
	// MineLimit caps the "my works" list.
	MineLimit = 50
	// AdminPageSize is the page size of the admin lists.
	AdminPageSize = 30
)

// # Field Identifiers

const (
	FieldTitle          = "title"
	FieldSynopsis       = "synopsis"
	FieldGenres         = "genres"
	FieldCoverURL       = "cover_url"
	FieldCoverKey       = "cover_key"
	FieldOriginalAuthor = "original_author"
	FieldSearch         = "search"
	FieldGenre          = "genre"
	FieldSort           = "sort"
	FieldNewOwnerID     = "new_owner_id"
)
