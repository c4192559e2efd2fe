// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package favorite keeps each reader's bookmarked works.
package favorite

import (
	"context"
	"time"
)

// Favorite is a bookmarked work as listed in the reader's library.
type Favorite struct {
	WorkID    string    `json:"work_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CoverURL  *string   `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLimit caps the library listing.
const ListLimit = 100

// Repository defines the data access contract for favorites.
type Repository interface {
	// List returns the user's favorites on approved works, newest first.
	List(context context.Context, userID string, limit int) ([]*Favorite, error)
	Exists(context context.Context, userID, workID string) (bool, error)
	Toggle(context context.Context, userID, workID string) (bool, error)
}
