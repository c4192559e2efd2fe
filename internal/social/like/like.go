// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package like implements the like counter on works.
package like

import "context"

// Summary is the like state of one work as seen by one viewer.
type Summary struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

// Repository defines the data access contract for likes.
type Repository interface {
	Count(context context.Context, workID string) (int, error)
	Exists(context context.Context, workID, userID string) (bool, error)

	// Toggle flips the like and reports the resulting state.
	Toggle(context context.Context, workID, userID string) (bool, error)
}
