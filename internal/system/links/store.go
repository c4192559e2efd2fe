// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package links

import "context"

// Repository defines the data access contract for public links.
type Repository interface {
	// Get returns the link for key, or nil when none is configured.
	Get(context context.Context, key string) (*Link, error)

	// Set creates or replaces the link for key.
	Set(context context.Context, link *Link) error
}
