// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import "context"

// Repository defines the data access contract for the audit log.
type Repository interface {
	// Append persists one entry. ID and CreatedAt are assigned by the caller.
	Append(context context.Context, entry *Entry) error

	// List returns entries newest first, with the total count.
	List(context context.Context, limit, offset int) ([]*Entry, int, error)
}
