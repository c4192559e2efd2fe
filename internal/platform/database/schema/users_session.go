// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table      string
	ID         string
	UserID     string
	ExternalID string
	IPHash     string
	ExpiresAt  string
	CreatedAt  string
}

// UserSession is the schema definition for users.session
var UserSession = UserSessionTable{
	Table:      "users.session",
	ID:         "id",
	UserID:     "userid",
	ExternalID: "externalid",
	IPHash:     "iphash",
	ExpiresAt:  "expiresat",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t UserSessionTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ExternalID, t.IPHash, t.ExpiresAt, t.CreatedAt}
}
