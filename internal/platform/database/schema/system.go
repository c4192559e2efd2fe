// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SystemAuditLogTable represents the 'system.auditlog' table
type SystemAuditLogTable struct {
	Table      string
	ID         string
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	Detail     string
	CreatedAt  string
}

// SystemAuditLog is the schema definition for system.auditlog
var SystemAuditLog = SystemAuditLogTable{
	Table:      "system.auditlog",
	ID:         "id",
	ActorID:    "actorid",
	Action:     "action",
	TargetType: "targettype",
	TargetID:   "targetid",
	Detail:     "detail",
	CreatedAt:  "createdat",
}

// SystemPublicLinkTable represents the 'system.publiclink' table
type SystemPublicLinkTable struct {
	Table     string
	Key       string
	Value     string
	UpdatedAt string
}

// SystemPublicLink is the schema definition for system.publiclink
var SystemPublicLink = SystemPublicLinkTable{
	Table:     "system.publiclink",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updatedat",
}
