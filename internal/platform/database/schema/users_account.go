// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table             string
	ID                string
	ExternalID        string
	Name              string
	Email             string
	DisplayName       string
	AvatarURL         string
	Role              string
	Banned            string
	BannedTotal       string
	LastRoleRequestAt string
	LastSignedIn      string
	CreatedAt         string
	UpdatedAt         string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:             "users.account",
	ID:                "id",
	ExternalID:        "externalid",
	Name:              "name",
	Email:             "email",
	DisplayName:       "displayname",
	AvatarURL:         "avatarurl",
	Role:              "role",
	Banned:            "banned",
	BannedTotal:       "bannedtotal",
	LastRoleRequestAt: "lastrolerequestat",
	LastSignedIn:      "lastsignedin",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.ExternalID, t.Name, t.Email, t.DisplayName, t.AvatarURL, t.Role,
		t.Banned, t.BannedTotal, t.LastRoleRequestAt, t.LastSignedIn, t.CreatedAt, t.UpdatedAt,
	}
}
