// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/ascender/pkg/slice"

// # User Roles

// Role is the trust tag granted to an account. Roles form a total order and
// every privileged check compares their levels.
type Role string

const (
	// Default role for every account created at first login
	RoleReader Role = "reader"

	// Can publish works and chapters, which wait for review
	RoleApprenticeTranslator Role = "apprentice_translator"

	// Publishes without review
	RoleOfficialTranslator Role = "official_translator"

	// Moderates content, users and requests
	RoleAdmin Role = "admin"

	// Assigned once to the configured owner identity; never grantable
	RoleSuperAdmin Role = "super_admin"
)

// Roles lists every known role from lowest to highest level.
var Roles = []Role{
	RoleReader,
	RoleApprenticeTranslator,
	RoleOfficialTranslator,
	RoleAdmin,
	RoleSuperAdmin,
}

// # Role Hierarchy

// Level maps a role to its integer trust level (0-4). Unknown tags have level 0.
func (r Role) Level() int {
	switch r {
	case RoleApprenticeTranslator:
		return 1
	case RoleOfficialTranslator:
		return 2
	case RoleAdmin:
		return 3
	case RoleSuperAdmin:
		return 4
	default:
		return 0
	}
}

// AtLeast checks if the current role meets or exceeds the target role.
func (r Role) AtLeast(target Role) bool {
	return r.Level() >= target.Level()
}

func (r Role) IsAdmin() bool             { return r.Level() >= RoleAdmin.Level() }
func (r Role) IsSuperAdmin() bool        { return r == RoleSuperAdmin }
func (r Role) IsTranslatorOrAbove() bool { return r.Level() >= RoleApprenticeTranslator.Level() }
func (r Role) IsOfficialOrAbove() bool   { return r.Level() >= RoleOfficialTranslator.Level() }

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// RoleNames returns the string form of [Roles], handy for OneOf validation.
func RoleNames() []string {
	return slice.Map(Roles, func(role Role) string { return string(role) })
}
