// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestRole_Predicates verifies every role against the derived level predicates.
*/
func TestRole_Predicates(t *testing.T) {
	tests := []struct {
		role       Role
		level      int
		translator bool
		official   bool
		admin      bool
		super      bool
	}{
		{RoleReader, 0, false, false, false, false},
		{RoleApprenticeTranslator, 1, true, false, false, false},
		{RoleOfficialTranslator, 2, true, true, false, false},
		{RoleAdmin, 3, true, true, true, false},
		{RoleSuperAdmin, 4, true, true, true, true},
		{Role("moderator"), 0, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.level, tt.role.Level())
			assert.Equal(t, tt.translator, tt.role.IsTranslatorOrAbove())
			assert.Equal(t, tt.official, tt.role.IsOfficialOrAbove())
			assert.Equal(t, tt.admin, tt.role.IsAdmin())
			assert.Equal(t, tt.super, tt.role.IsSuperAdmin())
		})
	}
}

/*
TestRole_StrictOrder verifies that Roles is sorted by strictly increasing level.
*/
func TestRole_StrictOrder(t *testing.T) {
	for i := 1; i < len(Roles); i++ {
		assert.Greater(t, Roles[i].Level(), Roles[i-1].Level())
		assert.True(t, Roles[i].AtLeast(Roles[i-1]))
		assert.False(t, Roles[i-1].AtLeast(Roles[i]))
	}
	assert.False(t, Role("owner").Valid())
	assert.Len(t, RoleNames(), 5)
}
