// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
)

/*
TestParseDecision verifies only terminal states are accepted as review targets.
*/
func TestParseDecision(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{"approved", StatusApproved, false},
		{"rejected", StatusRejected, false},
		{"pending", "", true},
		{"", "", true},
		{"APPROVED", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDecision(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestParseStatus verifies the optional list filter.
*/
func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, Status(""), status)

	status, err = ParseStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

/*
TestInitialStatus verifies auto-approval starts at official translator.
*/
func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(sec.RoleReader))
	assert.Equal(t, StatusPending, InitialStatus(sec.RoleApprenticeTranslator))
	assert.Equal(t, StatusApproved, InitialStatus(sec.RoleOfficialTranslator))
	assert.Equal(t, StatusApproved, InitialStatus(sec.RoleAdmin))
	assert.Equal(t, StatusApproved, InitialStatus(sec.RoleSuperAdmin))
	assert.Equal(t, StatusPending, InitialStatus(sec.Role("bogus")))
}
