// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/audit/audittest"
	"github.com/taibuivan/ascender/internal/users/account"
	"github.com/taibuivan/ascender/internal/users/account/accounttest"
)

type fixture struct {
	repository *accounttest.Repository
	recorder   *audittest.Recorder
	service    *account.Service
	owner      *account.User
	admin      *account.User
	reader     *account.User
}

func newFixture() *fixture {
	repository := accounttest.NewRepository()
	recorder := &audittest.Recorder{}
	return &fixture{
		repository: repository,
		recorder:   recorder,
		service:    account.NewService(repository, recorder, slog.Default()),
		owner:      repository.Add("owner", sec.RoleSuperAdmin),
		admin:      repository.Add("admin", sec.RoleAdmin),
		reader:     repository.Add("reader", sec.RoleReader),
	}
}

/*
TestSetRole_Rules verifies every restriction on role changes.
*/
func TestSetRole_Rules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   *account.User
		target  string
		role    sec.Role
		wantErr error
	}{
		{"self change", f.admin, f.admin.ID, sec.RoleReader, account.ErrSelfRoleChange},
		{"grant super admin", f.owner, f.reader.ID, sec.RoleSuperAdmin, account.ErrGrantSuperAdmin},
		{"admin grants admin", f.admin, f.reader.ID, sec.RoleAdmin, account.ErrGrantAdmin},
		{"admin touches owner", f.admin, f.owner.ID, sec.RoleReader, account.ErrTouchSuperAdmin},
		{"reader acts", f.reader, f.admin.ID, sec.RoleReader, sec.ErrAdminOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.SetRole(ctx, tt.actor.Viewer(), tt.target, tt.role)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.recorder.Entries())
}

/*
TestSetRole_AdminDemotionNeedsOwner verifies only the super admin changes another admin.
*/
func TestSetRole_AdminDemotionNeedsOwner(t *testing.T) {
	f := newFixture()
	other := f.repository.Add("second-admin", sec.RoleAdmin)

	_, err := f.service.SetRole(context.Background(), f.admin.Viewer(), other.ID, sec.RoleReader)
	assert.ErrorIs(t, err, account.ErrTouchAdmin)

	updated, err := f.service.SetRole(context.Background(), f.owner.Viewer(), other.ID, sec.RoleReader)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleReader, updated.Role)
}

/*
TestSetRole_Audited verifies a successful change is persisted and audited with its detail.
*/
func TestSetRole_Audited(t *testing.T) {
	f := newFixture()

	updated, err := f.service.SetRole(context.Background(), f.admin.Viewer(), f.reader.ID, sec.RoleOfficialTranslator)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleOfficialTranslator, updated.Role)
	assert.Equal(t, sec.RoleOfficialTranslator, f.repository.Get(f.reader.ID).Role)

	entries := f.recorder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionChangeRole, entries[0].Action)
	assert.Equal(t, f.reader.ID, entries[0].TargetID)
	assert.Equal(t, "new role: official_translator", entries[0].Detail)
}

/*
TestSetRole_InvalidAndMissing verifies unknown roles and unknown users.
*/
func TestSetRole_InvalidAndMissing(t *testing.T) {
	f := newFixture()

	_, err := f.service.SetRole(context.Background(), f.admin.Viewer(), f.reader.ID, sec.Role("emperor"))
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = f.service.SetRole(context.Background(), f.admin.Viewer(), "not-a-uuid", sec.RoleReader)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestSetBan_Transitions verifies soft, hard and lifted bans with their audit actions.
*/
func TestSetBan_Transitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.service.SetBan(ctx, f.admin.Viewer(), f.reader.ID, account.BanInput{Banned: true})
	require.NoError(t, err)
	assert.True(t, user.Banned)
	assert.False(t, user.BannedTotal)

	user, err = f.service.SetBan(ctx, f.admin.Viewer(), f.reader.ID, account.BanInput{Banned: true, Total: true})
	require.NoError(t, err)
	assert.True(t, user.BannedTotal)

	user, err = f.service.SetBan(ctx, f.admin.Viewer(), f.reader.ID, account.BanInput{Banned: false, Total: true})
	require.NoError(t, err)
	assert.False(t, user.Banned)
	assert.False(t, user.BannedTotal)

	assert.Equal(t, []audit.Action{audit.ActionBanSoft, audit.ActionBanTotal, audit.ActionUnbanUser}, f.recorder.Actions())
}

/*
TestSetBan_Forbidden verifies self bans and bans on the super admin are refused.
*/
func TestSetBan_Forbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.SetBan(context.Background(), f.admin.Viewer(), f.admin.ID, account.BanInput{Banned: true})
	assert.ErrorIs(t, err, account.ErrSelfBan)

	_, err = f.service.SetBan(context.Background(), f.admin.Viewer(), f.owner.ID, account.BanInput{Banned: true, Total: true})
	assert.ErrorIs(t, err, account.ErrBanSuperAdmin)
	assert.False(t, f.repository.Get(f.owner.ID).BannedTotal)
}

/*
TestList_Filters verifies role filtering, id search and validation.
*/
func TestList_Filters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	users, total, err := f.service.List(ctx, f.admin.Viewer(), account.Filter{Role: sec.RoleAdmin}, account.PageSize, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, f.admin.ID, users[0].ID)

	users, _, err = f.service.List(ctx, f.admin.Viewer(), account.Filter{Search: f.reader.ID}, account.PageSize, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, f.reader.ID, users[0].ID)

	_, _, err = f.service.List(ctx, f.admin.Viewer(), account.Filter{Role: "wizard"}, account.PageSize, 0)
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, _, err = f.service.List(ctx, f.reader.Viewer(), account.Filter{}, account.PageSize, 0)
	assert.ErrorIs(t, err, sec.ErrAdminOnly)
}
