// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package links

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/audit/audittest"
)

type memoryRepository struct {
	links map[string]*Link
	err   error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{links: map[string]*Link{}}
}

func (repository *memoryRepository) Get(_ context.Context, key string) (*Link, error) {
	if repository.err != nil {
		return nil, repository.err
	}
	return repository.links[key], nil
}

func (repository *memoryRepository) Set(_ context.Context, link *Link) error {
	repository.links[link.Key] = link
	return nil
}

var owner = &sec.Viewer{UserID: "owner", Role: sec.RoleSuperAdmin}

/*
TestSet_SuperAdminOnly verifies admins cannot change public links.
*/
func TestSet_SuperAdminOnly(t *testing.T) {
	recorder := &audittest.Recorder{}
	service := NewService(newMemoryRepository(), recorder, slog.Default())

	_, err := service.Set(context.Background(), &sec.Viewer{UserID: "a", Role: sec.RoleAdmin}, KeyTelegram, "https://t.me/ascender")
	assert.ErrorIs(t, err, sec.ErrSuperAdminOnly)
	assert.Empty(t, recorder.Entries())
}

/*
TestSet_AuditedAndReadable verifies a stored link is public and audited.
*/
func TestSet_AuditedAndReadable(t *testing.T) {
	recorder := &audittest.Recorder{}
	service := NewService(newMemoryRepository(), recorder, slog.Default())

	_, err := service.Set(context.Background(), owner, KeyTelegram, "https://t.me/ascender")
	require.NoError(t, err)

	link, err := service.Get(context.Background(), KeyTelegram)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "https://t.me/ascender", link.Value)
	assert.Equal(t, []audit.Action{audit.ActionSetPublicLink}, recorder.Actions())
	assert.Equal(t, "https://t.me/ascender", service.Value(context.Background(), KeyTelegram))
}

/*
TestSet_Validation verifies malformed keys and values are rejected.
*/
func TestSet_Validation(t *testing.T) {
	service := NewService(newMemoryRepository(), &audittest.Recorder{}, slog.Default())

	_, err := service.Set(context.Background(), owner, "Bad Key", "https://t.me/x")
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = service.Set(context.Background(), owner, KeyTelegram, "")
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

/*
TestGet_Missing verifies absent links read as nil and failures as empty values.
*/
func TestGet_Missing(t *testing.T) {
	repository := newMemoryRepository()
	service := NewService(repository, &audittest.Recorder{}, slog.Default())

	link, err := service.Get(context.Background(), "discord")
	require.NoError(t, err)
	assert.Nil(t, link)

	repository.err = errors.New("connection reset")
	assert.Empty(t, service.Value(context.Background(), KeyTelegram))
}
