// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

type memoryRepository struct {
	items []*Notification
}

func (repository *memoryRepository) ListLatest(_ context.Context, userID string, limit int) ([]*Notification, error) {
	var result []*Notification
	for _, item := range repository.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (repository *memoryRepository) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, item := range repository.items {
		if item.UserID == userID && !item.Read {
			count++
		}
	}
	return count, nil
}

func (repository *memoryRepository) MarkRead(_ context.Context, id, userID string) error {
	for _, item := range repository.items {
		if item.ID == id && item.UserID == userID {
			item.Read = true
			return nil
		}
	}
	return apperr.NotFound("Notification")
}

func (repository *memoryRepository) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var updated int64
	for _, item := range repository.items {
		if item.UserID == userID && !item.Read {
			item.Read = true
			updated++
		}
	}
	return updated, nil
}

func seed(count int, userID string) *memoryRepository {
	repository := &memoryRepository{}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range count {
		repository.items = append(repository.items, &Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Kind:      KindRoleApproved,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return repository
}

/*
TestList_LatestTwenty verifies the inbox is capped and newest first.
*/
func TestList_LatestTwenty(t *testing.T) {
	service := NewService(seed(25, "u1"), slog.Default())

	items, err := service.List(context.Background(), &sec.Viewer{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, items, ListLimit)
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))
}

/*
TestMarkRead_OwnerOnly verifies another user's notification is reported as missing.
*/
func TestMarkRead_OwnerOnly(t *testing.T) {
	repository := seed(1, "owner")
	service := NewService(repository, slog.Default())
	id := repository.items[0].ID

	err := service.MarkRead(context.Background(), &sec.Viewer{UserID: "intruder"}, id)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	assert.False(t, repository.items[0].Read)

	require.NoError(t, service.MarkRead(context.Background(), &sec.Viewer{UserID: "owner"}, id))
	assert.True(t, repository.items[0].Read)
}

/*
TestMarkAllRead_UpdatesUnreadCount verifies counters follow the bulk update.
*/
func TestMarkAllRead_UpdatesUnreadCount(t *testing.T) {
	service := NewService(seed(3, "u1"), slog.Default())
	viewer := &sec.Viewer{UserID: "u1"}

	count, err := service.UnreadCount(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	updated, err := service.MarkAllRead(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	count, err = service.UnreadCount(context.Background(), viewer)
	require.NoError(t, err)
	assert.Zero(t, count)
}

/*
TestAnonymous_Rejected verifies every inbox operation needs a session.
*/
func TestAnonymous_Rejected(t *testing.T) {
	service := NewService(seed(1, "u1"), slog.Default())

	_, err := service.List(context.Background(), nil)
	assert.ErrorIs(t, err, sec.ErrLoginRequired)
	_, err = service.UnreadCount(context.Background(), nil)
	assert.ErrorIs(t, err, sec.ErrLoginRequired)
	assert.ErrorIs(t, service.MarkRead(context.Background(), nil, "x"), sec.ErrLoginRequired)
	_, err = service.MarkAllRead(context.Background(), nil)
	assert.ErrorIs(t, err, sec.ErrLoginRequired)
}
