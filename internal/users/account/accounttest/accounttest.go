// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package accounttest provides an in-memory [account.Repository] for tests.
package accounttest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/users/account"
	"github.com/taibuivan/ascender/pkg/pointer"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// Repository keeps accounts in a map keyed by id.
type Repository struct {
	mu    sync.Mutex
	users map[string]*account.User
	now   func() time.Time
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{users: map[string]*account.User{}, now: time.Now}
}

// Add stores a user with the given role and returns it. The id is generated.
func (repository *Repository) Add(name string, role sec.Role) *account.User {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := repository.now()
	user := &account.User{
		ID:         uuid.New(),
		ExternalID: "test_" + name,
		Name:       &name,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	repository.users[user.ID] = user
	return user
}

// Get returns a copy of the stored user or nil.
func (repository *Repository) Get(id string) *account.User {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil
	}
	clone := *user
	return &clone
}

func (repository *Repository) FindByID(_ context.Context, id string) (*account.User, error) {
	if user := repository.Get(id); user != nil {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repository *Repository) UpsertByExternalID(_ context.Context, user *account.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := repository.now()
	for _, existing := range repository.users {
		if existing.ExternalID == user.ExternalID {
			existing.Name, existing.Email = user.Name, user.Email
			if user.Role == sec.RoleSuperAdmin {
				existing.Role = sec.RoleSuperAdmin
			}
			existing.LastSignedIn, existing.UpdatedAt = now, now
			*user = *existing
			return nil
		}
	}

	user.LastSignedIn, user.CreatedAt, user.UpdatedAt = now, now, now
	stored := *user
	repository.users[user.ID] = &stored
	return nil
}

func (repository *Repository) UpdateProfile(_ context.Context, id, displayName, avatarURL string) (*account.User, error) {
	return repository.mutate(id, func(user *account.User) {
		user.DisplayName, user.AvatarURL = pointer.NonZero(displayName), pointer.NonZero(avatarURL)
	})
}

func (repository *Repository) List(_ context.Context, filter account.Filter, limit, offset int) ([]*account.User, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var matches []*account.User
	for _, user := range repository.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			name := ""
			if user.Name != nil {
				name = *user.Name
			}
			if user.ID != filter.Search && !strings.Contains(strings.ToLower(name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		clone := *user
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID > matches[j].ID })

	total := len(matches)
	if offset >= total {
		return []*account.User{}, total, nil
	}
	return matches[offset:min(offset+limit, total)], total, nil
}

func (repository *Repository) UpdateRole(_ context.Context, id string, role sec.Role) (*account.User, error) {
	return repository.mutate(id, func(user *account.User) { user.Role = role })
}

func (repository *Repository) UpdateBan(_ context.Context, id string, banned, bannedTotal bool) (*account.User, error) {
	return repository.mutate(id, func(user *account.User) { user.Banned, user.BannedTotal = banned, bannedTotal })
}

// Update applies fn to a stored user; tests use it to arrange state.
func (repository *Repository) Update(id string, fn func(user *account.User)) {
	_, _ = repository.mutate(id, fn)
}

func (repository *Repository) mutate(id string, fn func(user *account.User)) (*account.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	fn(user)
	user.UpdatedAt = repository.now()
	clone := *user
	return &clone, nil
}
