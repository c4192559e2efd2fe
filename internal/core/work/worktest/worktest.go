// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package worktest provides an in-memory [work.Repository] for tests.
package worktest

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// Repository keeps works in a map keyed by id.
type Repository struct {
	mu    sync.Mutex
	works map[string]*work.Work
	clock time.Time
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{works: map[string]*work.Work{}, clock: time.Now()}
}

// tick returns strictly increasing timestamps so sort order is deterministic.
func (repository *Repository) tick() time.Time {
	repository.clock = repository.clock.Add(time.Second)
	return repository.clock
}

// Add stores a work owned by ownerID with the given status.
func (repository *Repository) Add(title, ownerID string, status moderation.Status) *work.Work {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := repository.tick()
	stored := &work.Work{
		ID:        uuid.New(),
		Title:     title,
		Genres:    []string{},
		OwnerID:   ownerID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	repository.works[stored.ID] = stored

	clone := *stored
	return &clone
}

// Get returns a copy of the stored work or nil.
func (repository *Repository) Get(id string) *work.Work {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.works[id]
	if !ok {
		return nil
	}
	clone := *stored
	return &clone
}

func (repository *Repository) List(_ context.Context, filter work.Filter, limit, offset int) ([]*work.Work, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	matched := []*work.Work{}
	for _, stored := range repository.works {
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(stored.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Genre != "" && !slices.Contains(stored.Genres, filter.Genre) {
			continue
		}
		clone := *stored
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		switch filter.Sort {
		case work.SortHot:
			return matched[i].ViewsWeek > matched[j].ViewsWeek
		case work.SortMost:
			return matched[i].ViewsTotal > matched[j].ViewsTotal
		case work.SortOldest:
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		default:
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
	})

	total := len(matched)
	if offset >= total {
		return []*work.Work{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (repository *Repository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*work.Work, error) {
	all, _, err := repository.List(ctx, work.Filter{}, 1<<30, 0)
	if err != nil {
		return nil, err
	}

	owned := []*work.Work{}
	for _, stored := range all {
		if stored.OwnerID == ownerID && len(owned) < limit {
			owned = append(owned, stored)
		}
	}
	return owned, nil
}

func (repository *Repository) FindByID(_ context.Context, id string) (*work.Work, error) {
	if stored := repository.Get(id); stored != nil {
		return stored, nil
	}
	return nil, apperr.NotFound("Work")
}

func (repository *Repository) Create(_ context.Context, created *work.Work) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := repository.tick()
	created.CreatedAt, created.UpdatedAt = now, now
	clone := *created
	repository.works[created.ID] = &clone
	return nil
}

func (repository *Repository) mutate(id string, apply func(*work.Work)) (*work.Work, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.works[id]
	if !ok {
		return nil, apperr.NotFound("Work")
	}
	apply(stored)
	stored.UpdatedAt = repository.tick()

	clone := *stored
	return &clone, nil
}

func (repository *Repository) UpdateStatus(_ context.Context, id string, status moderation.Status) (*work.Work, error) {
	return repository.mutate(id, func(stored *work.Work) { stored.Status = status })
}

func (repository *Repository) UpdateOwner(_ context.Context, id, ownerID string) (*work.Work, error) {
	return repository.mutate(id, func(stored *work.Work) { stored.OwnerID = ownerID })
}

func (repository *Repository) IncrementViews(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.works[id]
	if !ok {
		return apperr.NotFound("Work")
	}
	stored.ViewsTotal++
	stored.ViewsWeek++
	return nil
}

func (repository *Repository) ResetWeeklyViews(context.Context) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var changed int64
	for _, stored := range repository.works {
		if stored.ViewsWeek != 0 {
			stored.ViewsWeek = 0
			changed++
		}
	}
	return changed, nil
}
