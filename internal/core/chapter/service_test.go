// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/core/chapter"
	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/core/work/worktest"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/audit/audittest"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// # In-memory repository

type memoryChapters struct {
	mu       sync.Mutex
	chapters map[string]*chapter.Chapter
	order    []string
}

func newMemoryChapters() *memoryChapters {
	return &memoryChapters{chapters: map[string]*chapter.Chapter{}}
}

func (repository *memoryChapters) ListByWork(_ context.Context, workID string, includeAll bool) ([]*chapter.Chapter, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := []*chapter.Chapter{}
	for _, id := range repository.order {
		stored := repository.chapters[id]
		if stored.WorkID != workID || (!includeAll && !stored.Status.Approved()) {
			continue
		}
		clone := *stored
		result = append(result, &clone)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (repository *memoryChapters) ListPending(_ context.Context, limit, offset int) ([]*chapter.Chapter, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	pending := []*chapter.Chapter{}
	for _, id := range repository.order {
		if stored := repository.chapters[id]; stored.Status == moderation.StatusPending {
			clone := *stored
			pending = append(pending, &clone)
		}
	}
	total := len(pending)
	if offset >= total {
		return []*chapter.Chapter{}, total, nil
	}
	return pending[offset:min(offset+limit, total)], total, nil
}

func (repository *memoryChapters) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	clone := *stored
	return &clone, nil
}

func (repository *memoryChapters) Create(_ context.Context, created *chapter.Chapter) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	clone := *created
	repository.chapters[created.ID] = &clone
	repository.order = append(repository.order, created.ID)
	return nil
}

func (repository *memoryChapters) UpdateStatus(_ context.Context, id string, status moderation.Status) (*chapter.Chapter, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	stored.Status = status
	clone := *stored
	return &clone, nil
}

func (repository *memoryChapters) IncrementViews(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.chapters[id]
	if !ok {
		return apperr.NotFound("Chapter")
	}
	stored.ViewsTotal++
	return nil
}

func (repository *memoryChapters) CountPendingByOwner(_ context.Context, ownerID string) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count := 0
	for _, stored := range repository.chapters {
		if stored.OwnerID == ownerID && stored.Status == moderation.StatusPending {
			count++
		}
	}
	return count, nil
}

// # Fixture

type fixture struct {
	works    *worktest.Repository
	chapters *memoryChapters
	recorder *audittest.Recorder
	service  *chapter.Service
}

func newFixture() *fixture {
	works := worktest.NewRepository()
	chapters := newMemoryChapters()
	recorder := &audittest.Recorder{}
	limiter := ratelimit.New(ratelimit.NewMemoryStore())
	return &fixture{
		works:    works,
		chapters: chapters,
		recorder: recorder,
		service:  chapter.NewService(chapters, works, limiter, recorder, nil, slog.Default()),
	}
}

func viewer(role sec.Role) *sec.Viewer {
	return &sec.Viewer{UserID: uuid.New(), Role: role}
}

func validInput(number float64) chapter.CreateInput {
	return chapter.CreateInput{
		Number:   number,
		Pages:    []string{"https://cdn.example.com/p1.webp", "https://cdn.example.com/p2.webp"},
		PageKeys: []string{"chapters/p1.webp", "chapters/p2.webp"},
	}
}

func (f *fixture) ownedWork(owner *sec.Viewer) *work.Work {
	return f.works.Add("Work", owner.UserID, moderation.StatusApproved)
}

// # Tests

/*
TestCreate_OwnerRules verifies ownership and auto-approval on chapter submission.
*/
func TestCreate_OwnerRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	official := viewer(sec.RoleOfficialTranslator)
	parent := f.ownedWork(official)

	created, err := f.service.Create(ctx, official, parent.ID, validInput(1))
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, created.Status)
	assert.Equal(t, official.UserID, created.OwnerID)

	_, err = f.service.Create(ctx, viewer(sec.RoleOfficialTranslator), parent.ID, validInput(2))
	assert.ErrorIs(t, err, chapter.ErrNotWorkOwner)

	admin := viewer(sec.RoleAdmin)
	created, err = f.service.Create(ctx, admin, parent.ID, validInput(3))
	require.NoError(t, err)
	assert.Equal(t, admin.UserID, created.OwnerID)

	_, err = f.service.Create(ctx, official, uuid.New(), validInput(4))
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestCreate_Validation verifies page bounds.
*/
func TestCreate_Validation(t *testing.T) {
	f := newFixture()
	official := viewer(sec.RoleOfficialTranslator)
	parent := f.ownedWork(official)

	tooMany := validInput(1)
	tooMany.Pages = make([]string, chapter.MaxPages+1)
	for i := range tooMany.Pages {
		tooMany.Pages[i] = "https://cdn.example.com/p.webp"
	}

	tests := []struct {
		name  string
		input chapter.CreateInput
	}{
		{"no pages", chapter.CreateInput{Number: 1, PageKeys: []string{"k"}}},
		{"no keys", chapter.CreateInput{Number: 1, Pages: []string{"https://cdn.example.com/p.webp"}}},
		{"not a url", chapter.CreateInput{Number: 1, Pages: []string{"ftp://x"}, PageKeys: []string{"k"}}},
		{"negative number", chapter.CreateInput{Number: -1, Pages: []string{"https://cdn.example.com/p.webp"}, PageKeys: []string{"k"}}},
		{"too many pages", tooMany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), official, parent.ID, tt.input)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
		})
	}
}

/*
TestCreate_ApprenticePendingCap verifies the cap is enforced before insert.
*/
func TestCreate_ApprenticePendingCap(t *testing.T) {
	f := newFixture()
	apprentice := viewer(sec.RoleApprenticeTranslator)
	parent := f.ownedWork(apprentice)

	for i := range constants.ApprenticePendingChapterCap - 1 {
		require.NoError(t, f.chapters.Create(context.Background(), &chapter.Chapter{
			ID: uuid.New(), WorkID: parent.ID, OwnerID: apprentice.UserID, Number: float64(i), Status: moderation.StatusPending,
		}))
	}

	created, err := f.service.Create(context.Background(), apprentice, parent.ID, validInput(50))
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, created.Status)

	_, err = f.service.Create(context.Background(), apprentice, parent.ID, validInput(99))
	assert.ErrorIs(t, err, chapter.ErrPendingCap)

	_, total, err := f.chapters.ListPending(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Equal(t, constants.ApprenticePendingChapterCap, total)
}

/*
TestCreate_Guards verifies bans and roles are checked first.
*/
func TestCreate_Guards(t *testing.T) {
	f := newFixture()
	soft := viewer(sec.RoleOfficialTranslator)
	soft.Banned = true
	parent := f.ownedWork(soft)

	_, err := f.service.Create(context.Background(), soft, parent.ID, validInput(1))
	assert.ErrorIs(t, err, sec.ErrSoftBanned)

	_, err = f.service.Create(context.Background(), viewer(sec.RoleReader), parent.ID, validInput(1))
	assert.ErrorIs(t, err, sec.ErrTranslatorOnly)
}

/*
TestList_IncludeAll verifies unpublished chapters are listed only for privileged viewers.
*/
func TestList_IncludeAll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	apprentice := viewer(sec.RoleApprenticeTranslator)
	parent := f.ownedWork(apprentice)

	_, err := f.service.Create(ctx, apprentice, parent.ID, validInput(1))
	require.NoError(t, err)
	require.NoError(t, f.chapters.Create(ctx, &chapter.Chapter{ID: uuid.New(), WorkID: parent.ID, Number: 0, Status: moderation.StatusApproved}))

	tests := []struct {
		name   string
		viewer *sec.Viewer
		want   int
	}{
		{"anonymous", nil, 1},
		{"other translator", viewer(sec.RoleOfficialTranslator), 1},
		{"owner", apprentice, 2},
		{"admin", viewer(sec.RoleAdmin), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapters, err := f.service.List(ctx, tt.viewer, parent.ID, true)
			require.NoError(t, err)
			assert.Len(t, chapters, tt.want)
		})
	}
}

/*
TestGet_Visibility verifies pending chapters are hidden from strangers.
*/
func TestGet_Visibility(t *testing.T) {
	f := newFixture()
	apprentice := viewer(sec.RoleApprenticeTranslator)
	parent := f.ownedWork(apprentice)

	created, err := f.service.Create(context.Background(), apprentice, parent.ID, validInput(1))
	require.NoError(t, err)

	_, err = f.service.Get(context.Background(), nil, created.ID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	got, err := f.service.Get(context.Background(), apprentice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

/*
TestReview_Audit verifies review decisions and their audit entries.
*/
func TestReview_Audit(t *testing.T) {
	f := newFixture()
	apprentice := viewer(sec.RoleApprenticeTranslator)
	parent := f.ownedWork(apprentice)
	created, err := f.service.Create(context.Background(), apprentice, parent.ID, validInput(7))
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), apprentice, created.ID, "approved")
	assert.ErrorIs(t, err, sec.ErrAdminOnly)

	reviewed, err := f.service.Review(context.Background(), viewer(sec.RoleAdmin), created.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusRejected, reviewed.Status)
	assert.Equal(t, []audit.Action{audit.ActionRejectChapter}, f.recorder.Actions())
}

/*
TestIncrementViews_Dedupe verifies per-client deduplication.
*/
func TestIncrementViews_Dedupe(t *testing.T) {
	f := newFixture()
	official := viewer(sec.RoleOfficialTranslator)
	parent := f.ownedWork(official)
	created, err := f.service.Create(context.Background(), official, parent.ID, validInput(1))
	require.NoError(t, err)

	first, err := f.service.IncrementViews(context.Background(), created.ID, "client")
	require.NoError(t, err)
	second, err := f.service.IncrementViews(context.Background(), created.ID, "client")
	require.NoError(t, err)

	assert.False(t, first.Skipped)
	assert.True(t, second.Skipped)

	stored, err := f.chapters.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ViewsTotal)
}
