// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/core/work/worktest"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/ctxutil"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/social/comment"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/audit/audittest"
	"github.com/taibuivan/ascender/pkg/uuid"
)

type memoryComments struct {
	mu    sync.Mutex
	items []*comment.Comment
}

func (repository *memoryComments) ListByWork(_ context.Context, workID string, limit, offset int) ([]*comment.Comment, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	live := []*comment.Comment{}
	for i := len(repository.items) - 1; i >= 0; i-- {
		item := repository.items[i]
		if item.WorkID == workID && item.DeletedAt == nil {
			clone := *item
			live = append(live, &clone)
		}
	}
	total := len(live)
	if offset >= total {
		return []*comment.Comment{}, total, nil
	}
	return live[offset:min(offset+limit, total)], total, nil
}

func (repository *memoryComments) Create(_ context.Context, item *comment.Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item.CreatedAt = time.Now()
	clone := *item
	repository.items = append(repository.items, &clone)
	return nil
}

func (repository *memoryComments) SoftDelete(_ context.Context, id string) (*comment.Comment, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, item := range repository.items {
		if item.ID == id && item.DeletedAt == nil {
			now := time.Now()
			item.DeletedAt = &now
			clone := *item
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Comment")
}

type fixture struct {
	works    *worktest.Repository
	recorder *audittest.Recorder
	service  *comment.Service
}

func newFixture() *fixture {
	works := worktest.NewRepository()
	recorder := &audittest.Recorder{}
	limiter := ratelimit.New(ratelimit.NewMemoryStore())
	return &fixture{
		works:    works,
		recorder: recorder,
		service:  comment.NewService(&memoryComments{}, works, limiter, recorder, slog.Default()),
	}
}

func reader() *sec.Viewer {
	return &sec.Viewer{UserID: uuid.New(), Role: sec.RoleReader}
}

/*
TestCreate_ContentBounds verifies trimming and the 500 character limit.
*/
func TestCreate_ContentBounds(t *testing.T) {
	f := newFixture()
	published := f.works.Add("Work", "owner", moderation.StatusApproved)

	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"blank", "   ", false},
		{"exactly max", strings.Repeat("ä", comment.MaxLength), true},
		{"over max", strings.Repeat("a", comment.MaxLength+1), false},
		{"trimmed", "  nice chapter  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := f.service.Create(context.Background(), reader(), published.ID, tt.content)
			if !tt.valid {
				assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.content), created.Content)
		})
	}
}

/*
TestCreate_GuardsAndQuota verifies bans, hidden works and the per-minute quota.
*/
func TestCreate_GuardsAndQuota(t *testing.T) {
	f := newFixture()
	published := f.works.Add("Work", "owner", moderation.StatusApproved)
	hidden := f.works.Add("Hidden", "owner", moderation.StatusPending)

	soft := reader()
	soft.Banned = true
	_, err := f.service.Create(context.Background(), soft, published.ID, "hi")
	assert.ErrorIs(t, err, sec.ErrSoftBanned)

	_, err = f.service.Create(context.Background(), nil, published.ID, "hi")
	assert.ErrorIs(t, err, sec.ErrLoginRequired)

	_, err = f.service.Create(context.Background(), reader(), hidden.ID, "hi")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	author := reader()
	for range ratelimit.Comment.Max {
		_, err := f.service.Create(context.Background(), author, published.ID, "hi")
		require.NoError(t, err)
	}
	_, err = f.service.Create(context.Background(), author, published.ID, "hi")
	assert.True(t, apperr.HasCode(err, "RATE_LIMITED"))
}

/*
TestDelete_AdminAudited verifies soft deletion hides the comment and is audited once.
*/
func TestDelete_AdminAudited(t *testing.T) {
	f := newFixture()
	published := f.works.Add("Work", "owner", moderation.StatusApproved)
	created, err := f.service.Create(context.Background(), reader(), published.ID, "spam")
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), reader(), created.ID)
	assert.ErrorIs(t, err, sec.ErrAdminOnly)

	admin := &sec.Viewer{UserID: uuid.New(), Role: sec.RoleAdmin}
	require.NoError(t, f.service.Delete(context.Background(), admin, created.ID))

	err = f.service.Delete(context.Background(), admin, created.ID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	comments, total, err := f.service.List(context.Background(), nil, published.ID, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, comments)
	assert.Equal(t, []audit.Action{audit.ActionDeleteComment}, f.recorder.Actions())
}

/*
TestHandler_NestedUnderWorks verifies the comment routes resolve on the shared /works router.
*/
func TestHandler_NestedUnderWorks(t *testing.T) {
	f := newFixture()
	published := f.works.Add("Work", "owner", moderation.StatusApproved)
	handler := comment.NewHandler(f.service)

	router := chi.NewRouter()
	router.Route("/works", func(works chi.Router) {
		works.Get("/{id}", func(writer http.ResponseWriter, _ *http.Request) { writer.WriteHeader(http.StatusTeapot) })
		handler.RegisterWorkRoutes(works)
	})

	request := httptest.NewRequest(http.MethodPost, "/works/"+published.ID+"/comments", strings.NewReader(`{"content":"first!"}`))
	request = request.WithContext(ctxutil.WithViewer(request.Context(), reader()))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/works/"+published.ID+"/comments", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []comment.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "first!", body.Data[0].Content)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/works/"+published.ID, nil))
	assert.Equal(t, http.StatusTeapot, recorder.Code)
}
