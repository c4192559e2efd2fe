// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/core/chapter"
	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/library/favorite"
	"github.com/taibuivan/ascender/internal/library/history"
	"github.com/taibuivan/ascender/internal/media/upload"
	"github.com/taibuivan/ascender/internal/moderation/report"
	"github.com/taibuivan/ascender/internal/moderation/rolerequest"
	"github.com/taibuivan/ascender/internal/notification"
	"github.com/taibuivan/ascender/internal/platform/config"
	"github.com/taibuivan/ascender/internal/platform/metrics"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/social/comment"
	"github.com/taibuivan/ascender/internal/social/like"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/internal/system/links"
	"github.com/taibuivan/ascender/internal/system/stats"
	"github.com/taibuivan/ascender/internal/users/account"
	"github.com/taibuivan/ascender/internal/users/auth"
)

type anonymousResolver struct{}

func (anonymousResolver) ResolveViewer(context.Context, string) (*sec.Viewer, error) {
	return nil, nil
}

func newTestServer(t *testing.T, health HealthDependencies) http.Handler {
	t.Helper()

	cfg := &config.Config{ServerPort: "0", Environment: "test", MetricsEnabled: true}
	handlers := Handlers{
		Health:       NewHealthHandler(health, slog.Default()),
		Auth:         auth.NewHandler(nil, false),
		Account:      account.NewHandler(nil),
		Work:         work.NewHandler(nil),
		Chapter:      chapter.NewHandler(nil),
		Comment:      comment.NewHandler(nil),
		Like:         like.NewHandler(nil),
		Favorite:     favorite.NewHandler(nil),
		History:      history.NewHandler(nil),
		Report:       report.NewHandler(nil),
		RoleRequest:  rolerequest.NewHandler(nil),
		Notification: notification.NewHandler(nil),
		Upload:       upload.NewHandler(nil),
		Audit:        audit.NewHandler(nil),
		Stats:        stats.NewHandler(nil),
		Links:        links.NewHandler(nil),
	}

	server := NewServer(cfg, slog.Default(), Dependencies{
		Resolver: anonymousResolver{},
		HashIP:   func(ip string) string { return "hash-" + ip },
		Metrics:  metrics.New(),
	}, handlers)
	return server.Router()
}

/*
TestNewServer_RoutesRegister builds the full route tree and checks the probes.
*/
func TestNewServer_RoutesRegister(t *testing.T) {
	router := newTestServer(t, HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"postgres"`)
	assert.NotContains(t, recorder.Body.String(), `"redis"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestReadiness_Degraded verifies a failing dependency turns /ready into a 503.
*/
func TestReadiness_Degraded(t *testing.T) {
	router := newTestServer(t, HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "degraded")
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

/*
TestRouting_GuardsRunBeforeServices verifies authenticated routes reject
anonymous callers in middleware, before any service is reached.
*/
func TestRouting_GuardsRunBeforeServices(t *testing.T) {
	router := newTestServer(t, HealthDependencies{})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/favorites"},
		{http.MethodGet, "/api/v1/history"},
		{http.MethodPost, "/api/v1/uploads/cover"},
		{http.MethodPost, "/api/v1/reports"},
		{http.MethodGet, "/api/v1/role-requests/mine"},
		{http.MethodGet, "/api/v1/admin/reports"},
		{http.MethodGet, "/api/v1/admin/role-requests"},
	}

	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			router.ServeHTTP(recorder, request)
			require.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}
