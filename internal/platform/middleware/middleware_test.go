// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/ctxutil"
	"github.com/taibuivan/ascender/internal/platform/sec"
)

type stubResolver struct {
	viewer *sec.Viewer
	err    error
	calls  int
}

func (resolver *stubResolver) ResolveViewer(context.Context, string) (*sec.Viewer, error) {
	resolver.calls++
	return resolver.viewer, resolver.err
}

var validSession = strings.Repeat("ab", 32)

// captureViewer records the viewer seen by the final handler.
func captureViewer(seen **sec.Viewer) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*seen = ctxutil.GetViewer(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

func withSession(request *http.Request, value string) *http.Request {
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: value})
	return request
}

/*
TestAuthenticate_Resolution covers anonymous, malformed, failing and valid sessions.
*/
func TestAuthenticate_Resolution(t *testing.T) {
	user := &sec.Viewer{UserID: "u1", Role: sec.RoleReader}

	tests := []struct {
		name      string
		cookie    string
		resolver  *stubResolver
		want      *sec.Viewer
		wantCalls int
	}{
		{"no cookie", "", &stubResolver{viewer: user}, nil, 0},
		{"malformed cookie", "not-a-session", &stubResolver{viewer: user}, nil, 0},
		{"lookup error fails open", validSession, &stubResolver{err: errors.New("db down")}, nil, 1},
		{"valid", validSession, &stubResolver{viewer: user}, user, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *sec.Viewer
			handler := Authenticate(tt.resolver)(captureViewer(&seen))

			request := httptest.NewRequest(http.MethodGet, "/api/v1/works", nil)
			if tt.cookie != "" {
				request = withSession(request, tt.cookie)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.want, seen)
			assert.Equal(t, tt.wantCalls, tt.resolver.calls)
		})
	}
}

/*
TestDenyHardBanned verifies hard-banned viewers can only log out.
*/
func TestDenyHardBanned(t *testing.T) {
	banned := &stubResolver{viewer: &sec.Viewer{UserID: "u1", BannedTotal: true}}
	var seen *sec.Viewer
	handler := Authenticate(banned)(DenyHardBanned("/api/v1/auth/logout")(captureViewer(&seen)))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/works", nil), validSession))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil), validSession))
	assert.Equal(t, http.StatusOK, recorder.Code)

	soft := &stubResolver{viewer: &sec.Viewer{UserID: "u2", Banned: true}}
	handler = Authenticate(soft)(DenyHardBanned()(captureViewer(&seen)))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/works", nil), validSession))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequire_Guards verifies guard errors become HTTP statuses.
*/
func TestRequire_Guards(t *testing.T) {
	var seen *sec.Viewer
	handler := Require(sec.RequireAdmin)(captureViewer(&seen))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithViewer(request.Context(), &sec.Viewer{UserID: "r", Role: sec.RoleReader}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

/*
TestGlobalLimiter_Burst verifies the token bucket rejects once the burst is spent.
*/
func TestGlobalLimiter_Burst(t *testing.T) {
	limiter := NewGlobalLimiter(60, 2)
	handler := ClientHash(func(ip string) string { return ip })(limiter.Handler(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "198.51.100.4:5000"
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)

	limiter.Cleanup(-time.Second)
	assert.True(t, limiter.Allow("198.51.100.4"))
}

/*
TestRealIP checks header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "203.0.113.10")
	assert.Equal(t, "203.0.113.10", RealIP(request))
}

/*
TestRequestID verifies generated and propagated ids.
*/
func TestRequestID(t *testing.T) {
	var got string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		got = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, got)
	assert.Equal(t, got, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "from-client")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "from-client", got)
}
