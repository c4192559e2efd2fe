// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/ctxutil"
	"github.com/taibuivan/ascender/internal/platform/respond"
	"github.com/taibuivan/ascender/internal/platform/sec"
)

// ViewerResolver turns a session id into a viewer.
//
// Defined here so the middleware does not depend on the auth package and can
// be tested with a stub.
type ViewerResolver interface {
	ResolveViewer(ctx context.Context, sessionID string) (*sec.Viewer, error)
}

// Authenticate resolves the session cookie into a [*sec.Viewer].
//
// # Flow
//  1. No cookie, or a cookie that is not a session id: anonymous.
//  2. Lookup error: logged, then anonymous. A failing session store never aborts a request.
//  3. Otherwise the viewer is injected into the context.
func Authenticate(resolver ViewerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || !sec.IsSessionToken(cookie.Value) {
				next.ServeHTTP(writer, request)
				return
			}

			viewer, err := resolver.ResolveViewer(request.Context(), cookie.Value)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "session_lookup_failed",
					slog.Any("error", err),
				)
				viewer = nil
			}

			ctx := ctxutil.WithViewer(request.Context(), viewer)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// DenyHardBanned rejects every request from a hard-banned viewer with 403,
// except the paths listed in allow (logout must keep working).
func DenyHardBanned(allow ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allow))
	for _, path := range allow {
		allowed[path] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			viewer := ctxutil.GetViewer(request.Context())
			if viewer.Authenticated() && viewer.BannedTotal {
				if _, ok := allowed[request.URL.Path]; !ok {
					respond.Error(writer, request, sec.ErrHardBanned)
					return
				}
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks anonymous requests.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return Require(sec.RequireUser)(next)
}

// Require mounts any [sec] guard as middleware, e.g. Require(sec.RequireAdmin).
func Require(guard func(*sec.Viewer) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if err := guard(ctxutil.GetViewer(request.Context())); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
