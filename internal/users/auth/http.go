// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ascender/internal/platform/constants"
	"github.com/taibuivan/ascender/internal/platform/middleware"
	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the authentication endpoints.
type Handler struct {
	authService *Service
	// secureCookies marks the session cookie Secure and SameSite=Strict.
	secureCookies bool
}

// NewHandler constructs a new [Handler]. secureCookies should be true in production.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST  /login/google : Exchanges an ID token for a session cookie.
//   - POST  /logout       : Deletes the session and clears the cookie.
//   - GET   /me           : Current user or null.
//   - PATCH /profile      : Updates display name and avatar.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login/google", handler.loginGoogle)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Patch("/profile", handler.updateProfile)
	})

	return router
}

type loginGoogleRequest struct {
	Credential string `json:"credential"`
}

/*
POST /api/v1/auth/login/google.

Request:
  - Body: loginGoogleRequest (the provider's ID token)

Response:
  - 200: User: The signed-in account, with the session cookie set
  - 401: Invalid credential
  - 429: Too many attempts from this address
*/
func (handler *Handler) loginGoogle(writer http.ResponseWriter, request *http.Request) {
	var input loginGoogleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.LoginWithGoogle(request.Context(), input.Credential, requestutil.ClientHash(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.Session.ID, result.Session.ExpiresAt)
	respond.OK(writer, result.User)
}

/*
POST /api/v1/auth/logout.

Description: Always succeeds, even without a session, so a hard-banned or
already signed-out client can clear its cookie.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearSessionCookie(writer)
	respond.NoContent(writer)
}

// me responds with the current user or null.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.authService.Me(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	var input ProfileInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), requestutil.Viewer(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// # Cookie Helpers

func (handler *Handler) setSessionCookie(writer http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(writer, handler.cookie(value, expiresAt, int(constants.SessionTTL.Seconds())))
}

func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, handler.cookie("", time.Unix(0, 0), -1))
}

func (handler *Handler) cookie(value string, expiresAt time.Time, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if handler.secureCookies {
		sameSite = http.SameSiteStrictMode
	}

	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: sameSite,
	}
}
