// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterWorkRoutes mounts /{id}/likes on the /works router.
func (handler *Handler) RegisterWorkRoutes(router chi.Router) {
	router.Get("/{id}/likes", handler.count)
	router.Get("/{id}/likes/me", handler.status)
	router.Post("/{id}/likes/toggle", handler.toggle)
}

// GET /api/v1/works/{id}/likes.
func (handler *Handler) count(writer http.ResponseWriter, request *http.Request) {
	count, err := handler.service.Count(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"count": count})
}

// GET /api/v1/works/{id}/likes/me.
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	liked, err := handler.service.Status(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"liked": liked})
}

/*
POST /api/v1/works/{id}/likes/toggle.

Response:
  - 200: Summary: {"count": n, "liked": bool}
  - 403: Banned
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Toggle(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}
