// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ascender/internal/platform/middleware"
	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /favorites behind authentication.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/favorites", func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Get("/", handler.list)
		router.Get("/{workID}", handler.status)
		router.Post("/{workID}/toggle", handler.toggle)
	})
}

// GET /api/v1/favorites.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	favorites, err := handler.service.List(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, favorites)
}

// GET /api/v1/favorites/{workID}.
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	saved, err := handler.service.Status(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "workID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"favorited": saved})
}

/*
POST /api/v1/favorites/{workID}/toggle.

Response:
  - 200: {"favorited": bool}
  - 403: Banned
  - 404: Work missing or hidden
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	saved, err := handler.service.Toggle(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "workID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"favorited": saved})
}
