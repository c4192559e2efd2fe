// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

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

// RegisterRoutes mounts the /uploads presign endpoints.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/uploads", func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Post("/cover", handler.cover)
		router.Post("/pages", handler.pages)
		router.Post("/avatar", handler.avatar)
	})
}

/*
POST /api/v1/uploads/cover.

Request:
  - Body: File (content_type: image/jpeg | image/png | image/webp, size: bytes, 10MB max)

Response:
  - 200: Signed
  - 503: Object storage not configured
*/
func (handler *Handler) cover(writer http.ResponseWriter, request *http.Request) {
	var file File
	if err := requestutil.DecodeJSON(writer, request, &file); err != nil {
		respond.Error(writer, request, err)
		return
	}

	signed, err := handler.service.Cover(request.Context(), requestutil.Viewer(request), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, signed)
}

/*
POST /api/v1/uploads/pages.

Request:
  - Body: PagesInput (1 to 100 files)

Response:
  - 200: Pages, in the order the files were declared
*/
func (handler *Handler) pages(writer http.ResponseWriter, request *http.Request) {
	var input PagesInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pages, err := handler.service.Pages(request.Context(), requestutil.Viewer(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pages)
}

// POST /api/v1/uploads/avatar.
func (handler *Handler) avatar(writer http.ResponseWriter, request *http.Request) {
	var file File
	if err := requestutil.DecodeJSON(writer, request, &file); err != nil {
		respond.Error(writer, request, err)
		return
	}

	signed, err := handler.service.Avatar(request.Context(), requestutil.Viewer(request), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, signed)
}
