// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

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

// RegisterRoutes mounts /history behind authentication.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/history", func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Get("/", handler.list)
		router.Put("/", handler.record)
	})
}

// GET /api/v1/history.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.List(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

/*
PUT /api/v1/history.

Request:
  - Body: Input

Response:
  - 204: Stored
  - 400: Invalid ids or progress outside 0..100
  - 404: Chapter does not belong to the work
*/
func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Record(request.Context(), requestutil.Viewer(request), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
