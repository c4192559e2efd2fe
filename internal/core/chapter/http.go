// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
	"github.com/taibuivan/ascender/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapters.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterWorkRoutes mounts /{id}/chapters on the /works router.
func (handler *Handler) RegisterWorkRoutes(router chi.Router) {
	router.Get("/{id}/chapters", handler.listChapters)
	router.Post("/{id}/chapters", handler.createChapter)
}

// RegisterRoutes mounts /chapters.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/chapters", func(router chi.Router) {
		router.Get("/pending", handler.listPending)
		router.Get("/{id}", handler.getChapter)
		router.Post("/{id}/review", handler.reviewChapter)
		router.Post("/{id}/views", handler.incrementViews)
	})
}

/*
GET /api/v1/works/{id}/chapters.

Request:
  - includeAll: bool (owners and administrators only)

Response:
  - 200: []Chapter: Ordered by number
  - 404: Work missing or hidden
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.List(request.Context(), requestutil.Viewer(request),
		requestutil.Param(request, "id"), requestutil.QueryBool(request, "includeAll"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

// GET /api/v1/chapters/pending. Admin review queue, oldest first.
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, PendingPageSize)

	chapters, total, err := handler.service.ListPending(request.Context(), requestutil.Viewer(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// GET /api/v1/chapters/{id}.
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.Get(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

/*
POST /api/v1/works/{id}/chapters.

Request:
  - Body: CreateInput (1..100 pages and page keys)

Response:
  - 201: Chapter
  - 403: Banned, not a translator, not the owner, or pending cap reached
  - 429: create_chapter quota exhausted
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Create(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, chapter)
}

type reviewRequest struct {
	Status string `json:"status"`
}

// POST /api/v1/chapters/{id}/review.
func (handler *Handler) reviewChapter(writer http.ResponseWriter, request *http.Request) {
	var input reviewRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Review(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

// POST /api/v1/chapters/{id}/views.
func (handler *Handler) incrementViews(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.IncrementViews(request.Context(), requestutil.Param(request, "id"), requestutil.ClientHash(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
