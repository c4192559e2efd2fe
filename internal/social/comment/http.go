// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
	"github.com/taibuivan/ascender/pkg/pagination"
)

// Handler exposes the comment endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterWorkRoutes mounts /{id}/comments on the /works router.
func (handler *Handler) RegisterWorkRoutes(router chi.Router) {
	router.Get("/{id}/comments", handler.listComments)
	router.Post("/{id}/comments", handler.createComment)
}

// RegisterRoutes mounts /comments.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Delete("/comments/{id}", handler.deleteComment)
}

/*
GET /api/v1/works/{id}/comments.

Response:
  - 200: []Comment: Newest first, paginated
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.List(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type createRequest struct {
	Content string `json:"content"`
}

/*
POST /api/v1/works/{id}/comments.

Request:
  - Body: {"content": "..."} (1..500 characters)

Response:
  - 201: Comment
  - 403: Banned
  - 429: comment quota exhausted
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// DELETE /api/v1/comments/{id}. Administrators only.
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
