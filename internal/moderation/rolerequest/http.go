// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolerequest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ascender/internal/platform/middleware"
	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /role-requests and the /admin/role-requests queue.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/role-requests", func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Post("/", handler.submit)
		router.Get("/mine", handler.mine)
	})

	api.Route("/admin/role-requests", func(router chi.Router) {
		router.Use(middleware.Require(sec.RequireAdmin))

		router.Get("/", handler.list)
		router.Post("/{id}/review", handler.review)
	})
}

/*
POST /api/v1/role-requests.

Request:
  - Body: SubmitInput (type: learner | helper, message: optional, 500 chars)

Response:
  - 201: RoleRequest
  - 403: Not a reader, or banned
  - 429: Cooldown still running (retry_after in seconds)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input SubmitInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	roleRequest, err := handler.service.Submit(request.Context(), requestutil.Viewer(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, roleRequest)
}

// GET /api/v1/role-requests/mine.
func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	mine, err := handler.service.Mine(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mine)
}

/*
GET /api/v1/admin/role-requests.

Request:
  - status: pending | approved | rejected (optional)
  - page: int (30 per page)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, PageSize)

	requests, total, err := handler.service.List(request.Context(), requestutil.Viewer(request),
		requestutil.Query(request, "status"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, requests, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/admin/role-requests/{id}/review.

Request:
  - Body: ReviewInput (status: approved | rejected, response: optional)

Response:
  - 200: RoleRequest after review
  - 404: Unknown request
*/
func (handler *Handler) review(writer http.ResponseWriter, request *http.Request) {
	var input ReviewInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewed, err := handler.service.Review(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviewed)
}
