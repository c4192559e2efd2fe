// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
	"github.com/taibuivan/ascender/pkg/pagination"
)

// # Handler Implementation

// Handler exposes the catalog endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new work [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog on the /works router. Nested resources
// (chapters, comments, likes) register on the same router with the same {id}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listWorks)
	router.Get("/all", handler.listAll)
	router.Get("/pending", handler.listPending)
	router.Get("/mine", handler.listMine)
	router.Post("/", handler.createWork)

	router.Get("/{id}", handler.getWork)
	router.Post("/{id}/review", handler.reviewWork)
	router.Post("/{id}/owner", handler.changeOwner)
	router.Post("/{id}/views", handler.incrementViews)
}

/*
GET /api/v1/works.

Request:
  - genre: string
  - search: string (max 100)
  - sort: hot | recent | most
  - page, limit: int (limit max 50)

Response:
  - 200: []Work: Approved works only
*/
func (handler *Handler) listWorks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Genre:  requestutil.Query(request, "genre"),
		Search: requestutil.Query(request, "search"),
		Sort:   Sort(requestutil.Query(request, "sort")),
	}

	works, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, works, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/works/all.

Request:
  - status: pending | approved | rejected (optional)
  - page: int (30 per page)

Response:
  - 200: []Work
  - 403: ErrAdminOnly
*/
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, AdminPageSize)

	works, total, err := handler.service.ListAll(request.Context(), requestutil.Viewer(request), requestutil.Query(request, "status"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, works, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// GET /api/v1/works/pending. Admin review queue, oldest first.
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, AdminPageSize)

	works, total, err := handler.service.ListPending(request.Context(), requestutil.Viewer(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, works, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// GET /api/v1/works/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	works, err := handler.service.Mine(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, works)
}

/*
GET /api/v1/works/{id}.

Response:
  - 200: Work
  - 404: Missing, or unpublished and not visible to the viewer
*/
func (handler *Handler) getWork(writer http.ResponseWriter, request *http.Request) {
	work, err := handler.service.Get(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, work)
}

/*
POST /api/v1/works.

Request:
  - Body: CreateInput

Response:
  - 201: Work: pending, or approved for official translators
  - 403: Banned or not a translator
  - 429: create_work quota exhausted
*/
func (handler *Handler) createWork(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	work, err := handler.service.Create(request.Context(), requestutil.Viewer(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, work)
}

type reviewRequest struct {
	Status string `json:"status"`
}

// POST /api/v1/works/{id}/review.
func (handler *Handler) reviewWork(writer http.ResponseWriter, request *http.Request) {
	var input reviewRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	work, err := handler.service.Review(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, work)
}

type changeOwnerRequest struct {
	NewOwnerID string `json:"new_owner_id"`
}

// POST /api/v1/works/{id}/owner. Super administrator only.
func (handler *Handler) changeOwner(writer http.ResponseWriter, request *http.Request) {
	var input changeOwnerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	work, err := handler.service.ChangeOwner(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input.NewOwnerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, work)
}

/*
POST /api/v1/works/{id}/views.

Response:
  - 200: ViewResult: {"skipped": true} when the client was already counted this hour
*/
func (handler *Handler) incrementViews(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.IncrementViews(request.Context(), requestutil.Param(request, "id"), requestutil.ClientHash(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
