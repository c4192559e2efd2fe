// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report

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

// RegisterRoutes mounts POST /reports and the /admin/reports queue.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.With(middleware.RequireAuth).Post("/reports", handler.createReport)

	api.Route("/admin/reports", func(router chi.Router) {
		router.Use(middleware.Require(sec.RequireAdmin))

		router.Get("/", handler.listReports)
		router.Post("/{id}/resolve", handler.resolveReport)
	})
}

/*
POST /api/v1/reports.

Request:
  - Body: Input (kind: missing_image | chapter_not_loading | translation_error | other)

Response:
  - 201: Report
  - 409: Already reported
  - 429: report quota exhausted
*/
func (handler *Handler) createReport(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Create(request.Context(), requestutil.Viewer(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, report)
}

/*
GET /api/v1/admin/reports.

Request:
  - resolved: bool (optional)
  - page: int (30 per page)
*/
func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, PageSize)

	reports, total, err := handler.service.List(request.Context(), requestutil.Viewer(request),
		requestutil.QueryOptionalBool(request, "resolved"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type resolveRequest struct {
	Resolved bool `json:"resolved"`
}

// POST /api/v1/admin/reports/{id}/resolve.
func (handler *Handler) resolveReport(writer http.ResponseWriter, request *http.Request) {
	var input resolveRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Resolve(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input.Resolved)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}
