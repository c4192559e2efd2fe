// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
	"github.com/taibuivan/ascender/pkg/pagination"
)

// Handler exposes the audit log to administrators.
type Handler struct {
	service *Service
}

// NewHandler constructs a new audit [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /admin/logs.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/admin/logs", handler.listLogs)
}

/*
GET /api/v1/admin/logs.

Response:
  - 200: []Entry: Paginated, 50 per page, newest first
  - 403: ErrAdminOnly
*/
func (handler *Handler) listLogs(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, PageSize)

	entries, total, err := handler.service.List(request.Context(), requestutil.Viewer(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
