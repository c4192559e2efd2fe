// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ascender/internal/platform/middleware"
	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/pagination"
)

// # Handler Implementation

// Handler exposes the admin user management endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /admin/users. Every route requires an administrator.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/admin/users", func(router chi.Router) {
		router.Use(middleware.Require(sec.RequireAdmin))

		router.Get("/", handler.listUsers)
		router.Post("/{id}/role", handler.setRole)
		router.Post("/{id}/ban", handler.setBan)
	})
}

/*
GET /api/v1/admin/users.

Request:
  - search: string (UUID for an exact match, otherwise a name fragment)
  - role: string
  - page: int (30 per page)

Response:
  - 200: []User: Paginated list
  - 403: ErrAdminOnly
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, PageSize)

	filter := Filter{
		Search: requestutil.Query(request, "search"),
		Role:   sec.Role(requestutil.Query(request, "role")),
	}

	users, total, err := handler.service.List(request.Context(), requestutil.Viewer(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type setRoleRequest struct {
	Role string `json:"role"`
}

/*
POST /api/v1/admin/users/{id}/role.

Response:
  - 200: User: Updated account
  - 400: Unknown role
  - 403: Self change, super admin rules
  - 404: User not found
*/
func (handler *Handler) setRole(writer http.ResponseWriter, request *http.Request) {
	var input setRoleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SetRole(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), sec.Role(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
POST /api/v1/admin/users/{id}/ban.

Request:
  - Body: BanInput ({"banned": true, "total": false} is a soft ban)

Response:
  - 200: User: Updated account
*/
func (handler *Handler) setBan(writer http.ResponseWriter, request *http.Request) {
	var input BanInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SetBan(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
