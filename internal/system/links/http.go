// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package links

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
)

// Handler exposes public links.
type Handler struct {
	service *Service
}

// NewHandler constructs a new links [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public read and the super admin write.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/links/{key}", handler.get)
	api.Put("/admin/links/{key}", handler.set)
}

// get responds with the link or null.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	link, err := handler.service.Get(request.Context(), requestutil.Param(request, "key"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}

type setLinkRequest struct {
	Value string `json:"value"`
}

func (handler *Handler) set(writer http.ResponseWriter, request *http.Request) {
	var input setLinkRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.Set(request.Context(), requestutil.Viewer(request), requestutil.Param(request, "key"), input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}
