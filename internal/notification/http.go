// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ascender/internal/platform/middleware"
	requestutil "github.com/taibuivan/ascender/internal/platform/request"
	"github.com/taibuivan/ascender/internal/platform/respond"
)

// Handler implements the notification inbox endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new notification [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the inbox under /notifications. Every route requires a session.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/notifications", func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Get("/", handler.list)
		router.Get("/unread-count", handler.unreadCount)
		router.Post("/read-all", handler.markAllRead)
		router.Post("/{id}/read", handler.markRead)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	notifications, err := handler.service.List(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, notifications)
}

func (handler *Handler) unreadCount(writer http.ResponseWriter, request *http.Request) {
	count, err := handler.service.UnreadCount(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{FieldCount: count})
}

func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if err := handler.service.MarkRead(request.Context(), requestutil.Viewer(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) markAllRead(writer http.ResponseWriter, request *http.Request) {
	updated, err := handler.service.MarkAllRead(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{FieldUpdated: updated})
}
