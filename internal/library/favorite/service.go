// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"

	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

type Service struct {
	repo  Repository
	works work.Finder
}

func NewService(repo Repository, works work.Finder) *Service {
	return &Service{repo: repo, works: works}
}

// List returns the viewer's library.
func (service *Service) List(context context.Context, viewer *sec.Viewer) ([]*Favorite, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return nil, err
	}
	return service.repo.List(context, viewer.UserID, ListLimit)
}

// Status reports whether the work is in the viewer's library.
func (service *Service) Status(context context.Context, viewer *sec.Viewer, workID string) (bool, error) {
	if !viewer.Authenticated() || !uuid.Valid(workID) {
		return false, nil
	}
	return service.repo.Exists(context, viewer.UserID, workID)
}

// Toggle adds or removes a visible work and returns whether it is now saved.
func (service *Service) Toggle(context context.Context, viewer *sec.Viewer, workID string) (bool, error) {
	if err := sec.CanInteract(viewer); err != nil {
		return false, err
	}
	if !uuid.Valid(workID) {
		return false, apperr.NotFound("Work")
	}

	parent, err := service.works.FindByID(context, workID)
	if err != nil {
		return false, err
	}
	if !parent.VisibleTo(viewer) {
		return false, apperr.NotFound("Work")
	}

	return service.repo.Toggle(context, viewer.UserID, workID)
}
