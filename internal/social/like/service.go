// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"

	"github.com/taibuivan/ascender/internal/core/work"
	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// Service implements the like use cases.
type Service struct {
	repo  Repository
	works work.Finder
}

func NewService(repo Repository, works work.Finder) *Service {
	return &Service{repo: repo, works: works}
}

func (service *Service) requireVisible(context context.Context, viewer *sec.Viewer, workID string) error {
	if !uuid.Valid(workID) {
		return apperr.NotFound("Work")
	}
	parent, err := service.works.FindByID(context, workID)
	if err != nil {
		return err
	}
	if !parent.VisibleTo(viewer) {
		return apperr.NotFound("Work")
	}
	return nil
}

// Count returns the number of likes on a work.
func (service *Service) Count(context context.Context, viewer *sec.Viewer, workID string) (int, error) {
	if err := service.requireVisible(context, viewer, workID); err != nil {
		return 0, err
	}
	return service.repo.Count(context, workID)
}

// Status reports whether the viewer liked the work. Anonymous viewers never have.
func (service *Service) Status(context context.Context, viewer *sec.Viewer, workID string) (bool, error) {
	if !viewer.Authenticated() || !uuid.Valid(workID) {
		return false, nil
	}
	return service.repo.Exists(context, workID, viewer.UserID)
}

// Toggle flips the viewer's like and returns the new state with the fresh count.
func (service *Service) Toggle(context context.Context, viewer *sec.Viewer, workID string) (*Summary, error) {
	if err := sec.CanInteract(viewer); err != nil {
		return nil, err
	}
	if err := service.requireVisible(context, viewer, workID); err != nil {
		return nil, err
	}

	liked, err := service.repo.Toggle(context, workID, viewer.UserID)
	if err != nil {
		return nil, err
	}

	count, err := service.repo.Count(context, workID)
	if err != nil {
		return nil, err
	}
	return &Summary{Count: count, Liked: liked}, nil
}
