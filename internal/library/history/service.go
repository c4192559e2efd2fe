// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

import (
	"context"

	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the viewer's most recent reading positions.
func (service *Service) List(context context.Context, viewer *sec.Viewer) ([]*Entry, error) {
	if err := sec.RequireUser(viewer); err != nil {
		return nil, err
	}
	return service.repo.List(context, viewer.UserID, ListLimit)
}

// Record upserts the viewer's position in a work. Soft-banned readers keep their history.
func (service *Service) Record(context context.Context, viewer *sec.Viewer, input Input) error {
	if err := sec.RequireUser(viewer); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.UUID(FieldWorkID, input.WorkID)
	validator.UUID(FieldChapterID, input.ChapterID)
	validator.Range(FieldProgress, input.Progress, 0, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Upsert(context, viewer.UserID, input)
}
