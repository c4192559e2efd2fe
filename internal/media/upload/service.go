// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/ascender/internal/platform/ratelimit"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// Service authorizes uploads and delegates signing.
type Service struct {
	presigner Presigner
	limiter   *ratelimit.Limiter
	logger    *slog.Logger
}

// NewService falls back to [NotConfigured] when presigner is nil.
func NewService(presigner Presigner, limiter *ratelimit.Limiter, logger *slog.Logger) *Service {
	if presigner == nil {
		presigner = NotConfigured{}
	}
	return &Service{presigner: presigner, limiter: limiter, logger: logger}
}

// # Guards

func contentGuard(viewer *sec.Viewer) error {
	if err := sec.CanInteract(viewer); err != nil {
		return err
	}
	return sec.RequireTranslator(viewer)
}

func validateFile(validator *validate.Validator, prefix string, file File) {
	validator.OneOf(prefix+FieldContentType, file.ContentType, ContentTypes...)
	validator.Custom(prefix+FieldSize, file.Size <= 0 || file.Size > MaxFileSize,
		fmt.Sprintf("Must be between 1 byte and %dMB", MaxFileSize>>20))
}

// # Operations

// Cover signs a work cover. Translators and above only.
func (service *Service) Cover(context context.Context, viewer *sec.Viewer, file File) (*Signed, error) {
	if err := contentGuard(viewer); err != nil {
		return nil, err
	}
	return service.single(context, viewer, FolderCovers, file)
}

// Avatar signs a profile picture. Soft-banned users may still change it.
func (service *Service) Avatar(context context.Context, viewer *sec.Viewer, file File) (*Signed, error) {
	if err := sec.NotHardBanned(viewer); err != nil {
		return nil, err
	}
	return service.single(context, viewer, FolderAvatars, file)
}

/*
Pages signs every page of a chapter in one call.

The whole batch counts as a single upload against the quota and fails as a
unit: one invalid declaration rejects all of them.
*/
func (service *Service) Pages(context context.Context, viewer *sec.Viewer, input PagesInput) (*Pages, error) {
	if err := contentGuard(viewer); err != nil {
		return nil, err
	}
	if err := service.limiter.Check(context, ratelimit.Upload, viewer.UserID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Count(FieldFiles, len(input.Files), 1, MaxPages)
	for i, file := range input.Files {
		validateFile(validator, fmt.Sprintf("%s[%d].", FieldFiles, i), file)
		if validator.HasErrors() {
			break
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pages := &Pages{URLs: make([]*Signed, 0, len(input.Files))}
	for _, file := range input.Files {
		signed, err := service.sign(context, FolderPages, file)
		if err != nil {
			return nil, err
		}
		pages.URLs = append(pages.URLs, signed)
	}

	service.logger.InfoContext(context, "upload_presigned",
		slog.String("user_id", viewer.UserID),
		slog.String("folder", string(FolderPages)),
		slog.Int("count", len(pages.URLs)),
	)
	return pages, nil
}

func (service *Service) single(context context.Context, viewer *sec.Viewer, folder Folder, file File) (*Signed, error) {
	if err := service.limiter.Check(context, ratelimit.Upload, viewer.UserID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validateFile(validator, "", file)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	signed, err := service.sign(context, folder, file)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "upload_presigned",
		slog.String("user_id", viewer.UserID),
		slog.String("folder", string(folder)),
		slog.String("key", signed.Key),
	)
	return signed, nil
}

func (service *Service) sign(context context.Context, folder Folder, file File) (*Signed, error) {
	key := fmt.Sprintf("%s/%s.%s", folder, uuid.New(), extension(file.ContentType))
	return service.presigner.Presign(context, key, file)
}
