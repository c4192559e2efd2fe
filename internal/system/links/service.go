// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package links

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/platform/validate"
	"github.com/taibuivan/ascender/internal/system/audit"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// Service reads and writes public links.
type Service struct {
	repo   Repository
	audit  audit.Recorder
	logger *slog.Logger
}

// NewService constructs a new links [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: recorder, logger: logger}
}

// Get returns the link for key to anyone. A missing link is nil, not an error.
func (service *Service) Get(context context.Context, key string) (*Link, error) {
	if !keyPattern.MatchString(key) {
		return nil, nil
	}
	return service.repo.Get(context, key)
}

// Value returns the configured value for key, or "" when absent or unreadable.
func (service *Service) Value(context context.Context, key string) string {
	link, err := service.repo.Get(context, key)
	if err != nil {
		service.logger.WarnContext(context, "public_link_lookup_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return ""
	}
	if link == nil {
		return ""
	}
	return link.Value
}

// Set stores a link. Only the super admin may change public links.
func (service *Service) Set(context context.Context, viewer *sec.Viewer, key, value string) (*Link, error) {
	if err := sec.RequireSuperAdmin(viewer); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldKey, !keyPattern.MatchString(key), "must be 1-64 lowercase letters, digits, '-' or '_'")
	validator.Required(FieldValue, value).MaxLen(FieldValue, value, 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	link := &Link{Key: key, Value: value}
	if err := service.repo.Set(context, link); err != nil {
		return nil, err
	}

	service.audit.Record(context, viewer, audit.ActionSetPublicLink, audit.TargetPublicLink, key, value)
	service.logger.InfoContext(context, "public_link_set", slog.String("key", key))
	return link, nil
}
