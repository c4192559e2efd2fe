// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package stats computes the counters shown on the admin dashboard.
package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/sec"
)

// Stats is the admin dashboard summary.
type Stats struct {
	ApprovedWorks       int `json:"approved_works"`
	ApprovedChapters    int `json:"approved_chapters"`
	Users               int `json:"users"`
	PendingWorks        int `json:"pending_works"`
	PendingChapters     int `json:"pending_chapters"`
	PendingRoleRequests int `json:"pending_role_requests"`
}

// Repository computes the counters.
type Repository interface {
	Collect(context context.Context) (*Stats, error)
}

// PostgresRepository implements [Repository] with one round trip.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed stats reader.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Collect(context context.Context) (*Stats, error) {
	work, chapter, account, request := schema.CoreWork, schema.CoreChapter, schema.UserAccount, schema.ModerationRoleRequest
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %[1]s WHERE %[2]s = $1),
			(SELECT COUNT(*) FROM %[3]s WHERE %[4]s = $1),
			(SELECT COUNT(*) FROM %[5]s),
			(SELECT COUNT(*) FROM %[1]s WHERE %[2]s = $2),
			(SELECT COUNT(*) FROM %[3]s WHERE %[4]s = $2),
			(SELECT COUNT(*) FROM %[6]s WHERE %[7]s = $2)
	`,
		work.Table, work.Status, chapter.Table, chapter.Status, account.Table, request.Table, request.Status,
	)

	stats := &Stats{}
	err := repository.db.QueryRow(context, query, string(moderation.StatusApproved), string(moderation.StatusPending)).Scan(
		&stats.ApprovedWorks, &stats.ApprovedChapters, &stats.Users,
		&stats.PendingWorks, &stats.PendingChapters, &stats.PendingRoleRequests,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Stats")
	}
	return stats, nil
}

// Service guards the dashboard.
type Service struct {
	repo Repository
}

// NewService constructs a new stats [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the dashboard counters to an administrator.
func (service *Service) Get(context context.Context, viewer *sec.Viewer) (*Stats, error) {
	if err := sec.RequireAdmin(viewer); err != nil {
		return nil, err
	}
	return service.repo.Collect(context)
}
