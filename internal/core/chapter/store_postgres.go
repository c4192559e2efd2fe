// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/moderation"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var chapterColumns = strings.Join(schema.CoreChapter.Columns(), ", ")

func scanChapter(row pgx.Row, chapter *Chapter, extra ...any) error {
	var status string
	destinations := []any{
		&chapter.ID, &chapter.WorkID, &chapter.OwnerID, &chapter.Number, &chapter.Title,
		&chapter.Pages, &chapter.PageKeys, &status, &chapter.ViewsTotal, &chapter.CreatedAt, &chapter.UpdatedAt,
	}
	err := row.Scan(append(destinations, extra...)...)
	chapter.Status = moderation.Status(status)
	return err
}

func (repository *PostgresRepository) ListByWork(context context.Context, workID string, includeAll bool) ([]*Chapter, error) {
	table := schema.CoreChapter

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, chapterColumns, table.Table, table.WorkID))
	args := []any{workID}

	if !includeAll {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $2", table.Status))
		args = append(args, string(moderation.StatusApproved))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC, %s ASC", table.Number, table.CreatedAt))

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		chapter := &Chapter{}
		if err := scanChapter(rows, chapter); err != nil {
			return nil, dberr.Wrap(err, "Chapter")
		}
		chapters = append(chapters, chapter)
	}

	return chapters, dberr.Wrap(rows.Err(), "Chapter")
}

func (repository *PostgresRepository) ListPending(context context.Context, limit, offset int) ([]*Chapter, int, error) {
	table := schema.CoreChapter
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`, chapterColumns, table.Table, table.Status, table.CreatedAt)

	rows, err := repository.db.Query(context, query, string(moderation.StatusPending), limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Chapter")
	}
	defer rows.Close()

	chapters := []*Chapter{}
	var total int
	for rows.Next() {
		chapter := &Chapter{}
		if err := scanChapter(rows, chapter, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Chapter")
		}
		chapters = append(chapters, chapter)
	}

	return chapters, total, dberr.Wrap(rows.Err(), "Chapter")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, chapterColumns, schema.CoreChapter.Table, schema.CoreChapter.ID)

	chapter := &Chapter{}
	if err := scanChapter(repository.db.QueryRow(context, query, id), chapter); err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}
	return chapter, nil
}

func (repository *PostgresRepository) Create(context context.Context, chapter *Chapter) error {
	table := schema.CoreChapter
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, table.ID, table.WorkID, table.OwnerID, table.Number, table.Title,
		table.Pages, table.PageKeys, table.Status, table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		chapter.ID, chapter.WorkID, chapter.OwnerID, chapter.Number, chapter.Title,
		chapter.Pages, chapter.PageKeys, string(chapter.Status),
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.NotFound("Work")
	}
	return dberr.Wrap(err, "Chapter")
}

func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status moderation.Status) (*Chapter, error) {
	table := schema.CoreChapter
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Status, table.UpdatedAt, table.ID, chapterColumns,
	)

	chapter := &Chapter{}
	if err := scanChapter(repository.db.QueryRow(context, query, id, string(status)), chapter); err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}
	return chapter, nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	table := schema.CoreChapter
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`, table.Table, table.ViewsTotal, table.ViewsTotal, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}

func (repository *PostgresRepository) CountPendingByOwner(context context.Context, ownerID string) (int, error) {
	table := schema.CoreChapter
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.OwnerID, table.Status)

	var count int
	if err := repository.db.QueryRow(context, query, ownerID, string(moderation.StatusPending)).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_chapter_repo_count_pending_failed: %w", err)
	}
	return count, nil
}
