// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

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

var workColumns = strings.Join(schema.CoreWork.Columns(), ", ")

// scanWork reads the columns of [workColumns] plus any trailing destinations.
func scanWork(row pgx.Row, work *Work, extra ...any) error {
	var status string
	destinations := []any{
		&work.ID, &work.Slug, &work.Title, &work.Synopsis, &work.Genres, &work.CoverURL, &work.CoverKey,
		&work.OwnerID, &work.OriginalAuthor, &status, &work.ViewsTotal, &work.ViewsWeek,
		&work.CreatedAt, &work.UpdatedAt,
	}
	err := row.Scan(append(destinations, extra...)...)
	work.Status = moderation.Status(status)
	return err
}

func orderBy(sort Sort) string {
	table := schema.CoreWork
	switch sort {
	case SortHot:
		return fmt.Sprintf("%s DESC, %s DESC", table.ViewsWeek, table.UpdatedAt)
	case SortMost:
		return fmt.Sprintf("%s DESC, %s DESC", table.ViewsTotal, table.UpdatedAt)
	case SortOldest:
		return fmt.Sprintf("%s ASC", table.CreatedAt)
	default:
		return fmt.Sprintf("%s DESC", table.UpdatedAt)
	}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error) {
	table := schema.CoreWork

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE TRUE`, workColumns, table.Table))

	args := []any{}
	argID := 1

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.Status, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", table.Title, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", argID, table.Genres))
		args = append(args, filter.Genre)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy(filter.Sort), argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Work")
	}
	defer rows.Close()

	works := []*Work{}
	var total int
	for rows.Next() {
		work := &Work{}
		if err := scanWork(rows, work, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Work")
		}
		works = append(works, work)
	}

	return works, total, dberr.Wrap(rows.Err(), "Work")
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, limit int) ([]*Work, error) {
	table := schema.CoreWork
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		workColumns, table.Table, table.OwnerID, table.UpdatedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "Work")
	}
	defer rows.Close()

	works := []*Work{}
	for rows.Next() {
		work := &Work{}
		if err := scanWork(rows, work); err != nil {
			return nil, dberr.Wrap(err, "Work")
		}
		works = append(works, work)
	}

	return works, dberr.Wrap(rows.Err(), "Work")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Work, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, workColumns, schema.CoreWork.Table, schema.CoreWork.ID)

	work := &Work{}
	if err := scanWork(repository.db.QueryRow(context, query, id), work); err != nil {
		return nil, dberr.Wrap(err, "Work")
	}
	return work, nil
}

func (repository *PostgresRepository) Create(context context.Context, work *Work) error {
	table := schema.CoreWork
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, table.ID, table.Slug, table.Title, table.Synopsis, table.Genres, table.CoverURL,
		table.CoverKey, table.OwnerID, table.OriginalAuthor, table.Status, table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		work.ID, work.Slug, work.Title, work.Synopsis, work.Genres, work.CoverURL,
		work.CoverKey, work.OwnerID, work.OriginalAuthor, string(work.Status),
	).Scan(&work.CreatedAt, &work.UpdatedAt)
	return dberr.Wrap(err, "Work")
}

func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status moderation.Status) (*Work, error) {
	table := schema.CoreWork
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Status, table.UpdatedAt, table.ID, workColumns,
	)

	work := &Work{}
	if err := scanWork(repository.db.QueryRow(context, query, id, string(status)), work); err != nil {
		return nil, dberr.Wrap(err, "Work")
	}
	return work, nil
}

func (repository *PostgresRepository) UpdateOwner(context context.Context, id, ownerID string) (*Work, error) {
	table := schema.CoreWork
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.OwnerID, table.UpdatedAt, table.ID, workColumns,
	)

	work := &Work{}
	err := scanWork(repository.db.QueryRow(context, query, id, ownerID), work)
	if dberr.IsForeignKeyViolation(err) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Work")
	}
	return work, nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	table := schema.CoreWork
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1, %s = %s + 1 WHERE %s = $1`,
		table.Table, table.ViewsTotal, table.ViewsTotal, table.ViewsWeek, table.ViewsWeek, table.ID,
	)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Work")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Work")
	}
	return nil
}

func (repository *PostgresRepository) ResetWeeklyViews(context context.Context) (int64, error) {
	table := schema.CoreWork
	query := fmt.Sprintf(`UPDATE %s SET %s = 0 WHERE %s <> 0`, table.Table, table.ViewsWeek, table.ViewsWeek)

	tag, err := repository.db.Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, "Work")
	}
	return tag.RowsAffected(), nil
}
