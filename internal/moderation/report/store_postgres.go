// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var reportColumns = strings.Join([]string{
	schema.ModerationReport.ID, schema.ModerationReport.ChapterID, schema.ModerationReport.WorkID,
	schema.ModerationReport.UserID, schema.ModerationReport.Kind, schema.ModerationReport.Description,
	schema.ModerationReport.Resolved, schema.ModerationReport.CreatedAt,
}, ", ")

func scanReport(row pgx.Row, report *Report, extra ...any) error {
	var kind string
	destinations := []any{
		&report.ID, &report.ChapterID, &report.WorkID, &report.UserID,
		&kind, &report.Description, &report.Resolved, &report.CreatedAt,
	}
	err := row.Scan(append(destinations, extra...)...)
	report.Kind = Kind(kind)
	return err
}

func (repository *PostgresRepository) Create(context context.Context, report *Report) error {
	table, chapter := schema.ModerationReport, schema.CoreChapter
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		SELECT $1::uuid, c.%s, c.%s, $4::uuid, $5, $6, FALSE, NOW()
		FROM %s c
		WHERE c.%s = $2 AND c.%s = $3
		RETURNING %s
	`,
		table.Table, table.ID, table.ChapterID, table.WorkID, table.UserID, table.Kind, table.Description, table.Resolved, table.CreatedAt,
		chapter.ID, chapter.WorkID,
		chapter.Table,
		chapter.ID, chapter.WorkID,
		table.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		report.ID, report.ChapterID, report.WorkID, report.UserID, string(report.Kind), report.Description,
	).Scan(&report.CreatedAt)

	switch {
	case dberr.IsUniqueViolation(err):
		return ErrDuplicate
	case dberr.IsNotFound(err), dberr.IsForeignKeyViolation(err):
		return apperr.NotFound("Chapter")
	}
	return dberr.Wrap(err, "Report")
}

func (repository *PostgresRepository) List(context context.Context, resolved *bool, limit, offset int) ([]*Report, int, error) {
	table := schema.ModerationReport

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s`, reportColumns, table.Table))

	args := []any{}
	argID := 1
	if resolved != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", table.Resolved, argID))
		args = append(args, *resolved)
		argID++
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", table.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Report")
	}
	defer rows.Close()

	reports := []*Report{}
	var total int
	for rows.Next() {
		report := &Report{}
		if err := scanReport(rows, report, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Report")
		}
		reports = append(reports, report)
	}

	return reports, total, dberr.Wrap(rows.Err(), "Report")
}

func (repository *PostgresRepository) SetResolved(context context.Context, id string, resolved bool) (*Report, error) {
	table := schema.ModerationReport
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 RETURNING %s`, table.Table, table.Resolved, table.ID, reportColumns)

	report := &Report{}
	if err := scanReport(repository.db.QueryRow(context, query, id, resolved), report); err != nil {
		return nil, dberr.Wrap(err, "Report")
	}
	return report, nil
}
