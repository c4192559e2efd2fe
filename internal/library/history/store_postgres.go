// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) Upsert(context context.Context, userID string, input Input) error {
	history, chapter := schema.LibraryHistory, schema.CoreChapter
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		SELECT $1::uuid, c.%s, c.%s, $4::smallint, NOW()
		FROM %s c
		WHERE c.%s = $3 AND c.%s = $2
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		history.Table, history.UserID, history.WorkID, history.ChapterID, history.Progress, history.UpdatedAt,
		chapter.WorkID, chapter.ID,
		chapter.Table,
		chapter.ID, chapter.WorkID,
		history.UserID, history.WorkID,
		history.ChapterID, history.ChapterID, history.Progress, history.Progress, history.UpdatedAt,
	)

	tag, err := repository.db.Exec(context, query, userID, input.WorkID, input.ChapterID, input.Progress)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}

func (repository *PostgresRepository) List(context context.Context, userID string, limit int) ([]*Entry, error) {
	history, work, chapter := schema.LibraryHistory, schema.CoreWork, schema.CoreChapter
	query := fmt.Sprintf(`
		SELECT h.%s, w.%s, w.%s, w.%s, h.%s, c.%s, h.%s, h.%s
		FROM %s h
		JOIN %s w ON w.%s = h.%s
		JOIN %s c ON c.%s = h.%s
		WHERE h.%s = $1
		ORDER BY h.%s DESC
		LIMIT $2
	`,
		history.WorkID, work.Title, work.Slug, work.CoverURL, history.ChapterID, chapter.Number, history.Progress, history.UpdatedAt,
		history.Table,
		work.Table, work.ID, history.WorkID,
		chapter.Table, chapter.ID, history.ChapterID,
		history.UserID,
		history.UpdatedAt,
	)

	rows, err := repository.db.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "History")
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(&entry.WorkID, &entry.WorkTitle, &entry.WorkSlug, &entry.CoverURL,
			&entry.ChapterID, &entry.ChapterNumber, &entry.Progress, &entry.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "History")
		}
		entries = append(entries, entry)
	}

	return entries, dberr.Wrap(rows.Err(), "History")
}
