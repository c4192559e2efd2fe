// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/users/account"
)

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a PostgreSQL backed session store.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// Create persists a new session row.
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	table := schema.UserSession
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		table.Table, strings.Join(table.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		session.ID, session.UserID, session.ExternalID, session.IPHash, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}
	return nil
}

// FindWithUser joins users.account so a request costs one query to authenticate.
func (repository *PostgresSessionRepository) FindWithUser(context context.Context, id string) (*Session, *account.User, error) {
	session, user := schema.UserSession, schema.UserAccount
	query := fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, COALESCE(s.%s, ''), s.%s, s.%s,
			a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s
		FROM %s s
		JOIN %s a ON a.%s = s.%s
		WHERE s.%s = $1
	`,
		session.ID, session.UserID, session.ExternalID, session.IPHash, session.ExpiresAt, session.CreatedAt,
		user.ID, user.ExternalID, user.Name, user.Email, user.DisplayName, user.AvatarURL, user.Role,
		user.Banned, user.BannedTotal, user.LastRoleRequestAt, user.LastSignedIn, user.CreatedAt, user.UpdatedAt,
		session.Table, user.Table, user.ID, session.UserID, session.ID,
	)

	found := &Session{}
	owner := &account.User{}
	var role string
	err := repository.pool.QueryRow(context, query, id).Scan(
		&found.ID, &found.UserID, &found.ExternalID, &found.IPHash, &found.ExpiresAt, &found.CreatedAt,
		&owner.ID, &owner.ExternalID, &owner.Name, &owner.Email, &owner.DisplayName, &owner.AvatarURL, &role,
		&owner.Banned, &owner.BannedTotal, &owner.LastRoleRequestAt, &owner.LastSignedIn, &owner.CreatedAt, &owner.UpdatedAt,
	)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "Session")
	}
	owner.Role = sec.Role(role)

	return found, owner, nil
}

// Delete removes one session.
func (repository *PostgresSessionRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserSession.Table, schema.UserSession.ID)
	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_session_repo_delete_failed: %w", err)
	}
	return nil
}

// DeleteExpired sweeps every expired row.
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context, now time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s <= $1`, schema.UserSession.Table, schema.UserSession.ExpiresAt)
	tag, err := repository.pool.Exec(context, query, now)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_purge_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}
