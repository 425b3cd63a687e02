// Package sessions provides the PostgreSQL-backed elevated-session
// repository.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/glopmts/my-accounts-sub000/internal/dbx"
	"github.com/glopmts/my-accounts-sub000/internal/vault/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, session *models.ElevatedSession) error {
	query := `
		INSERT INTO elevated_sessions (id, user_id, token, kind, is_valid, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.Token, string(session.Kind),
		session.IsValid, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindActiveByToken(ctx context.Context, token string) (*models.ElevatedSession, error) {
	query := `
		SELECT id, user_id, token, kind, is_valid, created_at, expires_at
		FROM elevated_sessions
		WHERE token = $1 AND is_valid = true
	`
	session := &models.ElevatedSession{}
	var kind string
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.UserID, &session.Token, &kind,
		&session.IsValid, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	session.Kind = models.SessionKind(kind)
	return session, nil
}

func (r *PostgresRepository) Invalidate(ctx context.Context, token string) error {
	query := `
		UPDATE elevated_sessions
		SET is_valid = false
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpiredOrInvalid(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM elevated_sessions
		WHERE expires_at < now() OR is_valid = false
	`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return deleted, nil
}
