// Package users provides the PostgreSQL-backed user repository.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/glopmts/my-accounts-sub000/internal/dbx"
	"github.com/glopmts/my-accounts-sub000/internal/vault/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, COALESCE(password_hash, ''), COALESCE(code, ''), code_generated_at, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*models.User, error) {
	query := `
		SELECT id, email, COALESCE(password_hash, ''), COALESCE(code, ''), code_generated_at, created_at
		FROM users
		WHERE code = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, code))
}

func (r *PostgresRepository) CodeTaken(ctx context.Context, code string, excludeUserID string) (bool, error) {
	// The cast goes on the id column, never on the parameter: the planner
	// constant-folds a $2::uuid cast before the $2 = '' arm can guard it,
	// so an empty exclusion would raise 22P02 instead of matching all rows.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE code = $1 AND ($2 = '' OR id::text <> $2)
		)
	`
	var taken bool
	if err := r.db.QueryRowContext(ctx, query, code, excludeUserID).Scan(&taken); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return taken, nil
}

func (r *PostgresRepository) UpdateCode(ctx context.Context, id string, code string, generatedAt time.Time) error {
	query := `
		UPDATE users
		SET code = $2, code_generated_at = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, code, generatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Code, &user.CodeGeneratedAt, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
