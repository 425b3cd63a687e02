// Package sessions declares the repository contract for elevated-session
// storage.
package sessions

import (
	"context"

	"github.com/glopmts/my-accounts-sub000/internal/vault/models"
)

// Repository defines operations for issuing, retrieving, revoking and
// sweeping elevated sessions.
type Repository interface {
	// Create stores a new elevated session row.
	Create(ctx context.Context, session *models.ElevatedSession) error

	// FindActiveByToken looks up a session by its opaque token, skipping
	// rows already marked invalid. Expiry is intentionally not filtered
	// here: the caller distinguishes "expired" to clear the client cookie.
	// Absent tokens yield common.ErrorNotFound.
	FindActiveByToken(ctx context.Context, token string) (*models.ElevatedSession, error)

	// Invalidate clears the validity flag of the session with the given
	// token. Invalidating an absent or already-invalid token is not an
	// error.
	Invalidate(ctx context.Context, token string) error

	// DeleteExpiredOrInvalid physically removes rows that are past expiry
	// or marked invalid, returning how many were deleted. Idempotent and
	// safe to run concurrently with itself.
	DeleteExpiredOrInvalid(ctx context.Context) (int64, error)
}
