// Package users declares the repository contract the step-up service
// requires from user storage.
package users

import (
	"context"
	"time"

	"github.com/glopmts/my-accounts-sub000/internal/vault/models"
)

// Repository defines the user lookups and the single mutation the core
// performs. Implementations should return common.ErrorNotFound for absent
// rows and common.ErrorConflict when a code write violates uniqueness.
type Repository interface {
	// FindByID returns the user with the given id.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByCode returns the user currently holding the given access code.
	FindByCode(ctx context.Context, code string) (*models.User, error)

	// CodeTaken reports whether any user other than excludeUserID holds
	// the code. Pass an empty excludeUserID to check against everyone.
	CodeTaken(ctx context.Context, code string, excludeUserID string) (bool, error)

	// UpdateCode replaces the user's access code and records when it was
	// generated. A unique violation surfaces as common.ErrorConflict so
	// callers can regenerate and retry.
	UpdateCode(ctx context.Context, id string, code string, generatedAt time.Time) error
}
