// Package services contains the step-up business logic: access-code
// generation with collision avoidance, the regeneration rate limit, and
// the elevated-session lifecycle backing sensitive actions.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/glopmts/my-accounts-sub000/internal/cryptox"
	"github.com/glopmts/my-accounts-sub000/internal/dbx"
	"github.com/glopmts/my-accounts-sub000/internal/logging"
	"github.com/glopmts/my-accounts-sub000/internal/shared"
	"github.com/glopmts/my-accounts-sub000/internal/vault/config"
	"github.com/glopmts/my-accounts-sub000/internal/vault/models"
	"github.com/glopmts/my-accounts-sub000/internal/vault/repositories/repomanager"
)

// tokenBytes is the number of random bytes in an elevated-session token
// (hex-encoded to twice this length).
const tokenBytes = 32

// updateCodeRetries bounds how often a code write is retried after the
// storage layer reports a uniqueness conflict (two issuers can race past
// the advisory pre-check; the DB constraint is the real guarantee).
const updateCodeRetries = 3

// RateLimitedError reports that a code regeneration was attempted inside
// the cooldown window. MinutesLeft is the remaining wait, rounded up.
type RateLimitedError struct {
	MinutesLeft int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("code regeneration allowed again in %d minute(s)", e.MinutesLeft)
}

// Validation is the outcome of checking an elevated-session token.
// When Valid is false, ClearCookie tells the handler to drop the
// client-side cookie (expired, revoked or unknown token).
type Validation struct {
	Valid       bool
	ClearCookie bool
	User        *models.User
	ExpiresAt   time.Time
	Kind        models.SessionKind
}

// StepUpService issues and validates elevated sessions and manages users'
// access codes. All collaborators are constructor-injected; the service
// itself is stateless and safe for concurrent use.
type StepUpService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	cfg    *config.Config
	logger logging.Logger

	// now is a seam for tests exercising expiry and cooldown boundaries.
	now func() time.Time
}

// NewStepUpService constructs a StepUpService using repositories and
// runtime config.
func NewStepUpService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *StepUpService {
	return &StepUpService{
		db:     db,
		rm:     rm,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// RegenerateCode replaces the user's access code with a freshly generated
// unique one, enforcing the per-user cooldown. The new code is returned.
//
// Inside the cooldown window the call fails with *RateLimitedError carrying
// the remaining wait in minutes (ceiling). A uniqueness conflict from a
// concurrent issuance is resolved by regenerating and retrying a bounded
// number of times.
func (s *StepUpService) RegenerateCode(ctx context.Context, userID string) (string, error) {
	repo := s.rm.Users(s.db)

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("loading user: %w", err)
	}

	if user.CodeGeneratedAt != nil {
		elapsed := s.now().Sub(*user.CodeGeneratedAt)
		if remaining := s.cfg.CodeRegenCooldown - elapsed; remaining > 0 {
			return "", &RateLimitedError{MinutesLeft: int(math.Ceil(remaining.Seconds() / 60))}
		}
	}

	var code string
	for attempt := 0; attempt < updateCodeRetries; attempt++ {
		code, err = s.GenerateUniqueCode(ctx, user.Code)
		if err != nil {
			return "", err
		}

		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return s.rm.Users(tx).UpdateCode(ctx, userID, code, s.now())
		})
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, common.ErrorConflict) {
			return "", fmt.Errorf("updating code: %w", err)
		}
		s.logger.Warn(ctx, "access code conflicted on write, regenerating", "attempt", attempt+1)
	}
	return "", fmt.Errorf("updating code: %w", common.ErrorConflict)
}

// ConfirmWithCode checks the submitted access code against the user's
// stored one and, on success, issues an elevated session with the
// code-path lifetime. Input is case-insensitive and normalized to
// uppercase before comparison.
//
// A wrong or missing code yields common.ErrorUnauthorized with no further
// detail, so callers cannot distinguish "no such user" from "wrong code".
func (s *StepUpService) ConfirmWithCode(ctx context.Context, userID string, code string) (*models.ElevatedSession, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !IsValidCodeFormat(normalized) {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.rm.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if user.Code == "" || subtle.ConstantTimeCompare([]byte(user.Code), []byte(normalized)) != 1 {
		return nil, common.ErrorUnauthorized
	}

	return s.issueSession(ctx, user.ID, models.SessionKindCode, s.cfg.CodeSessionValidity)
}

// ConfirmWithPassword verifies the user's standing password and, on
// success, issues an elevated session with the password-path lifetime.
// Failures collapse to common.ErrorUnauthorized, same as the code path.
func (s *StepUpService) ConfirmWithPassword(ctx context.Context, userID string, password string) (*models.ElevatedSession, error) {
	if password == "" {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.rm.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.issueSession(ctx, user.ID, models.SessionKindPassword, s.cfg.PasswordSessionValidity)
}

// Validate looks up an elevated-session token. Unknown, revoked and
// expired tokens all come back as an invalid result with ClearCookie set;
// only infrastructure failures return an error.
func (s *StepUpService) Validate(ctx context.Context, token string) (*Validation, error) {
	if token == "" {
		return &Validation{Valid: false}, nil
	}

	session, err := s.rm.Sessions(s.db).FindActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &Validation{Valid: false, ClearCookie: true}, nil
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if session.Expired(s.now()) {
		return &Validation{Valid: false, ClearCookie: true, Kind: session.Kind}, nil
	}

	user, err := s.rm.Users(s.db).FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &Validation{Valid: false, ClearCookie: true, Kind: session.Kind}, nil
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	return &Validation{
		Valid:     true,
		User:      user,
		ExpiresAt: session.ExpiresAt,
		Kind:      session.Kind,
	}, nil
}

// Invalidate revokes the session with the given token. The row is marked
// invalid rather than deleted; the periodic cleanup removes it later.
// Revoking an unknown token is not an error.
func (s *StepUpService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.rm.Sessions(s.db).Invalidate(ctx, token); err != nil {
		return fmt.Errorf("invalidating session: %w", err)
	}
	return nil
}

// CleanupExpired physically deletes sessions that are past expiry or
// marked invalid. Intended to be called from a scheduled job; idempotent.
func (s *StepUpService) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := s.rm.Sessions(s.db).DeleteExpiredOrInvalid(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleaning up sessions: %w", err)
	}
	if deleted > 0 {
		s.logger.Info(ctx, "removed stale elevated sessions", "count", deleted)
	}
	return deleted, nil
}

func (s *StepUpService) issueSession(ctx context.Context, userID string, kind models.SessionKind, validity time.Duration) (*models.ElevatedSession, error) {
	token, err := shared.MakeRandHexString(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	now := s.now()
	session := &models.ElevatedSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		Kind:      kind,
		IsValid:   true,
		CreatedAt: now,
		ExpiresAt: now.Add(validity),
	}

	if err := s.rm.Sessions(s.db).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return session, nil
}
