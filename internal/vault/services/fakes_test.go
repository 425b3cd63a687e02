package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/glopmts/my-accounts-sub000/internal/dbx"
	"github.com/glopmts/my-accounts-sub000/internal/logging"
	"github.com/glopmts/my-accounts-sub000/internal/vault/config"
	"github.com/glopmts/my-accounts-sub000/internal/vault/models"
	sessionsrepo "github.com/glopmts/my-accounts-sub000/internal/vault/repositories/sessions"
	usersrepo "github.com/glopmts/my-accounts-sub000/internal/vault/repositories/users"
)

// --- fakes in place of the Postgres repositories ---

type fakeUsersRepo struct {
	user    *models.User
	findErr error

	takenCodes  map[string]bool
	takenErr    error
	takenCalls  int
	updateErrs  []error // popped per UpdateCode call; nil-padded
	updatedCode string
	updatedAt   time.Time
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.user == nil || f.user.ID != id {
		return nil, common.ErrorNotFound
	}
	return f.user, nil
}

func (f *fakeUsersRepo) FindByCode(ctx context.Context, code string) (*models.User, error) {
	if f.user != nil && f.user.Code == code {
		return f.user, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) CodeTaken(ctx context.Context, code string, excludeUserID string) (bool, error) {
	f.takenCalls++
	if f.takenErr != nil {
		return false, f.takenErr
	}
	return f.takenCodes[code], nil
}

func (f *fakeUsersRepo) UpdateCode(ctx context.Context, id string, code string, generatedAt time.Time) error {
	var err error
	if len(f.updateErrs) > 0 {
		err, f.updateErrs = f.updateErrs[0], f.updateErrs[1:]
	}
	if err != nil {
		return err
	}
	f.updatedCode = code
	f.updatedAt = generatedAt
	return nil
}

type fakeSessionsRepo struct {
	created   []*models.ElevatedSession
	createErr error

	findOut *models.ElevatedSession
	findErr error

	invalidated []string
	invalidErr  error

	deleted   int64
	deleteErr error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.ElevatedSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessionsRepo) FindActiveByToken(ctx context.Context, token string) (*models.ElevatedSession, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findOut == nil || f.findOut.Token != token {
		return nil, common.ErrorNotFound
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Invalidate(ctx context.Context, token string) error {
	if f.invalidErr != nil {
		return f.invalidErr
	}
	f.invalidated = append(f.invalidated, token)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpiredOrInvalid(ctx context.Context) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleted, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }

// --- construction helpers ---

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, rm *fakeRepoManager) (*StepUpService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := NewStepUpService(db, rm, cfg, logger)
	svc.now = func() time.Time { return testNow }
	return svc, mock
}
