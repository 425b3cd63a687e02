package repomanager

import (
	"context"
	"database/sql"

	"github.com/glopmts/my-accounts-sub000/internal/dbx"
	"github.com/glopmts/my-accounts-sub000/internal/vault/repositories/sessions"
	"github.com/glopmts/my-accounts-sub000/internal/vault/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
