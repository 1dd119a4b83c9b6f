// Package repomanager hands out per-handle repositories so services can
// use the same repository code against *sql.DB or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Tushar822/bugtracker/internal/dbx"
	"github.com/Tushar822/bugtracker/internal/server/repositories/attachments"
	"github.com/Tushar822/bugtracker/internal/server/repositories/issues"
	"github.com/Tushar822/bugtracker/internal/server/repositories/projects"
	"github.com/Tushar822/bugtracker/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Issues(db dbx.DBTX) issues.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
