package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/paperkeeper/internal/dbx"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/papers"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same service
// code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Categories(db dbx.DBTX) categories.Repository
	Papers(db dbx.DBTX) papers.Repository
	Notes(db dbx.DBTX) notes.Repository
}
