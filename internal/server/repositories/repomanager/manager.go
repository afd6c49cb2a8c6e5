package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/developers"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/exports"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/participations"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/stories"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/tables"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same code against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Developers(db dbx.DBTX) developers.Repository
	Tables(db dbx.DBTX) tables.Repository
	Stories(db dbx.DBTX) stories.Repository
	Participations(db dbx.DBTX) participations.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Exports(db dbx.DBTX) exports.Repository
}
