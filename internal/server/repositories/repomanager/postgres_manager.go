// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/server/migrations"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/developers"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/exports"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/participations"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/stories"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/tables"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Developers(db dbx.DBTX) developers.Repository {
	return developers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tables(db dbx.DBTX) tables.Repository {
	return tables.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stories(db dbx.DBTX) stories.Repository {
	return stories.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Participations(db dbx.DBTX) participations.Repository {
	return participations.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Exports(db dbx.DBTX) exports.Repository {
	return exports.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
