package exports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tableID int64, objectKey string) (*models.TableExport, error) {
	query :=
		`INSERT INTO table_exports (poker_table_id, object_key)
		 VALUES ($1, $2)
		 RETURNING id, created_at`

	e := &models.TableExport{PokerTableID: tableID, ObjectKey: objectKey}
	if err := r.db.QueryRowContext(ctx, query, tableID, objectKey).Scan(&e.ID, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, tableID int64) (*models.TableExport, error) {
	query :=
		`SELECT id, poker_table_id, object_key, created_at
		 FROM table_exports
		 WHERE poker_table_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`

	e := &models.TableExport{}
	err := r.db.QueryRowContext(ctx, query, tableID).Scan(&e.ID, &e.PokerTableID, &e.ObjectKey, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}
