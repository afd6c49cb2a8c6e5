package tables

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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (*models.PokerTable, error) {
	t := &models.PokerTable{}
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.IsClosed); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context) (*models.PokerTable, error) {
	query :=
		`WITH next AS (SELECT nextval(pg_get_serial_sequence('poker_tables', 'id')) AS id)
		 INSERT INTO poker_tables (id, name)
		 SELECT id, 'Table ' || id FROM next
		 RETURNING id, name, created_at, is_closed`

	t, err := scanTable(r.db.QueryRowContext(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) get(ctx context.Context, query string, id int64) (*models.PokerTable, error) {
	t, err := scanTable(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.PokerTable, error) {
	return r.get(ctx, `SELECT id, name, created_at, is_closed FROM poker_tables WHERE id = $1`, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.PokerTable, error) {
	return r.get(ctx, `SELECT id, name, created_at, is_closed FROM poker_tables WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.PokerTable, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.PokerTable, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.PokerTable, error) {
	return r.list(ctx, `SELECT id, name, created_at, is_closed FROM poker_tables WHERE NOT is_closed ORDER BY id`)
}

func (r *PostgresRepository) ListClosedByDeveloper(ctx context.Context, developerID int64) ([]*models.PokerTable, error) {
	query :=
		`SELECT t.id, t.name, t.created_at, t.is_closed
		 FROM poker_tables t
		 JOIN participations p ON p.poker_table_id = t.id
		 WHERE t.is_closed AND p.developer_id = $1
		 ORDER BY t.id DESC`
	return r.list(ctx, query, developerID)
}

func (r *PostgresRepository) MarkClosed(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE poker_tables SET is_closed = true WHERE id = $1 AND NOT is_closed`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrTableClosed
	}
	return nil
}
