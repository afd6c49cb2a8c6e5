package developers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const selectColumns = `id, name, email, password_hash, poker_table_id, vote, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeveloper(row rowScanner) (*models.Developer, error) {
	var (
		d       models.Developer
		tableID sql.NullInt64
		vote    sql.NullInt32
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Email, &d.PasswordHash, &tableID, &vote, &d.CreatedAt); err != nil {
		return nil, err
	}
	if tableID.Valid {
		d.PokerTableID = &tableID.Int64
	}
	if vote.Valid {
		d.Vote = &vote.Int32
	}
	return &d, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Developer) (*models.Developer, error) {
	query :=
		`INSERT INTO developers (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, d.Name, d.Email, d.PasswordHash).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.Developer, error) {
	query := `SELECT ` + selectColumns + ` FROM developers WHERE ` + where

	d, err := scanDeveloper(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Developer, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Developer, error) {
	return r.getOne(ctx, `email = $1`, email)
}

func (r *PostgresRepository) ListByTable(ctx context.Context, tableID int64) ([]*models.Developer, error) {
	query := `SELECT ` + selectColumns + ` FROM developers WHERE poker_table_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, tableID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Developer, 0)
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SetTable(ctx context.Context, id int64, tableID int64, resetVote bool) error {
	query := `UPDATE developers SET poker_table_id = $2 WHERE id = $1`
	if resetVote {
		query = `UPDATE developers SET poker_table_id = $2, vote = NULL WHERE id = $1`
	}

	n, err := r.exec(ctx, query, id, tableID)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SetVote(ctx context.Context, id int64, vote *int32) error {
	n, err := r.exec(ctx, `UPDATE developers SET vote = $2 WHERE id = $1`, id, vote)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ResetVotes(ctx context.Context, tableID int64) (int64, error) {
	return r.exec(ctx, `UPDATE developers SET vote = NULL WHERE poker_table_id = $1`, tableID)
}

func (r *PostgresRepository) DetachAll(ctx context.Context, tableID int64) error {
	_, err := r.exec(ctx, `UPDATE developers SET poker_table_id = NULL, vote = NULL WHERE poker_table_id = $1`, tableID)
	return err
}
