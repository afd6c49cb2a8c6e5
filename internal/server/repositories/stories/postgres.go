package stories

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

func scanStory(row rowScanner) (*models.UserStory, error) {
	var (
		s      models.UserStory
		points sql.NullInt32
	)
	if err := row.Scan(&s.ID, &s.PokerTableID, &s.Title, &s.Description, &points); err != nil {
		return nil, err
	}
	if points.Valid {
		s.EstimatedPoints = &points.Int32
	}
	return &s, nil
}

func (r *PostgresRepository) ListByTable(ctx context.Context, tableID int64) ([]*models.UserStory, error) {
	query :=
		`SELECT id, poker_table_id, title, description, estimated_points
		 FROM user_stories
		 WHERE poker_table_id = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, tableID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.UserStory, 0)
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.UserStory, error) {
	s, err := scanStory(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.UserStory, error) {
	return r.one(ctx, `SELECT id, poker_table_id, title, description, estimated_points FROM user_stories WHERE id = $1`, id)
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.UserStory) (*models.UserStory, error) {
	query :=
		`INSERT INTO user_stories (poker_table_id, title, description, estimated_points)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, poker_table_id, title, description, estimated_points`
	return r.one(ctx, query, s.PokerTableID, s.Title, s.Description, s.EstimatedPoints)
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.UserStory) (*models.UserStory, error) {
	query :=
		`UPDATE user_stories
		 SET title = $2, description = $3, estimated_points = $4
		 WHERE id = $1
		 RETURNING id, poker_table_id, title, description, estimated_points`
	return r.one(ctx, query, s.ID, s.Title, s.Description, s.EstimatedPoints)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
