package participations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Participation) error {
	query :=
		`INSERT INTO participations (developer_id, poker_table_id, vote)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (developer_id, poker_table_id) DO UPDATE SET vote = EXCLUDED.vote
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, p.DeveloperID, p.PokerTableID, p.Vote).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByTable(ctx context.Context, tableID int64) ([]*models.Participation, error) {
	query :=
		`SELECT id, developer_id, poker_table_id, vote, created_at
		 FROM participations
		 WHERE poker_table_id = $1
		 ORDER BY developer_id`

	rows, err := r.db.QueryContext(ctx, query, tableID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Participation, 0)
	for rows.Next() {
		var (
			p    models.Participation
			vote sql.NullInt32
		)
		if err := rows.Scan(&p.ID, &p.DeveloperID, &p.PokerTableID, &vote, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if vote.Valid {
			p.Vote = &vote.Int32
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
