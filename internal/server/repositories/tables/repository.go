// Package tables declares the repository contract for poker tables.
package tables

import (
	"context"

	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

type Repository interface {
	// Create inserts an open table named "Table <id>".
	Create(ctx context.Context) (*models.PokerTable, error)
	Get(ctx context.Context, id int64) (*models.PokerTable, error)

	// GetForUpdate locks the row for the rest of the transaction.
	GetForUpdate(ctx context.Context, id int64) (*models.PokerTable, error)

	ListActive(ctx context.Context) ([]*models.PokerTable, error)

	// ListClosedByDeveloper returns closed tables developerID took part in, newest first.
	ListClosedByDeveloper(ctx context.Context, developerID int64) ([]*models.PokerTable, error)

	// MarkClosed flips is_closed; an already closed table yields common.ErrTableClosed.
	MarkClosed(ctx context.Context, id int64) error
}
