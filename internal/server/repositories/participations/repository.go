// Package participations stores the vote snapshot taken when a table closes.
package participations

import (
	"context"

	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Participation) error
	ListByTable(ctx context.Context, tableID int64) ([]*models.Participation, error)
}
