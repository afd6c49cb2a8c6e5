// Package developers declares the repository contract for developer
// accounts and their table seat and current vote.
package developers

import (
	"context"

	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

type Repository interface {
	// Create inserts a developer; a duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, d *models.Developer) (*models.Developer, error)
	GetByID(ctx context.Context, id int64) (*models.Developer, error)
	GetByEmail(ctx context.Context, email string) (*models.Developer, error)

	// ListByTable returns the developers seated at tableID ordered by id.
	ListByTable(ctx context.Context, tableID int64) ([]*models.Developer, error)

	// SetTable seats developer id at tableID, clearing the vote when resetVote is set.
	SetTable(ctx context.Context, id int64, tableID int64, resetVote bool) error

	// SetVote stores vote (nil clears it) for developer id.
	SetVote(ctx context.Context, id int64, vote *int32) error

	// ResetVotes clears every vote at tableID and returns the affected count.
	ResetVotes(ctx context.Context, tableID int64) (int64, error)

	// DetachAll unseats everyone at tableID and clears their votes.
	DetachAll(ctx context.Context, tableID int64) error
}
