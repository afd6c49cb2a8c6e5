// Package stories declares the repository contract for user stories.
package stories

import (
	"context"

	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

type Repository interface {
	// ListByTable returns the stories of tableID ordered by id.
	ListByTable(ctx context.Context, tableID int64) ([]*models.UserStory, error)
	Get(ctx context.Context, id int64) (*models.UserStory, error)
	Create(ctx context.Context, s *models.UserStory) (*models.UserStory, error)

	// Update writes title, description and estimate of s.
	Update(ctx context.Context, s *models.UserStory) (*models.UserStory, error)

	// Delete removes story id; a missing story yields common.ErrorNotFound.
	Delete(ctx context.Context, id int64) error
}
