package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/dmitrijs2005/planningpoker/internal/logging"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/repomanager"
)

// StoryService manages the user stories of a table. Mutations against a
// closed table are rejected with common.ErrTableClosed.
type StoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewStoryService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *StoryService {
	return &StoryService{db: db, repomanager: m, logger: l.With("module", "stories")}
}

func validatePoints(p *int32) error {
	if p != nil && *p < 0 {
		return fmt.Errorf("%w: estimate must not be negative", common.ErrorValidation)
	}
	return nil
}

func (s *StoryService) openTable(ctx context.Context, tableID int64) error {
	t, err := s.repomanager.Tables(s.db).Get(ctx, tableID)
	if err != nil {
		return err
	}
	if t.IsClosed {
		return common.ErrTableClosed
	}
	return nil
}

func (s *StoryService) List(ctx context.Context, tableID int64) ([]*models.UserStory, error) {
	if _, err := s.repomanager.Tables(s.db).Get(ctx, tableID); err != nil {
		return nil, err
	}
	return s.repomanager.Stories(s.db).ListByTable(ctx, tableID)
}

func (s *StoryService) Create(ctx context.Context, tableID int64, title, description string, points *int32) (*models.UserStory, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}
	if err := s.openTable(ctx, tableID); err != nil {
		return nil, err
	}

	story, err := s.repomanager.Stories(s.db).Create(ctx, &models.UserStory{
		PokerTableID:    tableID,
		Title:           title,
		Description:     description,
		EstimatedPoints: points,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "story created", "table_id", tableID, "story_id", story.ID)
	return story, nil
}

// Update applies patch to story id. Last write wins.
func (s *StoryService) Update(ctx context.Context, id int64, patch models.StoryPatch) (*models.UserStory, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
		}
		patch.Title = &t
	}
	if err := validatePoints(patch.EstimatedPoints); err != nil {
		return nil, err
	}

	repo := s.repomanager.Stories(s.db)
	current, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.openTable(ctx, current.PokerTableID); err != nil {
		return nil, err
	}

	next := patch.Apply(*current)
	return repo.Update(ctx, &next)
}

func (s *StoryService) Delete(ctx context.Context, id int64) error {
	repo := s.repomanager.Stories(s.db)
	current, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.openTable(ctx, current.PokerTableID); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "story deleted", "table_id", current.PokerTableID, "story_id", id)
	return nil
}

// ExportCSV renders the stories of tableID. Closed tables export too.
func (s *StoryService) ExportCSV(ctx context.Context, tableID int64) (string, []byte, error) {
	stories, err := s.List(ctx, tableID)
	if err != nil {
		return "", nil, err
	}
	return ExportFilename(tableID), RenderStoriesCSV(stories), nil
}
