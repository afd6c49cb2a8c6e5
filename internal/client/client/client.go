package client

import (
	"context"

	"github.com/dmitrijs2005/planningpoker/internal/client/models"
)

// Client is the boundary the session core talks to. Every method maps
// server failures to the sentinel errors of this package.
type Client interface {
	Close() error

	// SetTokens installs a stored credential; Tokens returns the current one,
	// which changes on login, refresh and logout.
	SetTokens(t models.Tokens)
	Tokens() models.Tokens

	Register(ctx context.Context, name, email, password string) (*models.Developer, error)
	Login(ctx context.Context, email, password string) (models.Tokens, *models.Developer, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Developer, error)
	Ping(ctx context.Context) error

	CreateTable(ctx context.Context) (*models.PokerTable, error)
	GetTable(ctx context.Context, tableID int64) (*models.PokerTable, error)
	ListActiveTables(ctx context.Context) ([]models.PokerTable, error)
	ListMyClosedTables(ctx context.Context, developerID int64) ([]models.PokerTable, error)
	CloseTable(ctx context.Context, tableID int64) error
	ResetAllVotes(ctx context.Context, tableID int64) error

	JoinTable(ctx context.Context, tableID int64) (*models.Developer, *models.PokerTable, error)
	ListDevelopers(ctx context.Context, tableID int64) ([]models.Developer, error)
	CastVote(ctx context.Context, developerID, tableID int64, value int32) error
	HasVoted(ctx context.Context, developerID int64) (bool, error)

	ListStories(ctx context.Context, tableID int64) ([]models.UserStory, error)
	CreateStory(ctx context.Context, tableID int64, in models.StoryInput) (*models.UserStory, error)
	UpdateStory(ctx context.Context, storyID int64, patch models.StoryPatch) (*models.UserStory, error)
	DeleteStory(ctx context.Context, storyID int64) error
	ExportStoriesCsv(ctx context.Context, tableID int64) (*models.Export, error)
	GetExportURL(ctx context.Context, tableID int64) (*models.ArchiveLink, error)
}
