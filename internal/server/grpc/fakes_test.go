package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/logging"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/dmitrijs2005/planningpoker/internal/server/services"
)

// ---- fakes ----

type fakeDevelopers struct {
	dev    *models.Developer
	tokens *services.TokenPair
	err    error

	lastRefresh string
}

func (f *fakeDevelopers) Register(_ context.Context, name, email, _ string) (*models.Developer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Developer{ID: 10, Name: name, Email: email}, nil
}

func (f *fakeDevelopers) Login(context.Context, string, string) (*services.TokenPair, *models.Developer, error) {
	return f.tokens, f.dev, f.err
}

func (f *fakeDevelopers) RefreshToken(_ context.Context, r string) (*services.TokenPair, error) {
	f.lastRefresh = r
	return f.tokens, f.err
}

func (f *fakeDevelopers) Logout(_ context.Context, r string) error {
	f.lastRefresh = r
	return f.err
}

func (f *fakeDevelopers) Me(_ context.Context, id int64) (*models.Developer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Developer{ID: id, Name: "me", Email: "me@example.com"}, nil
}

type voteCall struct {
	caller, developer, table int64
	value                    int32
}

type fakeTables struct {
	table  *models.PokerTable
	devs   []*models.Developer
	voted  bool
	url    string
	err    error
	caller int64
	votes  []voteCall
}

func (f *fakeTables) CreateTable(context.Context) (*models.PokerTable, error) {
	return f.table, f.err
}

func (f *fakeTables) GetTable(context.Context, int64) (*models.PokerTable, error) {
	return f.table, f.err
}

func (f *fakeTables) ListActiveTables(context.Context) ([]*models.PokerTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.PokerTable{f.table}, nil
}

func (f *fakeTables) ListMyClosedTables(_ context.Context, callerID, _ int64) ([]*models.PokerTable, error) {
	f.caller = callerID
	if f.err != nil {
		return nil, f.err
	}
	return []*models.PokerTable{f.table}, nil
}

func (f *fakeTables) JoinTable(_ context.Context, callerID, _ int64) (*models.Developer, *models.PokerTable, error) {
	f.caller = callerID
	if f.err != nil {
		return nil, nil, f.err
	}
	return &models.Developer{ID: callerID, Name: "a", Email: "a@b.c"}, f.table, nil
}

func (f *fakeTables) ListDevelopers(context.Context, int64) ([]*models.Developer, error) {
	return f.devs, f.err
}

func (f *fakeTables) CastVote(_ context.Context, callerID, developerID, tableID int64, value int32) error {
	f.votes = append(f.votes, voteCall{callerID, developerID, tableID, value})
	return f.err
}

func (f *fakeTables) HasVoted(context.Context, int64) (bool, error) {
	return f.voted, f.err
}

func (f *fakeTables) ResetAllVotes(_ context.Context, callerID, _ int64) error {
	f.caller = callerID
	return f.err
}

func (f *fakeTables) CloseTable(_ context.Context, callerID, _ int64) error {
	f.caller = callerID
	return f.err
}

func (f *fakeTables) GetExportURL(context.Context, int64) (string, string, time.Time, error) {
	if f.err != nil {
		return "", "", time.Time{}, f.err
	}
	return f.url, "exports/k.csv", time.Unix(1700000000, 0).UTC(), nil
}

type fakeStories struct {
	stories   []*models.UserStory
	err       error
	lastPatch models.StoryPatch
}

func (f *fakeStories) List(context.Context, int64) ([]*models.UserStory, error) {
	return f.stories, f.err
}

func (f *fakeStories) Create(_ context.Context, tableID int64, title, description string, points *int32) (*models.UserStory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserStory{ID: 1, PokerTableID: tableID, Title: title, Description: description, EstimatedPoints: points}, nil
}

func (f *fakeStories) Update(_ context.Context, id int64, patch models.StoryPatch) (*models.UserStory, error) {
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	s := patch.Apply(models.UserStory{ID: id, Title: "old"})
	return &s, nil
}

func (f *fakeStories) Delete(context.Context, int64) error { return f.err }

func (f *fakeStories) ExportCSV(_ context.Context, tableID int64) (string, []byte, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return services.ExportFilename(tableID), []byte("csv"), nil
}

// ---- helpers ----

func newServer(d *fakeDevelopers, t *fakeTables, s *fakeStories) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), d, t, s, "k")
}

func withCaller(id int64) context.Context {
	return context.WithValue(context.Background(), developerIDKey, id)
}
