// Package clienttest provides an in-memory client.Client for tests. It keeps
// the table and voting rules of the real server so session flows can be
// exercised end to end without a network.
package clienttest

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/client/client"
	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/common"
)

type account struct {
	password string
	dev      models.Developer
	tableID  int64
}

// Fake is safe for concurrent use.
type Fake struct {
	mu          sync.Mutex
	before      func(ctx context.Context, method string)
	tokens      models.Tokens
	nextDevID   int64
	nextTableID int64
	nextStoryID int64
	accounts    map[int64]*account
	byEmail     map[string]int64
	sessions    map[string]int64
	tables      map[int64]*models.PokerTable
	stories     map[int64]*models.UserStory
	history     map[int64]map[int64]bool
	calls       map[string]int
	errs        map[string]error
	archiveURL  string
}

var _ client.Client = (*Fake)(nil)

// New returns an empty fake. Developer ids start at 10 and table ids at 1.
func New() *Fake {
	return &Fake{
		nextDevID:   10,
		nextTableID: 1,
		nextStoryID: 1,
		accounts:    make(map[int64]*account),
		byEmail:     make(map[string]int64),
		sessions:    make(map[string]int64),
		tables:      make(map[int64]*models.PokerTable),
		stories:     make(map[int64]*models.UserStory),
		history:     make(map[int64]map[int64]bool),
		calls:       make(map[string]int),
		errs:        make(map[string]error),
	}
}

// SetBefore installs a hook run at the start of every call outside the
// lock. Tests use it to hold a call in flight.
func (f *Fake) SetBefore(fn func(ctx context.Context, method string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.before = fn
}

// SetError makes every call to method fail with err until reset with nil.
func (f *Fake) SetError(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, method)
		return
	}
	f.errs[method] = err
}

// Calls returns how many times method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// AddAccount registers a developer directly.
func (f *Fake) AddAccount(name, email, password string) models.Developer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addAccount(name, email, password)
}

func (f *Fake) addAccount(name, email, password string) models.Developer {
	id := f.nextDevID
	f.nextDevID++
	a := &account{password: password, dev: models.Developer{ID: id, Name: name, Email: email}}
	f.accounts[id] = a
	f.byEmail[email] = id
	return a.dev
}

// AddTable creates a table without going through a caller.
func (f *Fake) AddTable(closed bool) models.PokerTable {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.addTable()
	t.IsClosed = closed
	return *t
}

func (f *Fake) addTable() *models.PokerTable {
	id := f.nextTableID
	f.nextTableID++
	t := &models.PokerTable{ID: id, Name: fmt.Sprintf("Table %d", id), CreatedAt: time.Unix(1700000000, 0).UTC()}
	f.tables[id] = t
	return t
}

// Seat puts a developer at a table with the given vote, as another client would.
func (f *Fake) Seat(developerID, tableID int64, vote *int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[developerID]; ok {
		a.tableID = tableID
		a.dev.Vote = copyVote(vote)
	}
}

// AddStory inserts a story directly.
func (f *Fake) AddStory(tableID int64, title string) models.UserStory {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.UserStory{ID: f.nextStoryID, TableID: tableID, Title: title}
	f.nextStoryID++
	f.stories[s.ID] = s
	return *s
}

// RevokeSessions invalidates every issued token, as an expired login would.
func (f *Fake) RevokeSessions() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = make(map[string]int64)
}

// SetArchiveURL enables GetExportURL with the given link.
func (f *Fake) SetArchiveURL(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archiveURL = url
}

func copyVote(v *int32) *int32 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (f *Fake) enter(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	hook := f.before
	f.mu.Unlock()

	if hook != nil {
		hook(ctx, method)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return client.ErrUnavailable
	}
	return f.errs[method]
}

// caller must be called with f.mu held.
func (f *Fake) caller() (*account, error) {
	id, ok := f.sessions[f.tokens.AccessToken]
	if !ok {
		return nil, client.ErrUnauthorized
	}
	return f.accounts[id], nil
}

func (f *Fake) devCopy(a *account) *models.Developer {
	d := a.dev
	d.Vote = copyVote(a.dev.Vote)
	return &d
}

func (f *Fake) Close() error { return nil }

func (f *Fake) SetTokens(t models.Tokens) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = t
}

func (f *Fake) Tokens() models.Tokens {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens
}

func (f *Fake) Register(ctx context.Context, name, email, password string) (*models.Developer, error) {
	if err := f.enter(ctx, "Register"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(name) == "" || !strings.Contains(email, "@") || len(password) < 6 {
		return nil, fmt.Errorf("%w: invalid registration", client.ErrInvalidArgument)
	}
	if _, ok := f.byEmail[email]; ok {
		return nil, fmt.Errorf("%w: %s", client.ErrConflict, common.ErrorAlreadyExists)
	}
	d := f.addAccount(name, email, password)
	return &d, nil
}

func (f *Fake) Login(ctx context.Context, email, password string) (models.Tokens, *models.Developer, error) {
	if err := f.enter(ctx, "Login"); err != nil {
		return models.Tokens{}, nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byEmail[email]
	if !ok || f.accounts[id].password != password {
		return models.Tokens{}, nil, client.ErrUnauthorized
	}
	n := len(f.sessions) + 1
	t := models.Tokens{AccessToken: fmt.Sprintf("access-%d-%d", id, n), RefreshToken: fmt.Sprintf("refresh-%d-%d", id, n)}
	f.sessions[t.AccessToken] = id
	f.tokens = t
	return t, f.devCopy(f.accounts[id]), nil
}

func (f *Fake) Logout(ctx context.Context) error {
	if err := f.enter(ctx, "Logout"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, f.tokens.AccessToken)
	f.tokens = models.Tokens{}
	return nil
}

func (f *Fake) Me(ctx context.Context) (*models.Developer, error) {
	if err := f.enter(ctx, "Me"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.caller()
	if err != nil {
		return nil, err
	}
	return f.devCopy(a), nil
}

func (f *Fake) Ping(ctx context.Context) error {
	return f.enter(ctx, "Ping")
}

func (f *Fake) CreateTable(ctx context.Context) (*models.PokerTable, error) {
	if err := f.enter(ctx, "CreateTable"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.caller(); err != nil {
		return nil, err
	}
	t := *f.addTable()
	return &t, nil
}

func (f *Fake) GetTable(ctx context.Context, tableID int64) (*models.PokerTable, error) {
	if err := f.enter(ctx, "GetTable"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableID]
	if !ok {
		return nil, client.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *Fake) sortedTables(keep func(*models.PokerTable) bool) []models.PokerTable {
	out := []models.PokerTable{}
	for _, t := range f.tables {
		if keep(t) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *Fake) ListActiveTables(ctx context.Context) ([]models.PokerTable, error) {
	if err := f.enter(ctx, "ListActiveTables"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedTables(func(t *models.PokerTable) bool { return !t.IsClosed }), nil
}

func (f *Fake) ListMyClosedTables(ctx context.Context, developerID int64) ([]models.PokerTable, error) {
	if err := f.enter(ctx, "ListMyClosedTables"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.caller()
	if err != nil {
		return nil, err
	}
	if a.dev.ID != developerID {
		return nil, client.ErrForbidden
	}
	mine := f.history[developerID]
	return f.sortedTables(func(t *models.PokerTable) bool { return t.IsClosed && mine[t.ID] }), nil
}

// openSeat checks that the caller sits at an existing open table.
func (f *Fake) openSeat(tableID int64) (*account, error) {
	a, err := f.caller()
	if err != nil {
		return nil, err
	}
	t, ok := f.tables[tableID]
	if !ok {
		return nil, client.ErrNotFound
	}
	if t.IsClosed {
		return nil, client.ErrClosedTable
	}
	if a.tableID != tableID {
		return nil, fmt.Errorf("%w: %s", client.ErrForbidden, common.ErrNotOnTable)
	}
	return a, nil
}

func (f *Fake) seated(tableID int64) []*account {
	var out []*account
	for _, a := range f.accounts {
		if a.tableID == tableID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].dev.ID < out[j].dev.ID })
	return out
}

func (f *Fake) CloseTable(ctx context.Context, tableID int64) error {
	if err := f.enter(ctx, "CloseTable"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.openSeat(tableID); err != nil {
		return err
	}
	seated := f.seated(tableID)
	for _, a := range seated {
		if a.dev.Vote == nil {
			return fmt.Errorf("%w: %s", client.ErrConflict, common.ErrNotEveryoneVoted)
		}
	}
	for _, a := range seated {
		if f.history[a.dev.ID] == nil {
			f.history[a.dev.ID] = make(map[int64]bool)
		}
		f.history[a.dev.ID][tableID] = true
		a.tableID = 0
		a.dev.Vote = nil
	}
	f.tables[tableID].IsClosed = true
	return nil
}

func (f *Fake) ResetAllVotes(ctx context.Context, tableID int64) error {
	if err := f.enter(ctx, "ResetAllVotes"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.openSeat(tableID); err != nil {
		return err
	}
	for _, a := range f.seated(tableID) {
		a.dev.Vote = nil
	}
	return nil
}

func (f *Fake) JoinTable(ctx context.Context, tableID int64) (*models.Developer, *models.PokerTable, error) {
	if err := f.enter(ctx, "JoinTable"); err != nil {
		return nil, nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.caller()
	if err != nil {
		return nil, nil, err
	}
	t, ok := f.tables[tableID]
	if !ok {
		return nil, nil, client.ErrNotFound
	}
	if t.IsClosed {
		return nil, nil, client.ErrClosedTable
	}
	if a.tableID != tableID {
		a.tableID = tableID
		a.dev.Vote = nil
	}
	tc := *t
	return f.devCopy(a), &tc, nil
}

func (f *Fake) ListDevelopers(ctx context.Context, tableID int64) ([]models.Developer, error) {
	if err := f.enter(ctx, "ListDevelopers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[tableID]; !ok {
		return nil, client.ErrNotFound
	}
	out := []models.Developer{}
	for _, a := range f.seated(tableID) {
		d := f.devCopy(a)
		d.Email = ""
		out = append(out, *d)
	}
	return out, nil
}

func (f *Fake) CastVote(ctx context.Context, developerID, tableID int64, value int32) error {
	if err := f.enter(ctx, "CastVote"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.caller()
	if err != nil {
		return err
	}
	if a.dev.ID != developerID {
		return client.ErrForbidden
	}
	if !common.IsValidVote(value) {
		return fmt.Errorf("%w: %s", client.ErrInvalidArgument, common.ErrInvalidVote)
	}
	if _, err := f.openSeat(tableID); err != nil {
		return err
	}
	a.dev.Vote = &value
	return nil
}

func (f *Fake) HasVoted(ctx context.Context, developerID int64) (bool, error) {
	if err := f.enter(ctx, "HasVoted"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[developerID]
	if !ok {
		return false, client.ErrNotFound
	}
	return a.dev.Vote != nil, nil
}

func (f *Fake) tableStories(tableID int64) []models.UserStory {
	out := []models.UserStory{}
	for _, s := range f.stories {
		if s.TableID == tableID {
			c := *s
			c.EstimatedPoints = copyVote(s.EstimatedPoints)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *Fake) ListStories(ctx context.Context, tableID int64) ([]models.UserStory, error) {
	if err := f.enter(ctx, "ListStories"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[tableID]; !ok {
		return nil, client.ErrNotFound
	}
	return f.tableStories(tableID), nil
}

// mutableTable checks the caller and that the table exists and is open.
func (f *Fake) mutableTable(tableID int64) error {
	if _, err := f.caller(); err != nil {
		return err
	}
	t, ok := f.tables[tableID]
	if !ok {
		return client.ErrNotFound
	}
	if t.IsClosed {
		return client.ErrClosedTable
	}
	return nil
}

func (f *Fake) CreateStory(ctx context.Context, tableID int64, in models.StoryInput) (*models.UserStory, error) {
	if err := f.enter(ctx, "CreateStory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", client.ErrInvalidArgument)
	}
	if err := f.mutableTable(tableID); err != nil {
		return nil, err
	}
	s := &models.UserStory{
		ID:              f.nextStoryID,
		TableID:         tableID,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		EstimatedPoints: copyVote(in.EstimatedPoints),
	}
	f.nextStoryID++
	f.stories[s.ID] = s
	c := *s
	return &c, nil
}

func (f *Fake) UpdateStory(ctx context.Context, storyID int64, patch models.StoryPatch) (*models.UserStory, error) {
	if err := f.enter(ctx, "UpdateStory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stories[storyID]
	if !ok {
		return nil, client.ErrNotFound
	}
	if err := f.mutableTable(s.TableID); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", client.ErrInvalidArgument)
		}
		s.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.ClearEstimate {
		s.EstimatedPoints = nil
	} else if patch.EstimatedPoints != nil {
		s.EstimatedPoints = copyVote(patch.EstimatedPoints)
	}
	c := *s
	return &c, nil
}

func (f *Fake) DeleteStory(ctx context.Context, storyID int64) error {
	if err := f.enter(ctx, "DeleteStory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stories[storyID]
	if !ok {
		return client.ErrNotFound
	}
	if err := f.mutableTable(s.TableID); err != nil {
		return err
	}
	delete(f.stories, storyID)
	return nil
}

func (f *Fake) ExportStoriesCsv(ctx context.Context, tableID int64) (*models.Export, error) {
	if err := f.enter(ctx, "ExportStoriesCsv"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[tableID]; !ok {
		return nil, client.ErrNotFound
	}
	var b bytes.Buffer
	b.WriteString("Summary,Description,Issue Type,Story point estimate\n")
	for _, s := range f.tableStories(tableID) {
		points := ""
		if s.EstimatedPoints != nil {
			points = fmt.Sprint(*s.EstimatedPoints)
		}
		fmt.Fprintf(&b, "%q,%q,\"Story\",%s\n", s.Title, s.Description, points)
	}
	return &models.Export{Filename: fmt.Sprintf("poker-planning-export-%d.csv", tableID), Content: b.Bytes()}, nil
}

func (f *Fake) GetExportURL(ctx context.Context, tableID int64) (*models.ArchiveLink, error) {
	if err := f.enter(ctx, "GetExportURL"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.archiveURL == "" {
		return nil, fmt.Errorf("%w: %s", client.ErrConflict, common.ErrArchiveDisabled)
	}
	return &models.ArchiveLink{
		URL:       f.archiveURL,
		Key:       fmt.Sprintf("exports/table-%d/latest.csv", tableID),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}
