package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/developers"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/exports"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/participations"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/stories"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/tables"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memStore keeps every table of the schema in maps. Injected errors make
// the matching call fail once set.
type memStore struct {
	mu sync.Mutex

	nextID int64

	developers     map[int64]*models.Developer
	tables         map[int64]*models.PokerTable
	stories        map[int64]*models.UserStory
	participations []*models.Participation
	tokens         map[string]*models.RefreshToken
	exports        []*models.TableExport

	errCreateDeveloper error
	errGetByEmail      error
	errSetVote         error
	errCreateToken     error
	errFindToken       error
	errDeleteToken     error
	errListStories     error
	errCreateExport    error
}

func newMemStore() *memStore {
	return &memStore{
		developers: map[int64]*models.Developer{},
		tables:     map[int64]*models.PokerTable{},
		stories:    map[int64]*models.UserStory{},
		tokens:     map[string]*models.RefreshToken{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addTable(closed bool) *models.PokerTable {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	t := &models.PokerTable{ID: id, Name: "Table", CreatedAt: time.Now(), IsClosed: closed}
	m.tables[id] = t
	return t
}

func (m *memStore) addDeveloper(name string, tableID *int64, vote *int32) *models.Developer {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	d := &models.Developer{ID: id, Name: name, Email: name + "@example.com", PokerTableID: tableID, Vote: vote}
	m.developers[id] = d
	return d
}

func (m *memStore) developer(id int64) models.Developer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.developers[id]
}

type fakeRepoManager struct{ s *memStore }

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (f *fakeRepoManager) Developers(dbx.DBTX) developers.Repository         { return (*memDevelopers)(f.s) }
func (f *fakeRepoManager) Tables(dbx.DBTX) tables.Repository                 { return (*memTables)(f.s) }
func (f *fakeRepoManager) Stories(dbx.DBTX) stories.Repository               { return (*memStories)(f.s) }
func (f *fakeRepoManager) Participations(dbx.DBTX) participations.Repository { return (*memParticipations)(f.s) }
func (f *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository   { return (*memTokens)(f.s) }
func (f *fakeRepoManager) Exports(dbx.DBTX) exports.Repository               { return (*memExports)(f.s) }

// --- developers ---

type memDevelopers memStore

func (r *memDevelopers) Create(_ context.Context, d *models.Developer) (*models.Developer, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCreateDeveloper != nil {
		return nil, m.errCreateDeveloper
	}
	for _, e := range m.developers {
		if e.Email == d.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *d
	c.ID = m.id()
	m.developers[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memDevelopers) GetByID(_ context.Context, id int64) (*models.Developer, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.developers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *d
	return &c, nil
}

func (r *memDevelopers) GetByEmail(_ context.Context, email string) (*models.Developer, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errGetByEmail != nil {
		return nil, m.errGetByEmail
	}
	for _, d := range m.developers {
		if d.Email == email {
			c := *d
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memDevelopers) ListByTable(_ context.Context, tableID int64) ([]*models.Developer, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Developer
	for _, d := range m.developers {
		if d.PokerTableID != nil && *d.PokerTableID == tableID {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDevelopers) SetTable(_ context.Context, id, tableID int64, resetVote bool) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.developers[id]
	if !ok {
		return common.ErrorNotFound
	}
	tid := tableID
	d.PokerTableID = &tid
	if resetVote {
		d.Vote = nil
	}
	return nil
}

func (r *memDevelopers) SetVote(_ context.Context, id int64, vote *int32) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errSetVote != nil {
		return m.errSetVote
	}
	d, ok := m.developers[id]
	if !ok {
		return common.ErrorNotFound
	}
	d.Vote = vote
	return nil
}

func (r *memDevelopers) ResetVotes(_ context.Context, tableID int64) (int64, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, d := range m.developers {
		if d.PokerTableID != nil && *d.PokerTableID == tableID {
			d.Vote = nil
			n++
		}
	}
	return n, nil
}

func (r *memDevelopers) DetachAll(_ context.Context, tableID int64) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.developers {
		if d.PokerTableID != nil && *d.PokerTableID == tableID {
			d.PokerTableID = nil
			d.Vote = nil
		}
	}
	return nil
}

// --- tables ---

type memTables memStore

func (r *memTables) Create(context.Context) (*models.PokerTable, error) {
	m := (*memStore)(r)
	t := m.addTable(false)
	c := *t
	return &c, nil
}

func (r *memTables) Get(_ context.Context, id int64) (*models.PokerTable, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTables) GetForUpdate(ctx context.Context, id int64) (*models.PokerTable, error) {
	return r.Get(ctx, id)
}

func (r *memTables) ListActive(context.Context) ([]*models.PokerTable, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.PokerTable
	for _, t := range m.tables {
		if !t.IsClosed {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memTables) ListClosedByDeveloper(_ context.Context, developerID int64) ([]*models.PokerTable, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.PokerTable
	for _, p := range m.participations {
		if t := m.tables[p.PokerTableID]; p.DeveloperID == developerID && t != nil && t.IsClosed {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memTables) MarkClosed(_ context.Context, id int64) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok || t.IsClosed {
		return common.ErrTableClosed
	}
	t.IsClosed = true
	return nil
}

// --- stories ---

type memStories memStore

func (r *memStories) ListByTable(_ context.Context, tableID int64) ([]*models.UserStory, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errListStories != nil {
		return nil, m.errListStories
	}
	var out []*models.UserStory
	for _, s := range m.stories {
		if s.PokerTableID == tableID {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memStories) Get(_ context.Context, id int64) (*models.UserStory, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *s
	return &c, nil
}

func (r *memStories) Create(_ context.Context, s *models.UserStory) (*models.UserStory, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *s
	c.ID = m.id()
	m.stories[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memStories) Update(_ context.Context, s *models.UserStory) (*models.UserStory, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[s.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	c := *s
	m.stories[s.ID] = &c
	out := c
	return &out, nil
}

func (r *memStories) Delete(_ context.Context, id int64) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.stories, id)
	return nil
}

// --- participations ---

type memParticipations memStore

func (r *memParticipations) Create(_ context.Context, p *models.Participation) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	c.ID = m.id()
	m.participations = append(m.participations, &c)
	return nil
}

func (r *memParticipations) ListByTable(_ context.Context, tableID int64) ([]*models.Participation, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Participation
	for _, p := range m.participations {
		if p.PokerTableID == tableID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

// --- refresh tokens ---

type memTokens memStore

func (r *memTokens) Create(_ context.Context, developerID int64, token string, validity time.Duration) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCreateToken != nil {
		return m.errCreateToken
	}
	m.tokens[token] = &models.RefreshToken{ID: m.id(), DeveloperID: developerID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r *memTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errFindToken != nil {
		return nil, m.errFindToken
	}
	t, ok := m.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTokens) Delete(_ context.Context, token string) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errDeleteToken != nil {
		return m.errDeleteToken
	}
	delete(m.tokens, token)
	return nil
}

func (r *memTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, t := range m.tokens {
		if t.Expires.Before(now) {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

// --- exports ---

type memExports memStore

func (r *memExports) Create(_ context.Context, tableID int64, key string) (*models.TableExport, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCreateExport != nil {
		return nil, m.errCreateExport
	}
	e := &models.TableExport{ID: m.id(), PokerTableID: tableID, ObjectKey: key, CreatedAt: time.Now()}
	m.exports = append(m.exports, e)
	c := *e
	return &c, nil
}

func (r *memExports) Latest(_ context.Context, tableID int64) (*models.TableExport, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.exports) - 1; i >= 0; i-- {
		if m.exports[i].PokerTableID == tableID {
			c := *m.exports[i]
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

// fakeArchiver records puts in memory.
type fakeArchiver struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	signErr error
}

func (a *fakeArchiver) Put(_ context.Context, key string, body []byte, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.putErr != nil {
		return a.putErr
	}
	if a.objects == nil {
		a.objects = map[string][]byte{}
	}
	a.objects[key] = body
	return nil
}

func (a *fakeArchiver) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if a.signErr != nil {
		return "", a.signErr
	}
	return "https://s3.local/" + key + "?X-Amz-Signature=x", nil
}
