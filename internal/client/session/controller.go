package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/client/client"
	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/client/services"
	"github.com/dmitrijs2005/planningpoker/internal/logging"
	"github.com/jonboulle/clockwork"
)

const (
	defaultDeveloperPollInterval = 3 * time.Second
	defaultStoryPollInterval     = 5 * time.Second
)

// Authenticator is the credential side of the session. services.AuthService
// satisfies it.
type Authenticator interface {
	Resolve(ctx context.Context) (*models.Developer, error)
	Login(ctx context.Context, email, password string) (*models.Developer, error)
	Register(ctx context.Context, name, email, password string) (*models.Developer, error)
	Logout(ctx context.Context) error
	RememberDeveloper(ctx context.Context, developerID int64) error
}

type Options struct {
	Clock                 clockwork.Clock
	Logger                logging.Logger
	DeveloperPollInterval time.Duration
	StoryPollInterval     time.Duration
}

// Controller runs one client session. All methods are safe for concurrent
// use; an action invoked again while in flight fails with ErrBusy.
type Controller struct {
	client client.Client
	auth   Authenticator
	logger logging.Logger

	baseCtx context.Context
	stop    context.CancelFunc

	devPoller   *Poller
	storyPoller *Poller
	devSeq      Sequencer
	storySeq    Sequencer

	mu        sync.Mutex
	state     State
	inflight  map[string]bool
	listeners []func(State)
}

func NewController(c client.Client, a Authenticator, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.DeveloperPollInterval <= 0 {
		opts.DeveloperPollInterval = defaultDeveloperPollInterval
	}
	if opts.StoryPollInterval <= 0 {
		opts.StoryPollInterval = defaultStoryPollInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctrl := &Controller{
		client:   c,
		auth:     a,
		logger:   opts.Logger.With("module", "session"),
		baseCtx:  ctx,
		stop:     cancel,
		state:    Initial(),
		inflight: make(map[string]bool),
	}
	ctrl.devPoller = NewPoller("developers", opts.Clock, opts.DeveloperPollInterval, ctrl.logger, ctrl.RefreshDevelopers)
	ctrl.storyPoller = NewPoller("stories", opts.Clock, opts.StoryPollInterval, ctrl.logger, ctrl.RefreshStories)
	return ctrl
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View renders the current state.
func (c *Controller) View() View {
	return Render(c.State())
}

// Subscribe registers fn to receive every new state after a transition.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Close stops the pollers and waits for their loops to exit.
func (c *Controller) Close() {
	c.stop()
	c.devPoller.Stop()
	c.storyPoller.Stop()
	c.devPoller.Wait()
	c.storyPoller.Wait()
}

// apply reduces ev into the state, aligns the pollers with the new mode and
// notifies subscribers. It returns the states before and after.
func (c *Controller) apply(ev Event) (State, State) {
	before, after, _ := c.applyIf(nil, ev)
	return before, after
}

// applyIf is apply guarded by keep, evaluated under the lock. It reports
// whether ev was reduced.
func (c *Controller) applyIf(keep func(State) bool, ev Event) (State, State, bool) {
	return c.reduce(keep, nil, ev)
}

// applyLocal applies a change made by this client and, under the same lock,
// invalidates every ticket of seq issued before it. A list fetched before the
// change can then no longer overwrite it.
func (c *Controller) applyLocal(seq *Sequencer, ev Event) (State, State) {
	before, after, _ := c.reduce(nil, seq, ev)
	return before, after
}

func (c *Controller) reduce(keep func(State) bool, invalidate *Sequencer, ev Event) (State, State, bool) {
	c.mu.Lock()
	before := c.state
	if keep != nil && !keep(before) {
		c.mu.Unlock()
		return before, before, false
	}
	if invalidate != nil {
		invalidate.Next()
	}
	c.state = Reduce(before, ev)
	after := c.state
	c.syncPollers(after.Mode)
	listeners := append([]func(State){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(after)
	}
	return before, after, true
}

// syncPollers must be called with c.mu held. Developers poll only on a
// table; stories also poll in view-only.
func (c *Controller) syncPollers(m Mode) {
	if m == ModeOnTable {
		c.devPoller.Start(c.baseCtx)
	} else {
		c.devPoller.Stop()
	}
	if m == ModeOnTable || m == ModeViewOnly {
		c.storyPoller.Start(c.baseCtx)
	} else {
		c.storyPoller.Stop()
	}
}

func (c *Controller) begin(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] {
		return ErrBusy
	}
	c.inflight[key] = true
	return nil
}

func (c *Controller) end(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, key)
}

// fail surfaces err as the session message and returns it.
func (c *Controller) fail(ctx context.Context, action string, err error) error {
	kind, msg := Classify(err)
	c.logger.Info(ctx, "action failed", "action", action, "kind", kind.String(), "error", err)
	c.apply(ActionFailed{Message: msg})
	return err
}

func (c *Controller) requireMode(modes ...Mode) (State, error) {
	s := c.State()
	for _, m := range modes {
		if s.Mode == m {
			return s, nil
		}
	}
	return s, fmt.Errorf("%w in %s mode", ErrNotAllowed, s.Mode)
}

// Start runs the auth gate once. invite, when not empty, is consumed as if
// it had been received before the credential was resolved.
func (c *Controller) Start(ctx context.Context, invite string) error {
	if _, err := c.requireMode(ModeLoading); err != nil {
		return err
	}
	if invite != "" {
		id, err := ParseInvite(invite)
		if err != nil {
			_ = c.fail(ctx, "invite", err)
		} else {
			c.apply(InviteReceived{TableID: id})
		}
	}
	return c.load(ctx)
}

// Retry leaves the error mode and reruns the auth gate.
func (c *Controller) Retry(ctx context.Context) error {
	_, s := c.apply(RetryRequested{})
	if s.Mode != ModeLoading {
		return fmt.Errorf("%w in %s mode", ErrNotAllowed, s.Mode)
	}
	return c.load(ctx)
}

func (c *Controller) load(ctx context.Context) error {
	if err := c.begin("load"); err != nil {
		return err
	}
	defer c.end("load")

	dev, err := c.auth.Resolve(ctx)
	switch {
	case errors.Is(err, services.ErrNoCredential):
		c.apply(CredentialAbsent{})
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		c.logger.Info(ctx, "stored credential rejected")
		c.apply(CredentialRejected{Message: "Your session has expired, please log in again."})
		return nil
	case err != nil:
		_, msg := Classify(err)
		c.apply(LoadFailed{Message: msg})
		return err
	}

	_, s := c.apply(CredentialResolved{Developer: *dev})
	return c.afterAuth(ctx, s)
}

// afterAuth replays a deferred join exactly once or loads the lobby.
func (c *Controller) afterAuth(ctx context.Context, s State) error {
	switch s.Mode {
	case ModeJoining:
		err := c.join(ctx, s.PendingTableID)
		if err != nil && c.State().Mode == ModeInitial {
			// the lobby was never loaded on this path
			if lerr := c.RefreshLobby(ctx); lerr != nil {
				c.logger.Warn(ctx, "lobby load after failed join", "error", lerr)
			}
		}
		return err
	case ModeInitial:
		return c.RefreshLobby(ctx)
	}
	return nil
}

func (c *Controller) Register(ctx context.Context, name, email, password string) (*models.Developer, error) {
	if err := c.begin("register"); err != nil {
		return nil, err
	}
	defer c.end("register")

	if _, err := c.requireMode(ModeAuth); err != nil {
		return nil, err
	}
	dev, err := c.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, c.fail(ctx, "register", err)
	}
	c.apply(MessageCleared{})
	return dev, nil
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	if err := c.begin("login"); err != nil {
		return err
	}
	defer c.end("login")

	if _, err := c.requireMode(ModeAuth); err != nil {
		return err
	}
	dev, err := c.auth.Login(ctx, email, password)
	if errors.Is(err, client.ErrUnauthorized) {
		c.apply(ActionFailed{Message: "Wrong email or password."})
		return err
	}
	if err != nil {
		return c.fail(ctx, "login", err)
	}

	before, s := c.apply(LoggedIn{Developer: *dev})
	if before.Mode != ModeAuth {
		return nil
	}
	return c.afterAuth(ctx, s)
}

// Logout always ends the local session; a server failure is only logged.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.begin("logout"); err != nil {
		return err
	}
	defer c.end("logout")

	if _, err := c.requireMode(ModeInitial, ModeOnTable, ModeViewOnly, ModeJoining, ModeError); err != nil {
		return err
	}
	if err := c.auth.Logout(ctx); err != nil {
		c.logger.Warn(ctx, "logout failed on server", "error", err)
	}
	c.apply(LoggedOut{})
	return nil
}

// Invite consumes an invite reference. It joins when the lobby is shown,
// defers while unauthenticated and is ignored on a table, in view-only or
// while another join is running.
func (c *Controller) Invite(ctx context.Context, ref string) error {
	id, err := ParseInvite(ref)
	if err != nil {
		return c.fail(ctx, "invite", err)
	}
	before, after := c.apply(InviteReceived{TableID: id})
	if before.Mode == ModeInitial && after.Mode == ModeJoining {
		return c.join(ctx, id)
	}
	return nil
}

// JoinTable joins tableID, or defers the join until login when no
// developer is authenticated.
func (c *Controller) JoinTable(ctx context.Context, tableID int64) error {
	if tableID <= 0 {
		return c.fail(ctx, "join", fmt.Errorf("%w: table id must be positive", ErrNotAllowed))
	}
	if c.State().Developer == nil {
		_, s := c.apply(JoinDeferred{TableID: tableID})
		if s.Mode == ModeAuth && s.PendingTableID == tableID {
			return nil
		}
		return fmt.Errorf("%w in %s mode", ErrNotAllowed, s.Mode)
	}
	before, after := c.apply(JoinRequested{TableID: tableID})
	if before.Mode != ModeInitial || after.Mode != ModeJoining {
		return fmt.Errorf("%w in %s mode", ErrNotAllowed, before.Mode)
	}
	return c.join(ctx, tableID)
}

// join must be called in ModeJoining for tableID.
func (c *Controller) join(ctx context.Context, tableID int64) error {
	if err := c.begin("join"); err != nil {
		return err
	}
	defer c.end("join")

	dev, table, err := c.client.JoinTable(ctx, tableID)
	if err != nil {
		kind, msg := Classify(err)
		c.logger.Info(ctx, "join failed", "table_id", tableID, "kind", kind.String(), "error", err)
		c.apply(JoinFailed{Message: msg})
		return err
	}

	hasVoted, err := c.client.HasVoted(ctx, dev.ID)
	if err != nil {
		c.logger.Warn(ctx, "has-voted lookup failed", "developer_id", dev.ID, "error", err)
		hasVoted = dev.HasVoted()
	}
	if err := c.auth.RememberDeveloper(ctx, dev.ID); err != nil {
		c.logger.Warn(ctx, "remember developer failed", "developer_id", dev.ID, "error", err)
	}

	_, s := c.apply(TableJoined{Developer: *dev, Table: *table, HasVoted: hasVoted})
	if s.Mode != ModeOnTable || s.tableID() != table.ID {
		return nil
	}
	c.refreshTable(ctx)
	return nil
}

// refreshTable fetches both lists right away instead of waiting a tick.
func (c *Controller) refreshTable(ctx context.Context) {
	if err := c.RefreshDevelopers(ctx); err != nil {
		c.logger.Warn(ctx, "developer refresh failed", "error", err)
	}
	if err := c.RefreshStories(ctx); err != nil {
		c.logger.Warn(ctx, "story refresh failed", "error", err)
	}
}

// CreateTable creates a table and joins it.
func (c *Controller) CreateTable(ctx context.Context) error {
	if err := c.begin("create"); err != nil {
		return err
	}
	defer c.end("create")

	if _, err := c.requireMode(ModeInitial); err != nil {
		return err
	}
	t, err := c.client.CreateTable(ctx)
	if err != nil {
		return c.fail(ctx, "create", err)
	}
	before, after := c.apply(JoinRequested{TableID: t.ID})
	if before.Mode != ModeInitial || after.Mode != ModeJoining {
		return fmt.Errorf("%w in %s mode", ErrNotAllowed, before.Mode)
	}
	return c.join(ctx, t.ID)
}

// RefreshLobby loads the active tables and the developer's closed ones.
// A failure moves the session to the error mode.
func (c *Controller) RefreshLobby(ctx context.Context) error {
	s := c.State()
	if s.Mode != ModeInitial || s.Developer == nil {
		return nil
	}
	active, err := c.client.ListActiveTables(ctx)
	if err == nil {
		var closed []models.PokerTable
		closed, err = c.client.ListMyClosedTables(ctx, s.Developer.ID)
		if err == nil {
			c.apply(LobbyLoaded{Active: active, Closed: closed})
			return nil
		}
	}
	_, msg := Classify(err)
	c.logger.Warn(ctx, "lobby load failed", "error", err)
	c.apply(LoadFailed{Message: msg})
	return err
}

func (c *Controller) CastVote(ctx context.Context, value int32) error {
	if err := c.begin("vote"); err != nil {
		return err
	}
	defer c.end("vote")

	s, err := c.requireMode(ModeOnTable)
	if err != nil {
		return err
	}
	if err := c.client.CastVote(ctx, s.Developer.ID, s.Table.ID, value); err != nil {
		return c.fail(ctx, "vote", err)
	}
	c.applyLocal(&c.devSeq, VoteCast{TableID: s.Table.ID, Value: value})
	if err := c.RefreshDevelopers(ctx); err != nil {
		c.logger.Warn(ctx, "developer refresh failed", "error", err)
	}
	return nil
}

func (c *Controller) ResetVotes(ctx context.Context) error {
	if err := c.begin("reset"); err != nil {
		return err
	}
	defer c.end("reset")

	s, err := c.requireMode(ModeOnTable)
	if err != nil {
		return err
	}
	if err := c.client.ResetAllVotes(ctx, s.Table.ID); err != nil {
		return c.fail(ctx, "reset", err)
	}
	c.applyLocal(&c.devSeq, VotesReset{TableID: s.Table.ID})
	if err := c.RefreshDevelopers(ctx); err != nil {
		c.logger.Warn(ctx, "developer refresh failed", "error", err)
	}
	return nil
}

// CloseTable closes the active table and returns to the lobby.
func (c *Controller) CloseTable(ctx context.Context) error {
	if err := c.begin("close"); err != nil {
		return err
	}
	defer c.end("close")

	s, err := c.requireMode(ModeOnTable)
	if err != nil {
		return err
	}
	if err := c.client.CloseTable(ctx, s.Table.ID); err != nil {
		return c.fail(ctx, "close", err)
	}
	_, after := c.apply(TableClosed{TableID: s.Table.ID})
	if after.Mode != ModeInitial {
		return nil
	}
	return c.RefreshLobby(ctx)
}

// ViewPastSession opens a closed table read-only: its stories without
// participants or voting.
func (c *Controller) ViewPastSession(ctx context.Context, tableID int64) error {
	if err := c.begin("view"); err != nil {
		return err
	}
	defer c.end("view")

	if _, err := c.requireMode(ModeInitial); err != nil {
		return err
	}
	t, err := c.client.GetTable(ctx, tableID)
	if err != nil {
		return c.fail(ctx, "view", err)
	}
	if !t.IsClosed {
		return c.fail(ctx, "view", fmt.Errorf("%w: table %d is still open, join it instead", ErrNotAllowed, tableID))
	}
	stories, err := c.client.ListStories(ctx, tableID)
	if err != nil {
		return c.fail(ctx, "view", err)
	}
	c.apply(PastSessionLoaded{Table: *t, Stories: stories})
	return nil
}

// Back leaves a table or a past session for the lobby.
func (c *Controller) Back(ctx context.Context) error {
	before, after := c.apply(BackNavigated{})
	if before.Mode == after.Mode {
		return fmt.Errorf("%w in %s mode", ErrNotAllowed, before.Mode)
	}
	return c.RefreshLobby(ctx)
}

// RefreshDevelopers replaces the participant list unless a newer refresh
// was issued meanwhile or the table changed.
func (c *Controller) RefreshDevelopers(ctx context.Context) error {
	s := c.State()
	if s.Mode != ModeOnTable {
		return nil
	}
	tableID := s.Table.ID
	ticket := c.devSeq.Next()

	devs, err := c.client.ListDevelopers(ctx, tableID)
	if err != nil {
		return err
	}
	latest := func(State) bool { return c.devSeq.IsLatest(ticket) }
	if _, _, ok := c.applyIf(latest, DevelopersRefreshed{TableID: tableID, Developers: devs}); !ok {
		c.logger.Debug(ctx, "stale developer list dropped", "table_id", tableID)
	}
	return nil
}

// RefreshStories replaces the story list, with the same staleness rules as
// RefreshDevelopers.
func (c *Controller) RefreshStories(ctx context.Context) error {
	s := c.State()
	if s.Mode != ModeOnTable && s.Mode != ModeViewOnly {
		return nil
	}
	tableID := s.Table.ID
	ticket := c.storySeq.Next()

	stories, err := c.client.ListStories(ctx, tableID)
	if err != nil {
		return err
	}
	latest := func(State) bool { return c.storySeq.IsLatest(ticket) }
	if _, _, ok := c.applyIf(latest, StoriesRefreshed{TableID: tableID, Stories: stories}); !ok {
		c.logger.Debug(ctx, "stale story list dropped", "table_id", tableID)
	}
	return nil
}

func storyKey(id int64) string {
	return fmt.Sprintf("story:%d", id)
}

// AddStory creates a story at the active table and refetches the roster.
func (c *Controller) AddStory(ctx context.Context, in models.StoryInput) (*models.UserStory, error) {
	if err := c.begin("story:new"); err != nil {
		return nil, err
	}
	defer c.end("story:new")

	s, err := c.requireMode(ModeOnTable)
	if err != nil {
		return nil, err
	}
	story, err := c.client.CreateStory(ctx, s.Table.ID, in)
	if err != nil {
		return nil, c.fail(ctx, "add story", err)
	}
	c.afterStoryMutation(ctx)
	return story, nil
}

// UpdateStory applies patch to a story and refetches the roster. Editing
// of that story ends on success.
func (c *Controller) UpdateStory(ctx context.Context, storyID int64, patch models.StoryPatch) (*models.UserStory, error) {
	key := storyKey(storyID)
	if err := c.begin(key); err != nil {
		return nil, err
	}
	defer c.end(key)

	if _, err := c.requireMode(ModeOnTable); err != nil {
		return nil, err
	}
	story, err := c.client.UpdateStory(ctx, storyID, patch)
	if err != nil {
		return nil, c.fail(ctx, "update story", err)
	}
	c.applyIf(func(s State) bool { return s.EditingStoryID == storyID }, StoryEditCancelled{})
	c.afterStoryMutation(ctx)
	return story, nil
}

func (c *Controller) DeleteStory(ctx context.Context, storyID int64) error {
	key := storyKey(storyID)
	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	if _, err := c.requireMode(ModeOnTable); err != nil {
		return err
	}
	if err := c.client.DeleteStory(ctx, storyID); err != nil {
		return c.fail(ctx, "delete story", err)
	}
	c.afterStoryMutation(ctx)
	return nil
}

func (c *Controller) afterStoryMutation(ctx context.Context) {
	if err := c.RefreshStories(ctx); err != nil {
		c.logger.Warn(ctx, "story refresh failed", "error", err)
	}
}

// EditStory marks a listed story as being edited.
func (c *Controller) EditStory(storyID int64) error {
	_, s := c.apply(StoryEditStarted{StoryID: storyID})
	if s.EditingStoryID != storyID {
		return fmt.Errorf("%w: story %d is not listed", ErrNotAllowed, storyID)
	}
	return nil
}

func (c *Controller) CancelEdit() {
	c.apply(StoryEditCancelled{})
}

func (c *Controller) ClearMessage() {
	c.apply(MessageCleared{})
}

// ExportStories writes the CSV export of the active or viewed table to w
// and returns the suggested file name.
func (c *Controller) ExportStories(ctx context.Context, w io.Writer) (string, error) {
	if err := c.begin("export"); err != nil {
		return "", err
	}
	defer c.end("export")

	s, err := c.requireMode(ModeOnTable, ModeViewOnly)
	if err != nil {
		return "", err
	}
	export, err := c.client.ExportStoriesCsv(ctx, s.Table.ID)
	if err != nil {
		return "", c.fail(ctx, "export", err)
	}
	if _, err := w.Write(export.Content); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return export.Filename, nil
}

// ArchiveLink returns a download link of the latest archived export.
func (c *Controller) ArchiveLink(ctx context.Context, tableID int64) (*models.ArchiveLink, error) {
	if _, err := c.requireMode(ModeInitial, ModeOnTable, ModeViewOnly); err != nil {
		return nil, err
	}
	link, err := c.client.GetExportURL(ctx, tableID)
	if err != nil {
		return nil, c.fail(ctx, "archive", err)
	}
	return link, nil
}
