package session

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/client/client"
	"github.com/dmitrijs2005/planningpoker/internal/client/client/clienttest"
	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/client/services"
	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	devInterval   = 3 * time.Second
	storyInterval = 5 * time.Second
)

type rig struct {
	t     *testing.T
	fake  *clienttest.Fake
	api   client.Client
	clock *clockwork.FakeClock
	db    *sql.DB
	ctrl  *Controller
	ann   models.Developer
	bob   models.Developer
}

func newRig(t *testing.T) *rig {
	t.Helper()
	fake := clienttest.New()
	r := &rig{
		t:     t,
		fake:  fake,
		api:   fake,
		clock: clockwork.NewFakeClock(),
		ann:   fake.AddAccount("Ann", "ann@example.com", "secret1"),
		bob:   fake.AddAccount("Bob", "bob@example.com", "secret2"),
	}

	dsn := fmt.Sprintf("file:session_%s?mode=memory&cache=shared", t.Name())
	db, err := client.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	r.db = db

	r.restart()
	return r
}

// restart replaces the controller as a relaunched client would, keeping
// the stored credential.
func (r *rig) restart() {
	if r.ctrl != nil {
		r.ctrl.Close()
	}
	ctrl := NewController(r.api, services.NewAuthService(r.api, r.db), Options{
		Clock:                 r.clock,
		DeveloperPollInterval: devInterval,
		StoryPollInterval:     storyInterval,
	})
	r.t.Cleanup(ctrl.Close)
	r.ctrl = ctrl
}

// heldList answers one armed ListDevelopers call right away but returns the
// answer only once release is closed.
type heldList struct {
	*clienttest.Fake

	mu       sync.Mutex
	armed    bool
	answered chan struct{}
	release  chan struct{}
}

func (h *heldList) arm() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.armed = true
	h.answered = make(chan struct{})
	h.release = make(chan struct{})
}

func (h *heldList) ListDevelopers(ctx context.Context, tableID int64) ([]models.Developer, error) {
	devs, err := h.Fake.ListDevelopers(ctx, tableID)

	h.mu.Lock()
	held := h.armed
	h.armed = false
	answered, release := h.answered, h.release
	h.mu.Unlock()

	if held {
		close(answered)
		<-release
	}
	return devs, err
}

// withHeldList relaunches the controller over a heldList.
func (r *rig) withHeldList() *heldList {
	h := &heldList{Fake: r.fake}
	r.api = h
	r.restart()
	return h
}

// deliverHeldOn releases the held list from a listener the first time when
// matches a new state, and waits until that response was handled.
func (r *rig) deliverHeldOn(h *heldList, when func(State) bool) (done chan struct{}, seen func() []bool) {
	ctx := context.Background()
	h.arm()
	done = make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(r.t, r.ctrl.RefreshDevelopers(ctx))
	}()
	<-h.answered

	var mu sync.Mutex
	var voted []bool
	var fired atomic.Bool
	r.ctrl.Subscribe(func(s State) {
		mu.Lock()
		voted = append(voted, s.HasVoted)
		mu.Unlock()
		if when(s) && fired.CompareAndSwap(false, true) {
			close(h.release)
			<-done
		}
	})
	return done, func() []bool {
		mu.Lock()
		defer mu.Unlock()
		return append([]bool(nil), voted...)
	}
}

func (r *rig) loggedIn() {
	r.t.Helper()
	ctx := context.Background()
	require.NoError(r.t, r.ctrl.Start(ctx, ""))
	require.Equal(r.t, ModeAuth, r.ctrl.State().Mode)
	require.NoError(r.t, r.ctrl.Login(ctx, "ann@example.com", "secret1"))
	require.Equal(r.t, ModeInitial, r.ctrl.State().Mode)
}

func (r *rig) onTable() {
	r.t.Helper()
	r.loggedIn()
	require.NoError(r.t, r.ctrl.CreateTable(context.Background()))
	require.Equal(r.t, ModeOnTable, r.ctrl.State().Mode)
}

func (r *rig) participant(id int64) Participant {
	r.t.Helper()
	v, ok := r.ctrl.View().(TableView)
	require.True(r.t, ok, "not on a table")
	for _, p := range v.Participants {
		if p.Developer.ID == id {
			return p
		}
	}
	r.t.Fatalf("developer %d is not listed", id)
	return Participant{}
}

func (r *rig) eventually(method string, atLeast int) {
	r.t.Helper()
	require.Eventually(r.t, func() bool { return r.fake.Calls(method) >= atLeast }, time.Second, 5*time.Millisecond)
}

func TestController_StartWithoutCredential(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.ctrl.Start(context.Background(), ""))

	assert.Equal(t, AuthView{}, r.ctrl.View())
	assert.ErrorIs(t, r.ctrl.Start(context.Background(), ""), ErrNotAllowed)
}

func TestController_LoginLoadsLobby(t *testing.T) {
	r := newRig(t)
	r.fake.AddTable(false)
	r.loggedIn()

	v, ok := r.ctrl.View().(LobbyView)
	require.True(t, ok)
	assert.Equal(t, "Ann", v.Developer.Name)
	require.Len(t, v.ActiveTables, 1)
	assert.Empty(t, v.ClosedTables)
}

func TestController_WrongPasswordStaysOnAuth(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()
	require.NoError(t, r.ctrl.Start(ctx, ""))

	err := r.ctrl.Login(ctx, "ann@example.com", "nope")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	s := r.ctrl.State()
	assert.Equal(t, ModeAuth, s.Mode)
	assert.NotEmpty(t, s.Message)
}

func TestController_CredentialSurvivesRestart(t *testing.T) {
	r := newRig(t)
	r.loggedIn()

	r.restart()
	require.NoError(t, r.ctrl.Start(context.Background(), ""))
	s := r.ctrl.State()
	assert.Equal(t, ModeInitial, s.Mode)
	assert.Equal(t, r.ann.ID, s.Developer.ID)
}

func TestController_RejectedCredentialGoesToAuth(t *testing.T) {
	r := newRig(t)
	r.loggedIn()
	r.fake.RevokeSessions()

	r.restart()
	require.NoError(t, r.ctrl.Start(context.Background(), ""))
	s := r.ctrl.State()
	assert.Equal(t, ModeAuth, s.Mode)
	assert.Nil(t, s.Developer)
	assert.NotEmpty(t, s.Message)

	// the rejected credential is gone, so the next launch asks again silently
	r.restart()
	require.NoError(t, r.ctrl.Start(context.Background(), ""))
	assert.Equal(t, AuthView{}, r.ctrl.View())
}

func TestController_LoadFailureAndRetry(t *testing.T) {
	r := newRig(t)
	r.loggedIn()
	r.fake.SetError("Me", client.ErrUnavailable)

	r.restart()
	require.ErrorIs(t, r.ctrl.Start(context.Background(), ""), client.ErrUnavailable)
	require.Equal(t, ModeError, r.ctrl.State().Mode)

	r.fake.SetError("Me", nil)
	require.NoError(t, r.ctrl.Retry(context.Background()))
	assert.Equal(t, ModeInitial, r.ctrl.State().Mode)

	assert.ErrorIs(t, r.ctrl.Retry(context.Background()), ErrNotAllowed)
}

func TestController_LobbyFailureIsAnErrorMode(t *testing.T) {
	r := newRig(t)
	r.fake.SetError("ListActiveTables", client.ErrUnavailable)
	ctx := context.Background()
	require.NoError(t, r.ctrl.Start(ctx, ""))

	require.ErrorIs(t, r.ctrl.Login(ctx, "ann@example.com", "secret1"), client.ErrUnavailable)
	assert.Equal(t, ModeError, r.ctrl.State().Mode)
}

func TestController_CreateJoinVote(t *testing.T) {
	r := newRig(t)
	r.onTable()

	s := r.ctrl.State()
	assert.Equal(t, models.PokerTable{ID: 1, Name: "Table 1", CreatedAt: s.Table.CreatedAt}, *s.Table)
	assert.Equal(t, int64(10), s.Developer.ID)
	assert.Nil(t, s.Developer.Vote)
	assert.False(t, s.HasVoted)
	assert.Equal(t, "Waiting for your vote", r.participant(r.ann.ID).Vote.Label)

	require.NoError(t, r.ctrl.CastVote(context.Background(), 5))
	s = r.ctrl.State()
	assert.True(t, s.HasVoted)
	require.Len(t, s.Developers, 1)
	assert.Equal(t, common.Int32Ptr(5), s.Developers[0].Vote)
	assert.Equal(t, VoteDisplay{VoteOwn, "Your vote: 5"}, r.participant(r.ann.ID).Vote)
}

func TestController_ResetHidesVotesAgain(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()
	r.fake.Seat(r.bob.ID, 1, common.Int32Ptr(8))

	require.NoError(t, r.ctrl.CastVote(ctx, 5))
	assert.Equal(t, VoteDisplay{VoteShown, "8"}, r.participant(r.bob.ID).Vote)

	require.NoError(t, r.ctrl.ResetVotes(ctx))
	s := r.ctrl.State()
	assert.False(t, s.HasVoted)
	for _, d := range s.Developers {
		assert.Nil(t, d.Vote)
	}
	assert.Equal(t, VoteHidden, r.participant(r.bob.ID).Vote.Visibility)
	assert.Equal(t, VoteOwnPending, r.participant(r.ann.ID).Vote.Visibility)
}

func TestController_ResetByAnotherClientArrivesByPolling(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()
	r.fake.Seat(r.bob.ID, 1, common.Int32Ptr(8))
	require.NoError(t, r.ctrl.CastVote(ctx, 5))
	require.True(t, r.ctrl.State().HasVoted)

	r.fake.Seat(r.ann.ID, 1, nil)
	r.fake.Seat(r.bob.ID, 1, nil)

	calls := r.fake.Calls("ListDevelopers")
	require.NoError(t, r.clock.BlockUntilContext(ctx, 2))
	r.clock.Advance(devInterval)
	r.eventually("ListDevelopers", calls+1)

	require.Eventually(t, func() bool { return !r.ctrl.State().HasVoted }, time.Second, 5*time.Millisecond)
	assert.Equal(t, VoteHidden, r.participant(r.bob.ID).Vote.Visibility)
}

func TestController_ZeroVoteIsAVote(t *testing.T) {
	r := newRig(t)
	r.onTable()
	r.fake.Seat(r.bob.ID, 1, common.Int32Ptr(0))

	require.NoError(t, r.ctrl.CastVote(context.Background(), 0))
	assert.True(t, r.ctrl.State().HasVoted)
	assert.Equal(t, VoteDisplay{VoteOwn, "Your vote: 0"}, r.participant(r.ann.ID).Vote)
	assert.Equal(t, VoteDisplay{VoteShown, "0"}, r.participant(r.bob.ID).Vote)
}

func TestController_InvalidVoteLeavesStateAlone(t *testing.T) {
	r := newRig(t)
	r.onTable()

	err := r.ctrl.CastVote(context.Background(), 4)
	require.ErrorIs(t, err, client.ErrInvalidArgument)
	s := r.ctrl.State()
	assert.False(t, s.HasVoted)
	assert.NotEmpty(t, s.Message)

	r.ctrl.ClearMessage()
	assert.Empty(t, r.ctrl.State().Message)
}

func TestController_JoinClosedTable(t *testing.T) {
	r := newRig(t)
	closed := r.fake.AddTable(true)
	r.loggedIn()

	var seen []Mode
	var mu sync.Mutex
	r.ctrl.Subscribe(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s.Mode)
	})

	err := r.ctrl.JoinTable(context.Background(), closed.ID)
	require.ErrorIs(t, err, client.ErrClosedTable)

	s := r.ctrl.State()
	assert.Equal(t, ModeInitial, s.Mode)
	assert.Nil(t, s.Table)
	assert.Equal(t, "This table is closed.", s.Message)

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, seen, ModeOnTable)
}

func TestController_JoinUnknownTable(t *testing.T) {
	r := newRig(t)
	r.loggedIn()

	require.ErrorIs(t, r.ctrl.JoinTable(context.Background(), 42), client.ErrNotFound)
	assert.Equal(t, ModeInitial, r.ctrl.State().Mode)
	assert.ErrorIs(t, r.ctrl.JoinTable(context.Background(), 0), ErrNotAllowed)
}

func TestController_DeferredJoinReplaysOnce(t *testing.T) {
	r := newRig(t)
	table := r.fake.AddTable(false)
	ctx := context.Background()

	require.NoError(t, r.ctrl.Start(ctx, fmt.Sprintf("poker://join?tableId=%d", table.ID)))
	require.Equal(t, AuthView{PendingTableID: table.ID}, r.ctrl.View())

	require.Error(t, r.ctrl.Login(ctx, "ann@example.com", "wrong"))
	assert.Equal(t, table.ID, r.ctrl.State().PendingTableID)
	assert.Zero(t, r.fake.Calls("JoinTable"))

	require.NoError(t, r.ctrl.Login(ctx, "ann@example.com", "secret1"))
	s := r.ctrl.State()
	assert.Equal(t, ModeOnTable, s.Mode)
	assert.Equal(t, table.ID, s.Table.ID)
	assert.Zero(t, s.PendingTableID)
	assert.Equal(t, 1, r.fake.Calls("JoinTable"))

	assert.ErrorIs(t, r.ctrl.Login(ctx, "ann@example.com", "secret1"), ErrNotAllowed)
	assert.Equal(t, 1, r.fake.Calls("JoinTable"))
}

func TestController_FailedDeferredJoinLoadsLobby(t *testing.T) {
	r := newRig(t)
	active := r.fake.AddTable(false)
	closed := r.fake.AddTable(true)
	ctx := context.Background()

	require.NoError(t, r.ctrl.Start(ctx, fmt.Sprint(closed.ID)))
	err := r.ctrl.Login(ctx, "ann@example.com", "secret1")
	require.ErrorIs(t, err, client.ErrClosedTable)

	v, ok := r.ctrl.View().(LobbyView)
	require.True(t, ok)
	require.Len(t, v.ActiveTables, 1)
	assert.Equal(t, active.ID, v.ActiveTables[0].ID)
	assert.Equal(t, "This table is closed.", v.Message)
	assert.Equal(t, 1, r.fake.Calls("ListMyClosedTables"))
}

func TestController_JoinWithoutDeveloperDefers(t *testing.T) {
	r := newRig(t)
	table := r.fake.AddTable(false)
	ctx := context.Background()
	require.NoError(t, r.ctrl.Start(ctx, ""))

	require.NoError(t, r.ctrl.JoinTable(ctx, table.ID))
	assert.Equal(t, AuthView{PendingTableID: table.ID}, r.ctrl.View())

	require.NoError(t, r.ctrl.Login(ctx, "ann@example.com", "secret1"))
	assert.Equal(t, ModeOnTable, r.ctrl.State().Mode)
}

func TestController_StoredCredentialWithInviteJoins(t *testing.T) {
	r := newRig(t)
	table := r.fake.AddTable(false)
	r.loggedIn()

	r.restart()
	require.NoError(t, r.ctrl.Start(context.Background(), fmt.Sprint(table.ID)))
	assert.Equal(t, ModeOnTable, r.ctrl.State().Mode)
	assert.Equal(t, 1, r.fake.Calls("ListMyClosedTables"), "lobby only loaded by the first login")
}

func TestController_InviteIgnoredOnTable(t *testing.T) {
	r := newRig(t)
	other := r.fake.AddTable(false)
	r.onTable()
	joins := r.fake.Calls("JoinTable")

	require.NoError(t, r.ctrl.Invite(context.Background(), fmt.Sprintf("?tableId=%d", other.ID)))
	s := r.ctrl.State()
	assert.Equal(t, ModeOnTable, s.Mode)
	assert.NotEqual(t, other.ID, s.Table.ID)
	assert.Equal(t, joins, r.fake.Calls("JoinTable"))
}

func TestController_InviteFromLobby(t *testing.T) {
	r := newRig(t)
	table := r.fake.AddTable(false)
	r.loggedIn()

	require.NoError(t, r.ctrl.Invite(context.Background(), fmt.Sprintf("poker://join?tableId=%d", table.ID)))
	assert.Equal(t, table.ID, r.ctrl.State().Table.ID)

	require.ErrorIs(t, r.ctrl.Invite(context.Background(), "nonsense"), ErrInvalidInvite)
}

func TestController_PollersFollowTheTable(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()

	require.True(t, r.ctrl.devPoller.Running())
	require.True(t, r.ctrl.storyPoller.Running())

	devCalls := r.fake.Calls("ListDevelopers")
	storyCalls := r.fake.Calls("ListStories")
	require.NoError(t, r.clock.BlockUntilContext(ctx, 2))
	r.clock.Advance(storyInterval)
	r.eventually("ListDevelopers", devCalls+1)
	r.eventually("ListStories", storyCalls+1)

	require.NoError(t, r.ctrl.Back(ctx))
	assert.Equal(t, ModeInitial, r.ctrl.State().Mode)
	r.ctrl.devPoller.Wait()
	r.ctrl.storyPoller.Wait()

	devCalls = r.fake.Calls("ListDevelopers")
	storyCalls = r.fake.Calls("ListStories")
	for i := 0; i < 3; i++ {
		r.clock.Advance(storyInterval)
	}
	assert.Never(t, func() bool {
		return r.fake.Calls("ListDevelopers") != devCalls || r.fake.Calls("ListStories") != storyCalls
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestController_PollFailureIsNotSurfaced(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()
	r.fake.SetError("ListDevelopers", client.ErrUnavailable)

	calls := r.fake.Calls("ListDevelopers")
	require.NoError(t, r.clock.BlockUntilContext(ctx, 2))
	r.clock.Advance(devInterval)
	r.eventually("ListDevelopers", calls+1)

	s := r.ctrl.State()
	assert.Equal(t, ModeOnTable, s.Mode)
	assert.Empty(t, s.Message)

	r.fake.SetError("ListDevelopers", nil)
	r.fake.Seat(r.bob.ID, 1, nil)
	r.clock.Advance(devInterval)
	require.Eventually(t, func() bool { return len(r.ctrl.State().Developers) == 2 }, time.Second, 5*time.Millisecond)
}

func TestController_StaleDeveloperListDropped(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	r.fake.SetBefore(func(_ context.Context, method string) {
		if method != "ListDevelopers" {
			return
		}
		held := false
		once.Do(func() { held = true })
		if held {
			close(entered)
			<-release
		}
	})

	slow := make(chan error, 1)
	go func() { slow <- r.ctrl.RefreshDevelopers(ctx) }()
	<-entered

	require.NoError(t, r.ctrl.RefreshDevelopers(ctx))
	require.Len(t, r.ctrl.State().Developers, 1)

	// the held response now carries Bob, but a newer refresh was applied
	r.fake.Seat(r.bob.ID, 1, nil)
	close(release)
	require.NoError(t, <-slow)
	assert.Len(t, r.ctrl.State().Developers, 1)
}

func TestController_ListFetchedBeforeVoteIsDropped(t *testing.T) {
	r := newRig(t)
	h := r.withHeldList()
	r.onTable()
	r.fake.Seat(r.bob.ID, 1, common.Int32Ptr(8))

	done, seen := r.deliverHeldOn(h, func(s State) bool { return s.HasVoted })
	require.NoError(t, r.ctrl.CastVote(context.Background(), 5))
	<-done

	assert.NotContains(t, seen(), false, "reveal gate closed again without a reset")
	assert.True(t, r.ctrl.State().HasVoted)
	assert.Equal(t, VoteDisplay{VoteShown, "8"}, r.participant(r.bob.ID).Vote)
	assert.Equal(t, "Your vote: 5", r.participant(r.ann.ID).Vote.Label)
}

func TestController_ListFetchedBeforeResetIsDropped(t *testing.T) {
	r := newRig(t)
	h := r.withHeldList()
	r.onTable()
	r.fake.Seat(r.bob.ID, 1, common.Int32Ptr(8))
	require.NoError(t, r.ctrl.CastVote(context.Background(), 5))

	done, seen := r.deliverHeldOn(h, func(s State) bool { return !s.HasVoted })
	require.NoError(t, r.ctrl.ResetVotes(context.Background()))
	<-done

	assert.NotContains(t, seen(), true, "votes revealed again after a reset")
	assert.False(t, r.ctrl.State().HasVoted)
	assert.Equal(t, VoteHidden, r.participant(r.bob.ID).Vote.Visibility)
	for _, d := range r.ctrl.State().Developers {
		assert.Nil(t, d.Vote)
	}
}

func TestController_SameActionInFlightIsBusy(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	r.fake.SetBefore(func(_ context.Context, method string) {
		if method == "CastVote" {
			close(entered)
			<-release
		}
	})

	first := make(chan error, 1)
	go func() { first <- r.ctrl.CastVote(ctx, 3) }()
	<-entered

	assert.ErrorIs(t, r.ctrl.CastVote(ctx, 5), ErrBusy)
	close(release)
	require.NoError(t, <-first)
	assert.Equal(t, common.Int32Ptr(3), r.ctrl.State().Developers[0].Vote)
}

func TestController_StoryMutationsAreKeyedPerStory(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()
	one := r.fake.AddStory(1, "one")
	two := r.fake.AddStory(1, "two")

	entered := make(chan struct{})
	release := make(chan struct{})
	r.fake.SetBefore(func(_ context.Context, method string) {
		if method == "DeleteStory" {
			close(entered)
			<-release
		}
	})

	first := make(chan error, 1)
	go func() { first <- r.ctrl.DeleteStory(ctx, one.ID) }()
	<-entered

	_, err := r.ctrl.UpdateStory(ctx, one.ID, models.StoryPatch{Title: common.StringPtr("uno")})
	assert.ErrorIs(t, err, ErrBusy)
	updated, err := r.ctrl.UpdateStory(ctx, two.ID, models.StoryPatch{Title: common.StringPtr("dos")})
	require.NoError(t, err)
	assert.Equal(t, "dos", updated.Title)

	close(release)
	require.NoError(t, <-first)
	stories := r.ctrl.State().Stories
	require.Len(t, stories, 1)
	assert.Equal(t, "dos", stories[0].Title)
}

func TestController_StoryLifecycle(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()

	story, err := r.ctrl.AddStory(ctx, models.StoryInput{Title: "Login page", EstimatedPoints: common.Int32Ptr(3)})
	require.NoError(t, err)
	require.Len(t, r.ctrl.State().Stories, 1)

	_, err = r.ctrl.AddStory(ctx, models.StoryInput{Title: " "})
	require.ErrorIs(t, err, client.ErrInvalidArgument)
	assert.Len(t, r.ctrl.State().Stories, 1)

	require.ErrorIs(t, r.ctrl.EditStory(99), ErrNotAllowed)
	require.NoError(t, r.ctrl.EditStory(story.ID))
	v := r.ctrl.View().(TableView)
	require.NotNil(t, v.EditingStory)

	_, err = r.ctrl.UpdateStory(ctx, story.ID, models.StoryPatch{ClearEstimate: true})
	require.NoError(t, err)
	s := r.ctrl.State()
	assert.Zero(t, s.EditingStoryID)
	assert.Nil(t, s.Stories[0].EstimatedPoints)

	require.NoError(t, r.ctrl.EditStory(story.ID))
	r.ctrl.CancelEdit()
	assert.Zero(t, r.ctrl.State().EditingStoryID)

	require.NoError(t, r.ctrl.DeleteStory(ctx, story.ID))
	assert.Empty(t, r.ctrl.State().Stories)
}

func TestController_CloseTable(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()

	err := r.ctrl.CloseTable(ctx)
	require.ErrorIs(t, err, client.ErrConflict)
	assert.Equal(t, ModeOnTable, r.ctrl.State().Mode)
	assert.NotEmpty(t, r.ctrl.State().Message)

	require.NoError(t, r.ctrl.CastVote(ctx, 8))
	require.NoError(t, r.ctrl.CloseTable(ctx))

	v, ok := r.ctrl.View().(LobbyView)
	require.True(t, ok)
	assert.Empty(t, v.ActiveTables)
	require.Len(t, v.ClosedTables, 1)
	assert.True(t, v.ClosedTables[0].IsClosed)
	assert.False(t, r.ctrl.devPoller.Running())
}

func TestController_ViewPastSession(t *testing.T) {
	r := newRig(t)
	closed := r.fake.AddTable(true)
	open := r.fake.AddTable(false)
	r.fake.AddStory(closed.ID, "done story")
	r.loggedIn()
	ctx := context.Background()

	require.ErrorIs(t, r.ctrl.ViewPastSession(ctx, open.ID), ErrNotAllowed)
	require.NoError(t, r.ctrl.ViewPastSession(ctx, closed.ID))

	v, ok := r.ctrl.View().(ReadOnlyView)
	require.True(t, ok)
	assert.Equal(t, closed.ID, v.Table.ID)
	require.Len(t, v.Stories, 1)

	assert.False(t, r.ctrl.devPoller.Running())
	assert.True(t, r.ctrl.storyPoller.Running())
	assert.ErrorIs(t, r.ctrl.CastVote(ctx, 3), ErrNotAllowed)

	var buf bytes.Buffer
	name, err := r.ctrl.ExportStories(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("poker-planning-export-%d.csv", closed.ID), name)
	assert.Contains(t, buf.String(), "done story")

	require.NoError(t, r.ctrl.Back(ctx))
	assert.Equal(t, ModeInitial, r.ctrl.State().Mode)
	assert.False(t, r.ctrl.storyPoller.Running())
}

func TestController_ArchiveLink(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()

	_, err := r.ctrl.ArchiveLink(ctx, 1)
	require.ErrorIs(t, err, client.ErrConflict)

	r.fake.SetArchiveURL("https://archive.example/t1.csv")
	link, err := r.ctrl.ArchiveLink(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://archive.example/t1.csv", link.URL)
}

func TestController_Logout(t *testing.T) {
	r := newRig(t)
	r.onTable()
	ctx := context.Background()
	r.fake.SetError("Logout", client.ErrUnavailable)

	require.NoError(t, r.ctrl.Logout(ctx))
	assert.Equal(t, State{Mode: ModeAuth}, r.ctrl.State())
	assert.False(t, r.ctrl.devPoller.Running())
	assert.False(t, r.ctrl.storyPoller.Running())

	r.restart()
	require.NoError(t, r.ctrl.Start(ctx, ""))
	assert.Equal(t, ModeAuth, r.ctrl.State().Mode, "credential dropped even when the server call failed")
}

func TestController_RegisterThenLogin(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()
	require.NoError(t, r.ctrl.Start(ctx, ""))

	dev, err := r.ctrl.Register(ctx, "Cid", "cid@example.com", "secret3")
	require.NoError(t, err)
	assert.Equal(t, ModeAuth, r.ctrl.State().Mode)

	_, err = r.ctrl.Register(ctx, "Cid", "cid@example.com", "secret3")
	require.ErrorIs(t, err, client.ErrConflict)

	require.NoError(t, r.ctrl.Login(ctx, "cid@example.com", "secret3"))
	assert.Equal(t, dev.ID, r.ctrl.State().Developer.ID)
}
