package session

import "github.com/dmitrijs2005/planningpoker/internal/client/models"

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// CredentialResolved: the stored credential belongs to Developer.
type CredentialResolved struct{ Developer models.Developer }

// CredentialRejected: the stored credential is invalid or expired.
type CredentialRejected struct{ Message string }

// CredentialAbsent: nothing was stored.
type CredentialAbsent struct{}

// LoadFailed: an unrecoverable fetch failure.
type LoadFailed struct{ Message string }

// RetryRequested: the user asked to reload after an error.
type RetryRequested struct{}

type LoggedIn struct{ Developer models.Developer }

type LoggedOut struct{}

// InviteReceived: a table id was discovered from an invite reference.
type InviteReceived struct{ TableID int64 }

// JoinRequested: an authenticated developer starts joining a table.
type JoinRequested struct{ TableID int64 }

// JoinDeferred: a join was requested without a developer.
type JoinDeferred struct{ TableID int64 }

type TableJoined struct {
	Developer models.Developer
	Table     models.PokerTable
	HasVoted  bool
}

type JoinFailed struct{ Message string }

type LobbyLoaded struct {
	Active []models.PokerTable
	Closed []models.PokerTable
}

// TableClosed: the active table was closed by this client.
type TableClosed struct{ TableID int64 }

type PastSessionLoaded struct {
	Table   models.PokerTable
	Stories []models.UserStory
}

type BackNavigated struct{}

// DevelopersRefreshed replaces the participant list of TableID.
type DevelopersRefreshed struct {
	TableID    int64
	Developers []models.Developer
}

// StoriesRefreshed replaces the story list of TableID.
type StoriesRefreshed struct {
	TableID int64
	Stories []models.UserStory
}

// VoteCast: the local developer's vote was accepted.
type VoteCast struct {
	TableID int64
	Value   int32
}

// VotesReset: every vote at the table was cleared.
type VotesReset struct{ TableID int64 }

type StoryEditStarted struct{ StoryID int64 }

type StoryEditCancelled struct{}

// ActionFailed: a mutation was rejected; only the message changes.
type ActionFailed struct{ Message string }

type MessageCleared struct{}

func (CredentialResolved) isEvent()  {}
func (CredentialRejected) isEvent()  {}
func (CredentialAbsent) isEvent()    {}
func (LoadFailed) isEvent()          {}
func (RetryRequested) isEvent()      {}
func (LoggedIn) isEvent()            {}
func (LoggedOut) isEvent()           {}
func (InviteReceived) isEvent()      {}
func (JoinRequested) isEvent()       {}
func (JoinDeferred) isEvent()        {}
func (TableJoined) isEvent()         {}
func (JoinFailed) isEvent()          {}
func (LobbyLoaded) isEvent()         {}
func (TableClosed) isEvent()         {}
func (PastSessionLoaded) isEvent()   {}
func (BackNavigated) isEvent()       {}
func (DevelopersRefreshed) isEvent() {}
func (StoriesRefreshed) isEvent()    {}
func (VoteCast) isEvent()            {}
func (VotesReset) isEvent()          {}
func (StoryEditStarted) isEvent()    {}
func (StoryEditCancelled) isEvent()  {}
func (ActionFailed) isEvent()        {}
func (MessageCleared) isEvent()      {}
