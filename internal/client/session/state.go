package session

import "github.com/dmitrijs2005/planningpoker/internal/client/models"

type Mode string

const (
	ModeLoading  Mode = "loading"
	ModeAuth     Mode = "auth"
	ModeInitial  Mode = "initial"
	ModeJoining  Mode = "joining-specific"
	ModeOnTable  Mode = "on-table"
	ModeViewOnly Mode = "view-only"
	ModeError    Mode = "error"
)

// State is the client-local session. Slices are never mutated in place by
// Reduce, so copies of a State may be shared freely.
type State struct {
	Mode      Mode
	Developer *models.Developer

	// PendingTableID is a join deferred until authentication succeeds,
	// or the table being joined while in ModeJoining.
	PendingTableID int64

	Table      *models.PokerTable
	Developers []models.Developer
	Stories    []models.UserStory
	HasVoted   bool

	// EditingStoryID is zero or the id of a story in Stories.
	EditingStoryID int64

	ActiveTables []models.PokerTable
	ClosedTables []models.PokerTable

	// Message is the last user-visible notice, cleared by MessageCleared.
	Message string
}

// Initial returns the state a client starts in.
func Initial() State {
	return State{Mode: ModeLoading}
}

// EditingStory returns the story being edited, if any.
func (s State) EditingStory() (models.UserStory, bool) {
	if s.EditingStoryID == 0 {
		return models.UserStory{}, false
	}
	for _, st := range s.Stories {
		if st.ID == s.EditingStoryID {
			return st, true
		}
	}
	return models.UserStory{}, false
}

func (s State) tableID() int64 {
	if s.Table == nil {
		return 0
	}
	return s.Table.ID
}

func (s State) developerID() int64 {
	if s.Developer == nil {
		return 0
	}
	return s.Developer.ID
}

// withoutTable drops everything bound to the active table.
func (s State) withoutTable() State {
	s.Table = nil
	s.Developers = nil
	s.Stories = nil
	s.HasVoted = false
	s.EditingStoryID = 0
	return s
}
