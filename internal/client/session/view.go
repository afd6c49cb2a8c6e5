package session

import (
	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/common"
)

// View is the projection of a State for one mode. Exactly one variant
// exists per Mode, so impossible combinations cannot be rendered.
type View interface {
	Mode() Mode
}

type LoadingView struct{}

type AuthView struct {
	Message        string
	PendingTableID int64
}

type LobbyView struct {
	Developer    models.Developer
	ActiveTables []models.PokerTable
	ClosedTables []models.PokerTable
	Message      string
}

type JoiningView struct {
	TableID int64
}

// Participant is a table member with the vote as the viewer may see it.
type Participant struct {
	Developer models.Developer
	Vote      VoteDisplay
}

type TableView struct {
	Developer    models.Developer
	Table        models.PokerTable
	Participants []Participant
	HasVoted     bool
	Deck         []int32
	Stories      []models.UserStory
	EditingStory *models.UserStory
	Message      string
}

// ReadOnlyView is a past session: stories only, no participants or deck.
type ReadOnlyView struct {
	Table   models.PokerTable
	Stories []models.UserStory
	Message string
}

type ErrorView struct {
	Message string
}

func (LoadingView) Mode() Mode  { return ModeLoading }
func (AuthView) Mode() Mode     { return ModeAuth }
func (LobbyView) Mode() Mode    { return ModeInitial }
func (JoiningView) Mode() Mode  { return ModeJoining }
func (TableView) Mode() Mode    { return ModeOnTable }
func (ReadOnlyView) Mode() Mode { return ModeViewOnly }
func (ErrorView) Mode() Mode    { return ModeError }

// Render projects s onto its view variant.
func Render(s State) View {
	switch s.Mode {
	case ModeAuth:
		return AuthView{Message: s.Message, PendingTableID: s.PendingTableID}
	case ModeInitial:
		v := LobbyView{ActiveTables: s.ActiveTables, ClosedTables: s.ClosedTables, Message: s.Message}
		if s.Developer != nil {
			v.Developer = *s.Developer
		}
		return v
	case ModeJoining:
		return JoiningView{TableID: s.PendingTableID}
	case ModeOnTable:
		return renderTable(s)
	case ModeViewOnly:
		v := ReadOnlyView{Stories: s.Stories, Message: s.Message}
		if s.Table != nil {
			v.Table = *s.Table
		}
		return v
	case ModeError:
		return ErrorView{Message: s.Message}
	default:
		return LoadingView{}
	}
}

func renderTable(s State) TableView {
	v := TableView{
		HasVoted: s.HasVoted,
		Deck:     append([]int32(nil), common.VoteDeck...),
		Stories:  s.Stories,
		Message:  s.Message,
	}
	if s.Developer != nil {
		v.Developer = *s.Developer
	}
	if s.Table != nil {
		v.Table = *s.Table
	}
	viewer := s.developerID()
	v.Participants = make([]Participant, 0, len(s.Developers))
	for _, d := range s.Developers {
		v.Participants = append(v.Participants, Participant{Developer: d, Vote: ResolveVote(viewer, s.HasVoted, d)})
	}
	if st, ok := s.EditingStory(); ok {
		v.EditingStory = &st
	}
	return v
}
