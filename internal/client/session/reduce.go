package session

import "github.com/dmitrijs2005/planningpoker/internal/client/models"

// Reduce returns the state that follows s after ev. It never mutates s.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case CredentialResolved:
		if s.Mode != ModeLoading {
			return s
		}
		s.Developer = devPtr(e.Developer)
		s.Message = ""
		return s.afterAuth()

	case CredentialRejected:
		if s.Mode != ModeLoading {
			return s
		}
		s.Developer = nil
		s.Mode = ModeAuth
		s.Message = e.Message
		return s

	case CredentialAbsent:
		if s.Mode != ModeLoading {
			return s
		}
		s.Developer = nil
		s.Mode = ModeAuth
		return s

	case LoadFailed:
		s = s.withoutTable()
		s.Mode = ModeError
		s.Message = e.Message
		return s

	case RetryRequested:
		if s.Mode != ModeError {
			return s
		}
		s.Mode = ModeLoading
		s.Message = ""
		return s

	case LoggedIn:
		if s.Mode != ModeAuth {
			return s
		}
		s.Developer = devPtr(e.Developer)
		s.Message = ""
		return s.afterAuth()

	case LoggedOut:
		if s.Mode == ModeLoading {
			return s
		}
		return State{Mode: ModeAuth}

	case InviteReceived:
		if e.TableID <= 0 {
			return s
		}
		switch s.Mode {
		case ModeLoading, ModeAuth, ModeError:
			s.PendingTableID = e.TableID
		case ModeInitial:
			s.PendingTableID = e.TableID
			s.Mode = ModeJoining
		}
		return s

	case JoinRequested:
		if s.Mode != ModeInitial || s.Developer == nil || e.TableID <= 0 {
			return s
		}
		s.PendingTableID = e.TableID
		s.Mode = ModeJoining
		s.Message = ""
		return s

	case JoinDeferred:
		if s.Developer != nil || e.TableID <= 0 {
			return s
		}
		switch s.Mode {
		case ModeLoading, ModeAuth, ModeInitial:
			s.PendingTableID = e.TableID
			s.Mode = ModeAuth
		}
		return s

	case TableJoined:
		if s.Mode != ModeJoining || e.Table.ID != s.PendingTableID || e.Table.IsClosed {
			return s
		}
		s = s.withoutTable()
		s.Mode = ModeOnTable
		s.PendingTableID = 0
		s.Developer = devPtr(e.Developer)
		t := e.Table
		s.Table = &t
		s.HasVoted = e.HasVoted
		s.Message = ""
		return s

	case JoinFailed:
		if s.Mode != ModeJoining {
			return s
		}
		s.Mode = ModeInitial
		s.PendingTableID = 0
		s.Message = e.Message
		return s

	case LobbyLoaded:
		if s.Mode != ModeInitial {
			return s
		}
		s.ActiveTables = e.Active
		s.ClosedTables = e.Closed
		return s

	case TableClosed:
		if s.Mode != ModeOnTable || e.TableID != s.tableID() {
			return s
		}
		s = s.withoutTable()
		s.Mode = ModeInitial
		return s

	case PastSessionLoaded:
		if s.Mode != ModeInitial || !e.Table.IsClosed {
			return s
		}
		s = s.withoutTable()
		t := e.Table
		s.Table = &t
		s.Stories = e.Stories
		s.Mode = ModeViewOnly
		s.Message = ""
		return s

	case BackNavigated:
		if s.Mode != ModeOnTable && s.Mode != ModeViewOnly {
			return s
		}
		s = s.withoutTable()
		s.Mode = ModeInitial
		return s

	case DevelopersRefreshed:
		if s.Mode != ModeOnTable || e.TableID != s.tableID() {
			return s
		}
		s.Developers = e.Developers
		for _, d := range e.Developers {
			if d.ID == s.developerID() {
				s.HasVoted = d.HasVoted()
				break
			}
		}
		return s

	case StoriesRefreshed:
		if (s.Mode != ModeOnTable && s.Mode != ModeViewOnly) || e.TableID != s.tableID() {
			return s
		}
		s.Stories = e.Stories
		if _, ok := s.EditingStory(); !ok {
			s.EditingStoryID = 0
		}
		return s

	case VoteCast:
		if s.Mode != ModeOnTable || e.TableID != s.tableID() {
			return s
		}
		s.HasVoted = true
		s.Developers = withVote(s.Developers, s.developerID(), &e.Value)
		s.Message = ""
		return s

	case VotesReset:
		if s.Mode != ModeOnTable || e.TableID != s.tableID() {
			return s
		}
		s.HasVoted = false
		s.Developers = withVote(s.Developers, 0, nil)
		s.Message = ""
		return s

	case StoryEditStarted:
		if s.Mode != ModeOnTable {
			return s
		}
		prev := s.EditingStoryID
		s.EditingStoryID = e.StoryID
		if _, ok := s.EditingStory(); !ok {
			s.EditingStoryID = prev
		}
		return s

	case StoryEditCancelled:
		s.EditingStoryID = 0
		return s

	case ActionFailed:
		s.Message = e.Message
		return s

	case MessageCleared:
		s.Message = ""
		return s
	}
	return s
}

// afterAuth routes a freshly authenticated session to a deferred join, if
// one is pending, or to the lobby.
func (s State) afterAuth() State {
	if s.PendingTableID != 0 {
		s.Mode = ModeJoining
	} else {
		s.Mode = ModeInitial
	}
	return s
}

func devPtr(d models.Developer) *models.Developer {
	return &d
}

// withVote copies devs and sets the vote of developer id, or of everyone
// when id is zero.
func withVote(devs []models.Developer, id int64, vote *int32) []models.Developer {
	if devs == nil {
		return nil
	}
	out := make([]models.Developer, len(devs))
	copy(out, devs)
	for i := range out {
		if id == 0 || out[i].ID == id {
			if vote == nil {
				out[i].Vote = nil
			} else {
				v := *vote
				out[i].Vote = &v
			}
		}
	}
	return out
}
