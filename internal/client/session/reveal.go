package session

import (
	"fmt"

	"github.com/dmitrijs2005/planningpoker/internal/client/models"
)

// VoteVisibility classifies how one participant's vote is shown to a viewer.
type VoteVisibility int

const (
	// VoteOwn is the viewer's own cast vote.
	VoteOwn VoteVisibility = iota
	// VoteOwnPending is the viewer's own row before voting.
	VoteOwnPending
	// VoteHidden masks another participant while the viewer has not voted.
	VoteHidden
	// VoteShown is another participant's cast vote, revealed to the viewer.
	VoteShown
	// VotePending is another participant who has not voted yet.
	VotePending
)

const (
	pendingMarker    = "..."
	hiddenLabel      = "Vote hidden"
	waitingOwnLabel  = "Waiting for your vote"
	ownVoteLabelTmpl = "Your vote: %d"
)

// VoteDisplay is the resolved rendering of a participant's vote.
type VoteDisplay struct {
	Visibility VoteVisibility
	Label      string
}

// ResolveVote applies the local reveal gate. The viewer always sees their
// own vote; others stay hidden until viewerHasVoted, after which cast
// values are shown and missing ones get a pending marker. A vote is cast
// when present, so zero is a real value.
func ResolveVote(viewerID int64, viewerHasVoted bool, dev models.Developer) VoteDisplay {
	if dev.ID == viewerID {
		if dev.HasVoted() {
			return VoteDisplay{Visibility: VoteOwn, Label: fmt.Sprintf(ownVoteLabelTmpl, *dev.Vote)}
		}
		return VoteDisplay{Visibility: VoteOwnPending, Label: waitingOwnLabel}
	}
	if !viewerHasVoted {
		return VoteDisplay{Visibility: VoteHidden, Label: hiddenLabel}
	}
	if dev.HasVoted() {
		return VoteDisplay{Visibility: VoteShown, Label: fmt.Sprint(*dev.Vote)}
	}
	return VoteDisplay{Visibility: VotePending, Label: pendingMarker}
}
