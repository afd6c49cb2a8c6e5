package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/client/session"
)

// renderView writes v using the renderer of its variant.
func renderView(w io.Writer, v session.View) {
	switch v := v.(type) {
	case session.AuthView:
		renderAuth(w, v)
	case session.LobbyView:
		renderLobby(w, v)
	case session.JoiningView:
		renderJoining(w, v)
	case session.TableView:
		renderTable(w, v)
	case session.ReadOnlyView:
		renderReadOnly(w, v)
	case session.ErrorView:
		renderError(w, v)
	default:
		renderLoading(w)
	}
}

func renderLoading(w io.Writer) {
	fmt.Fprintln(w, "Loading...")
}

func renderAuth(w io.Writer, v session.AuthView) {
	if v.PendingTableID != 0 {
		fmt.Fprintf(w, "Log in to join table #%d.\n", v.PendingTableID)
	} else {
		fmt.Fprintln(w, "Not logged in. Use 'login' or 'register'.")
	}
	renderMessage(w, v.Message)
}

func renderLobby(w io.Writer, v session.LobbyView) {
	fmt.Fprintf(w, "Logged in as %s.\n", v.Developer.Name)
	fmt.Fprintln(w, "Active tables:")
	renderTables(w, v.ActiveTables)
	fmt.Fprintln(w, "Your past sessions:")
	renderTables(w, v.ClosedTables)
	renderMessage(w, v.Message)
}

func renderTables(w io.Writer, tables []models.PokerTable) {
	if len(tables) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range tables {
		fmt.Fprintf(tw, "  #%d\t%s\t%s\n", t.ID, t.Name, t.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func renderJoining(w io.Writer, v session.JoiningView) {
	fmt.Fprintf(w, "Joining table #%d...\n", v.TableID)
}

func renderTable(w io.Writer, v session.TableView) {
	fmt.Fprintf(w, "%s (invite: poker://join?tableId=%d)\n", v.Table.Name, v.Table.ID)
	renderParticipants(w, v)
	if v.HasVoted {
		fmt.Fprintln(w, "Votes are revealed. Use 'reset' for a new round.")
	} else {
		fmt.Fprintf(w, "Deck: %s. Use 'vote <n>'.\n", deck(v.Deck))
	}
	renderStories(w, v.Stories)
	if v.EditingStory != nil {
		fmt.Fprintf(w, "Editing story #%d.\n", v.EditingStory.ID)
	}
	renderMessage(w, v.Message)
}

func renderParticipants(w io.Writer, v session.TableView) {
	fmt.Fprintln(w, "Participants:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range v.Participants {
		name := p.Developer.Name
		if p.Developer.ID == v.Developer.ID {
			name += " (you)"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, p.Vote.Label)
	}
	_ = tw.Flush()
}

func renderReadOnly(w io.Writer, v session.ReadOnlyView) {
	fmt.Fprintf(w, "%s (closed, read only)\n", v.Table.Name)
	renderStories(w, v.Stories)
	renderMessage(w, v.Message)
}

func renderError(w io.Writer, v session.ErrorView) {
	fmt.Fprintf(w, "Error: %s\nUse 'retry' to try again.\n", v.Message)
}

func renderStories(w io.Writer, stories []models.UserStory) {
	fmt.Fprintln(w, "Stories:")
	if len(stories) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range stories {
		points := "-"
		if s.EstimatedPoints != nil {
			points = fmt.Sprint(*s.EstimatedPoints)
		}
		fmt.Fprintf(tw, "  #%d\t%s\t%s\n", s.ID, s.Title, points)
	}
	_ = tw.Flush()
}

func renderMessage(w io.Writer, msg string) {
	if msg != "" {
		fmt.Fprintf(w, "! %s\n", msg)
	}
}

func deck(values []int32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
