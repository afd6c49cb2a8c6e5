package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/client/session"
)

// Stories refetches and prints the story roster of the current table.
func (a *App) Stories(ctx context.Context) error {
	m := a.mode()
	if m != session.ModeOnTable && m != session.ModeViewOnly {
		fmt.Fprintln(a.out, "Not at a table.")
		return session.ErrNotAllowed
	}
	err := a.ctrl.RefreshStories(ctx)
	if err != nil {
		_, msg := session.Classify(err)
		renderMessage(a.out, msg)
	}
	renderStories(a.out, a.ctrl.State().Stories)
	return err
}

// AddStory prompts for a title, a description and an optional estimate.
func (a *App) AddStory(ctx context.Context) error {
	if a.mode() != session.ModeOnTable {
		return a.finish(session.ErrNotAllowed)
	}
	var in models.StoryInput
	var err error
	if in.Title, err = getSimpleText(a.reader, "Enter title", a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Enter description", a.out); err != nil {
		return err
	}
	if in.EstimatedPoints, _, err = GetEstimate(a.reader, "Enter estimate (empty for none)", a.out); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	return a.do(func() error {
		s, err := a.ctrl.AddStory(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added story #%d.\n", s.ID)
		return nil
	})
}

// Edit marks a story as being edited and prompts for the new values. An
// empty answer keeps the current value; "-" as estimate removes it.
func (a *App) Edit(ctx context.Context, storyID int64) error {
	if err := a.ctrl.EditStory(storyID); err != nil {
		return a.finish(err)
	}
	current, _ := a.ctrl.State().EditingStory()
	fmt.Fprintf(a.out, "Editing story #%d %q. Leave a field empty to keep it.\n", current.ID, current.Title)

	patch, err := a.readPatch()
	if err != nil {
		a.ctrl.CancelEdit()
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if patch.IsEmpty() {
		a.ctrl.CancelEdit()
		fmt.Fprintln(a.out, "Nothing changed.")
		return nil
	}

	return a.do(func() error {
		_, err := a.ctrl.UpdateStory(ctx, storyID, patch)
		return err
	})
}

func (a *App) readPatch() (models.StoryPatch, error) {
	var p models.StoryPatch
	title, err := getSimpleText(a.reader, "New title", a.out)
	if err != nil {
		return p, err
	}
	if title != "" {
		p.Title = &title
	}
	desc, err := GetMultiline(a.reader, "New description", a.out)
	if err != nil {
		return p, err
	}
	if desc != "" {
		p.Description = &desc
	}
	p.EstimatedPoints, p.ClearEstimate, err = GetEstimate(a.reader, "New estimate ('-' to remove)", a.out)
	return p, err
}

// Cancel stops editing without saving.
func (a *App) Cancel(ctx context.Context) error {
	return a.do(func() error {
		a.ctrl.CancelEdit()
		return nil
	})
}

func (a *App) Delete(ctx context.Context, storyID int64) error {
	return a.do(func() error {
		return a.ctrl.DeleteStory(ctx, storyID)
	})
}
