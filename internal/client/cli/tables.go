package cli

import "context"

// Show prints the view of the current mode.
func (a *App) Show(ctx context.Context) error {
	return a.finish(nil)
}

// Tables reloads the lobby: open tables and the developer's past sessions.
func (a *App) Tables(ctx context.Context) error {
	return a.do(func() error {
		return a.ctrl.RefreshLobby(ctx)
	})
}

// Create opens a new table and joins it.
func (a *App) Create(ctx context.Context) error {
	return a.do(func() error {
		return a.ctrl.CreateTable(ctx)
	})
}

// Join takes a seat at an open table. Without a login the join waits for
// the next successful one.
func (a *App) Join(ctx context.Context, tableID int64) error {
	return a.do(func() error {
		return a.ctrl.JoinTable(ctx, tableID)
	})
}

// Invite consumes an invite reference such as poker://join?tableId=7.
func (a *App) Invite(ctx context.Context, ref string) error {
	return a.do(func() error {
		return a.ctrl.Invite(ctx, ref)
	})
}

// View opens a closed table read-only.
func (a *App) View(ctx context.Context, tableID int64) error {
	return a.do(func() error {
		return a.ctrl.ViewPastSession(ctx, tableID)
	})
}

func (a *App) Vote(ctx context.Context, value int32) error {
	return a.do(func() error {
		return a.ctrl.CastVote(ctx, value)
	})
}

func (a *App) Reset(ctx context.Context) error {
	return a.do(func() error {
		return a.ctrl.ResetVotes(ctx)
	})
}

// CloseTable closes the table once everyone voted and returns to the lobby.
func (a *App) CloseTable(ctx context.Context) error {
	return a.do(func() error {
		return a.ctrl.CloseTable(ctx)
	})
}

func (a *App) Back(ctx context.Context) error {
	return a.do(func() error {
		return a.ctrl.Back(ctx)
	})
}

// Retry reloads the session after a failed start.
func (a *App) Retry(ctx context.Context) error {
	return a.do(func() error {
		return a.ctrl.Retry(ctx)
	})
}
