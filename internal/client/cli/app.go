package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/planningpoker/internal/client/client"
	"github.com/dmitrijs2005/planningpoker/internal/client/config"
	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/client/services"
	"github.com/dmitrijs2005/planningpoker/internal/client/session"
	"github.com/dmitrijs2005/planningpoker/internal/filex"
	"github.com/dmitrijs2005/planningpoker/internal/logging"
)

const databaseFile = "planningpoker.db"

type App struct {
	config  *config.Config
	ctrl    *session.Controller
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	dataDir string
	closers []func() error

	// mu serializes view output of the REPL and of poll updates.
	mu        sync.Mutex
	lastTable string
	busy      bool
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.New(os.Stderr, "text", c.LogLevel)

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dataDir, databaseFile))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	auth := services.NewAuthService(apiClient, db)
	apiClient.OnTokensRefreshed(func(t models.Tokens) {
		if err := auth.SaveTokens(context.Background(), t); err != nil {
			logger.Warn(ctx, "saving rotated tokens failed", "error", err)
		}
	})

	ctrl := session.NewController(apiClient, auth, session.Options{
		Logger:                logger,
		DeveloperPollInterval: c.DeveloperPollInterval,
		StoryPollInterval:     c.StoryPollInterval,
	})

	a := newApp(c, ctrl, logger, bufio.NewReader(os.Stdin), os.Stdout, dataDir)
	a.closers = append(a.closers, apiClient.Close, db.Close)
	return a, nil
}

func newApp(c *config.Config, ctrl *session.Controller, logger logging.Logger, r *bufio.Reader, w io.Writer, dataDir string) *App {
	return &App{config: c, ctrl: ctrl, logger: logger, reader: r, out: w, dataDir: dataDir}
}

// Run resolves the stored credential, consumes the configured invite and
// serves commands until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to Planning Poker CLI (type 'help' for commands)")
	if err := a.ctrl.Start(ctx, a.config.Invite); err != nil {
		a.logger.Warn(ctx, "session start failed", "error", err)
	}
	a.ctrl.Subscribe(a.watch)
	_ = a.finish(nil)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	a.ctrl.Close()
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) mode() session.Mode {
	return a.ctrl.State().Mode
}

func (a *App) getStatus() string {
	s := a.ctrl.State()
	var parts []string
	if s.Developer != nil {
		parts = append(parts, s.Developer.Name)
	}
	if s.Table != nil {
		parts = append(parts, fmt.Sprintf("#%d", s.Table.ID))
	}
	parts = append(parts, string(s.Mode))
	return "(" + strings.Join(parts, " ") + ")"
}

// do runs one command. Poll updates are not printed while it runs since
// the view is printed in full afterwards.
func (a *App) do(fn func() error) error {
	a.mu.Lock()
	a.busy = true
	a.mu.Unlock()
	return a.finish(fn())
}

// finish prints the current view and the failure of the last action, then
// clears the message so it is shown once.
func (a *App) finish(err error) error {
	s := a.ctrl.State()

	a.mu.Lock()
	v := session.Render(s)
	renderView(a.out, v)
	if err != nil && s.Message == "" {
		_, msg := session.Classify(err)
		renderMessage(a.out, msg)
	}
	a.lastTable = tableDigest(v)
	a.busy = false
	a.mu.Unlock()

	if s.Message != "" {
		a.ctrl.ClearMessage()
	}
	return err
}

// watch reprints the participants when a transition, typically a poll,
// changed what the viewer sees at the table.
func (a *App) watch(s session.State) {
	if s.Mode != session.ModeOnTable {
		return
	}
	v := session.Render(s)
	digest := tableDigest(v)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy || digest == a.lastTable {
		return
	}
	a.lastTable = digest
	fmt.Fprintln(a.out)
	renderParticipants(a.out, v.(session.TableView))
}

func tableDigest(v session.View) string {
	tv, ok := v.(session.TableView)
	if !ok {
		return ""
	}
	var b strings.Builder
	renderParticipants(&b, tv)
	return b.String()
}
