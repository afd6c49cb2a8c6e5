// Package server wires configuration, storage, services and the gRPC
// endpoint into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/logging"
	"github.com/dmitrijs2005/planningpoker/internal/server/config"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/planningpoker/internal/server/services"
	"github.com/jonboulle/clockwork"

	gs "github.com/dmitrijs2005/planningpoker/internal/server/grpc"
)

// tokenPurgeInterval is how often expired refresh tokens are deleted.
const tokenPurgeInterval = time.Hour

const initTimeout = 30 * time.Second

type tokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	clock         clockwork.Clock
	developerSvc  *services.DeveloperService
	tableService  *services.TableService
	storyService  *services.StoryService
	purger        tokenPurger
	startGRPCFunc func(ctx context.Context) error
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "json", c.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var archiver services.Archiver
	if c.ArchiveEnabled {
		a, err := services.NewS3Archiver(ctx, c)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		archiver = a
	}

	ds := services.NewDeveloperService(db, rm, c, logger)

	app := &App{
		config:       c,
		logger:       logger,
		db:           db,
		clock:        clockwork.NewRealClock(),
		developerSvc: ds,
		tableService: services.NewTableService(db, rm, archiver, logger),
		storyService: services.NewStoryService(db, rm, logger),
		purger:       ds,
	}
	app.startGRPCFunc = app.startGRPCServer
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.developerSvc, app.tableService, app.storyService, app.config.SecretKey)
	return s.Run(ctx)
}

// purgeTokens deletes expired refresh tokens every tokenPurgeInterval until ctx ends.
func (app *App) purgeTokens(ctx context.Context) {
	ticker := app.clock.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			n, err := app.purger.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Error(ctx, "token purge failed", "err", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired refresh tokens purged", "count", n)
			}
		}
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or the
// gRPC server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.startGRPCFunc(ctx); err != nil {
			app.logger.Error(ctx, "grpc server stopped", "err", err)
		}
		cancelFunc()
	}()
	go func() {
		defer wg.Done()
		app.purgeTokens(ctx)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "err", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
