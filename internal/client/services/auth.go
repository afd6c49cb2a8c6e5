// Package services contains application services for the planning poker
// client. This file defines the authentication service: register, login and
// logout against the server, plus the persisted credential that lets a
// restarted client resolve its developer without logging in again.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/planningpoker/internal/client/client"
	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/planningpoker/internal/dbx"
)

// Metadata keys of the persisted credential.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyDeveloperID  = "developer_id"
)

// ErrNoCredential is returned by Resolve when nothing is stored.
var ErrNoCredential = errors.New("no stored credential")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Resolve: read the stored credential once and turn it into a Developer;
//     a rejected credential is wiped.
//   - Login: authenticate against the server and persist the token pair.
//   - Register: create a new developer on the server.
//   - Logout: revoke the refresh token and wipe the stored credential.
//   - RememberDeveloper, SaveTokens: keep the stored credential current.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Resolve(ctx context.Context) (*models.Developer, error)
	Login(ctx context.Context, email, password string) (*models.Developer, error)
	Register(ctx context.Context, name, email, password string) (*models.Developer, error)
	Logout(ctx context.Context) error
	RememberDeveloper(ctx context.Context, developerID int64) error
	SaveTokens(ctx context.Context, t models.Tokens) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and the local SQLite metadata table.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Resolve installs the stored token pair on the client and asks the server
// who it belongs to. client.ErrUnauthorized clears the stored credential;
// other failures keep it so a retry can succeed.
func (a *authService) Resolve(ctx context.Context) (*models.Developer, error) {
	repo := a.getMetadataRepo(a.db)

	access, err := repo.Get(ctx, keyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	refresh, err := repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	if len(access) == 0 && len(refresh) == 0 {
		return nil, ErrNoCredential
	}

	a.client.SetTokens(models.Tokens{AccessToken: string(access), RefreshToken: string(refresh)})

	dev, err := a.client.Me(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		a.client.SetTokens(models.Tokens{})
		if cerr := a.clear(ctx); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	// the pair may have been rotated during Me
	if err := a.saveCredential(ctx, a.client.Tokens(), dev.ID); err != nil {
		return nil, err
	}
	return dev, nil
}

// Login authenticates against the server and saves the token pair and
// developer id in a single transaction.
func (a *authService) Login(ctx context.Context, email, password string) (*models.Developer, error) {
	tokens, dev, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveCredential(ctx, tokens, dev.ID); err != nil {
		return nil, fmt.Errorf("credential saving error: %w", err)
	}
	return dev, nil
}

func (a *authService) saveCredential(ctx context.Context, t models.Tokens, developerID int64) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(t.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyRefreshToken, []byte(t.RefreshToken)); err != nil {
			return err
		}
		return repo.Set(ctx, keyDeveloperID, []byte(strconv.FormatInt(developerID, 10)))
	})
}

func (a *authService) Register(ctx context.Context, name, email, password string) (*models.Developer, error) {
	return a.client.Register(ctx, name, email, password)
}

// Logout always wipes the local credential; the server error, if any, is
// returned afterwards.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	if cerr := a.clear(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

func (a *authService) clear(ctx context.Context) error {
	return a.getMetadataRepo(a.db).Delete(ctx, keyAccessToken, keyRefreshToken, keyDeveloperID)
}

// RememberDeveloper records the developer id returned by a join.
func (a *authService) RememberDeveloper(ctx context.Context, developerID int64) error {
	return a.getMetadataRepo(a.db).Set(ctx, keyDeveloperID, []byte(strconv.FormatInt(developerID, 10)))
}

// SaveTokens persists a rotated token pair.
func (a *authService) SaveTokens(ctx context.Context, t models.Tokens) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(t.AccessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, keyRefreshToken, []byte(t.RefreshToken))
	})
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
