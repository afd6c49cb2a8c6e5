// Package services contains server-side business logic. This file implements
// DeveloperService, which handles registration, login, and issuing/refreshing
// JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/dmitrijs2005/planningpoker/internal/cryptox"
	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/logging"
	"github.com/dmitrijs2005/planningpoker/internal/server/auth"
	"github.com/dmitrijs2005/planningpoker/internal/server/config"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/repomanager"
)

const minPasswordLength = 6

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// DeveloperService provides authentication-related operations:
// - Register: create developers
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Logout: revoke a refresh token
type DeveloperService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	limiter                      *LoginLimiter
	logger                       logging.Logger
}

// NewDeveloperService constructs a DeveloperService using repositories and server config.
func NewDeveloperService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *DeveloperService {
	return &DeveloperService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		limiter:                      NewLoginLimiter(cfg.LoginRateLimit),
		logger:                       l.With("module", "developers"),
	}
}

func validateRegistration(name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " <>,") {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	return nil
}

// Register creates a developer. Emails are stored lower-cased.
func (s *DeveloperService) Register(ctx context.Context, name, email, password string) (*models.Developer, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	d, err := s.repomanager.Developers(s.db).Create(ctx, &models.Developer{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating developer: %w", err)
	}

	s.logger.Info(ctx, "developer registered", "developer_id", d.ID)
	return d, nil
}

// Login verifies the password and, on success, returns a new TokenPair.
func (s *DeveloperService) Login(ctx context.Context, email, password string) (*TokenPair, *models.Developer, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !s.limiter.Allow(email) {
		s.logger.Warn(ctx, "login throttled", "email", email)
		return nil, nil, common.ErrTooManyAttempts
	}

	d, err := s.repomanager.Developers(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if err := cryptox.CheckPassword(d.PasswordHash, password); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	pair, err := s.generateTokenPair(ctx, d.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return pair, d, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *DeveloperService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	fp := cryptox.Fingerprint(refreshToken)
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, fp)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		_ = repo.Delete(ctx, fp)
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, fp); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.DeveloperID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes refreshToken. Unknown tokens are ignored.
func (s *DeveloperService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, cryptox.Fingerprint(refreshToken)); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// Me resolves a developer id taken from a verified access token.
// A developer deleted since the token was issued yields ErrorUnauthorized.
func (s *DeveloperService) Me(ctx context.Context, developerID int64) (*models.Developer, error) {
	d, err := s.repomanager.Developers(s.db).GetByID(ctx, developerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return d, nil
}

// PurgeExpiredTokens deletes refresh tokens past their expiry.
func (s *DeveloperService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, time.Now())
}

// --- helpers below ---

func (s *DeveloperService) generateAccessToken(developerID int64) (string, error) {
	return auth.GenerateToken(developerID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *DeveloperService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *DeveloperService) generateTokenPair(ctx context.Context, developerID int64, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(developerID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, developerID, cryptox.Fingerprint(refresh), s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
