// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
// Tokens are passed in already fingerprinted.
type Repository interface {
	// Create stores a new refresh token for developerID with an expiry of now+validity.
	Create(ctx context.Context, developerID int64, token string, validity time.Duration) error

	// Find looks up a refresh token and returns its metadata, or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting a non-existent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired purges tokens that expired before now and returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
