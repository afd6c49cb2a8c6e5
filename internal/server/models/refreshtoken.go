package models

import "time"

// RefreshToken is stored by fingerprint (see cryptox.Fingerprint), never raw.
type RefreshToken struct {
	ID          int64
	DeveloperID int64
	Token       string
	Expires     time.Time
	CreatedAt   time.Time
}
