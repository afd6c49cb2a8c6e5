// Package models defines server-side data models persisted in the database.
package models

import "time"

// Developer is a registered participant. PokerTableID is the table the
// developer currently sits at; Vote is nil until cast in the current round.
type Developer struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	PokerTableID *int64
	Vote         *int32
	CreatedAt    time.Time
}

// HasVoted reports vote presence. A zero vote counts as voted.
func (d *Developer) HasVoted() bool {
	return d.Vote != nil
}
