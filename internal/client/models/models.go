// Package models defines client-side data models used by the planning poker CLI.
package models

import "time"

// Developer is a table participant as seen by the client.
type Developer struct {
	ID    int64
	Name  string
	Email string
	// Vote is nil until the developer votes in the current round.
	Vote *int32
}

// HasVoted reports whether a vote is present. Zero is a legitimate vote.
func (d Developer) HasVoted() bool {
	return d.Vote != nil
}

// PokerTable is a planning session. Closed tables never reopen.
type PokerTable struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	IsClosed  bool
}

// UserStory is a unit of work estimated at a table.
type UserStory struct {
	ID              int64
	TableID         int64
	Title           string
	Description     string
	EstimatedPoints *int32
}

// StoryInput carries the fields of a new story.
type StoryInput struct {
	Title           string
	Description     string
	EstimatedPoints *int32
}

// StoryPatch is a partial update. Nil fields stay unchanged;
// ClearEstimate resets EstimatedPoints to null.
type StoryPatch struct {
	Title           *string
	Description     *string
	EstimatedPoints *int32
	ClearEstimate   bool
}

// IsEmpty reports whether the patch changes nothing.
func (p StoryPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.EstimatedPoints == nil && !p.ClearEstimate
}

// Tokens is the credential pair issued on login.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether no credential is held.
func (t Tokens) IsZero() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// Export is a rendered CSV export of a table's stories.
type Export struct {
	Filename string
	Content  []byte
}

// ArchiveLink points at an archived export in object storage.
type ArchiveLink struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}
