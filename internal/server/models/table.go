package models

import "time"

// PokerTable is a planning session. IsClosed is terminal.
type PokerTable struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	IsClosed  bool
}

// Participation is the vote a developer held when a table was closed.
type Participation struct {
	ID           int64
	DeveloperID  int64
	PokerTableID int64
	Vote         *int32
	CreatedAt    time.Time
}

// TableExport records a CSV export archived in object storage.
type TableExport struct {
	ID           int64
	PokerTableID int64
	ObjectKey    string
	CreatedAt    time.Time
}
