package session

import "sync/atomic"

// Sequencer issues increasing tickets for one refreshed list. Only the
// response holding the latest ticket may be applied.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a ticket newer than every previous one.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// IsLatest reports whether no ticket was issued after t.
func (s *Sequencer) IsLatest(t uint64) bool {
	return s.latest.Load() == t
}
