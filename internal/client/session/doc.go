// Package session is the client-side reconciliation core of planning poker.
//
// A session is a finite-state machine over Mode. State is a value type and
// Reduce(State, Event) is a pure transition function; events that are not
// legal in the current mode leave the state unchanged. Render projects a
// State onto exactly one View variant per mode.
//
// Controller drives the machine: it calls the boundary client, turns the
// results into events, owns the pollers that refresh the participant and
// story lists, and guards every action against re-invocation while it is in
// flight. Poll responses carry a Sequencer ticket and the table id they were
// issued for, so a slow response never overwrites a newer one.
//
// Vote visibility is a local reveal gate (see ResolveVote): other
// participants' votes are hidden until the viewer has voted. Voting is
// detected by presence, so a vote of zero counts as cast.
package session
