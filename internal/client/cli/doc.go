// Package cli provides the interactive planning poker command-line client.
//
// It wires configuration, the local credential store, the gRPC client and a
// session.Controller behind a small REPL. Every command runs one controller
// action and then prints the view of the resulting mode; while seated at a
// table, participant changes picked up by polling are printed as they
// arrive.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
