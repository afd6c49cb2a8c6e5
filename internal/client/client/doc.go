// Package client contains client-side building blocks for planning poker.
//
// # Overview
//
// The package provides:
//  1. The boundary contract the session core calls (see the Client
//     interface): auth, tables, membership and voting, stories and exports.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the access token via an interceptor, transparently
//     refreshes expired tokens, bounds every call with a timeout and maps
//     gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI:
//     an SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Server failures surface as sentinel errors matched with errors.Is:
// ErrUnauthorized, ErrNotFound, ErrClosedTable, ErrUnavailable, ErrForbidden,
// ErrInvalidArgument, ErrConflict and ErrThrottled. Anything else is wrapped
// as "rpc error: ...".
//
// # Concurrency
//
// GRPCClient is safe for concurrent use: pollers and user actions share one
// client, and concurrent token refreshes collapse into a single rotation.
package client
