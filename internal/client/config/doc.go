// Package config loads runtime configuration for the planning poker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (POKER_SERVER_ADDR, POKER_DATA_DIR, ...), optionally
//     seeded from a .env file by the main package.
//  3. Optional JSON or YAML file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string       address:port of the backend gRPC endpoint
//	-i int          participant refresh interval (seconds)
//	-j int          story refresh interval (seconds)
//	-D string       local data directory (credential store, CSV exports)
//	-invite string  table to join on startup: an id or poker://join?tableId=<id>
//	-l string       log level (debug, info, warn, error)
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "developer_poll_interval": "3s",
//	  "story_poll_interval": "5s",
//	  "data_dir": ".planningpoker"
//	}
package config
