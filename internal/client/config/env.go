package config

import (
	"fmt"
	"time"
)

const (
	EnvServerAddr     = "POKER_SERVER_ADDR"
	EnvDeveloperPoll  = "POKER_DEVELOPER_POLL"
	EnvStoryPoll      = "POKER_STORY_POLL"
	EnvRequestTimeout = "POKER_REQUEST_TIMEOUT"
	EnvDataDir        = "POKER_DATA_DIR"
	EnvInvite         = "POKER_INVITE"
	EnvClientLogLevel = "POKER_CLIENT_LOG_LEVEL"
)

// parseEnv overlays values present in the environment. Durations use
// time.ParseDuration syntax; malformed values panic.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			*dst = d
		}
	}

	str(EnvServerAddr, &cfg.ServerEndpointAddr)
	dur(EnvDeveloperPoll, &cfg.DeveloperPollInterval)
	dur(EnvStoryPoll, &cfg.StoryPollInterval)
	dur(EnvRequestTimeout, &cfg.RequestTimeout)
	str(EnvDataDir, &cfg.DataDir)
	str(EnvInvite, &cfg.Invite)
	str(EnvClientLogLevel, &cfg.LogLevel)
}
