package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the planning poker CLI.
type Config struct {
	ServerEndpointAddr    string
	DeveloperPollInterval time.Duration
	StoryPollInterval     time.Duration
	RequestTimeout        time.Duration
	DataDir               string
	Invite                string
	LogLevel              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DeveloperPollInterval = 3 * time.Second
	c.StoryPollInterval = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.DataDir = ".planningpoker"
	c.Invite = ""
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a config file (if given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, lookup)
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
