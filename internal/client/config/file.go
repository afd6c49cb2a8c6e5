package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/planningpoker/internal/flagx"
	"github.com/dmitrijs2005/planningpoker/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file decoding. Zero values leave
// the runtime Config untouched.
type FileConfig struct {
	ServerEndpointAddr    string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	DeveloperPollInterval timex.Duration `json:"developer_poll_interval" yaml:"developer_poll_interval"`
	StoryPollInterval     timex.Duration `json:"story_poll_interval" yaml:"story_poll_interval"`
	RequestTimeout        timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DataDir               string         `json:"data_dir" yaml:"data_dir"`
	Invite                string         `json:"invite" yaml:"invite"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Read or decode
// errors panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	if flagx.IsYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.DeveloperPollInterval.Duration > 0 {
		cfg.DeveloperPollInterval = fc.DeveloperPollInterval.Duration
	}
	if fc.StoryPollInterval.Duration > 0 {
		cfg.StoryPollInterval = fc.StoryPollInterval.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.Invite != "" {
		cfg.Invite = fc.Invite
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
