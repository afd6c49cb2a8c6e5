package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
// Interval flags are whole seconds and only override when passed.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-j", "-D", "-invite", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	developerPoll := fs.Int("i", int(cfg.DeveloperPollInterval.Seconds()), "participant refresh interval (in seconds)")
	storyPoll := fs.Int("j", int(cfg.StoryPollInterval.Seconds()), "story refresh interval (in seconds)")
	fs.StringVar(&cfg.DataDir, "D", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.Invite, "invite", cfg.Invite, "table id or invite link to join on startup")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.DeveloperPollInterval = time.Duration(*developerPoll) * time.Second
		case "j":
			cfg.StoryPollInterval = time.Duration(*storyPoll) * time.Second
		}
	})
}
