package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the oracle server
//	-i int      online check interval in seconds
//	-d string   local database file
//	-r int      reveal pacing delay in milliseconds
//	-z string   reference timezone
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other loaders
// do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-d", "-r", "-z", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database file")
	revealDelay := fs.Int("r", int(cfg.RevealDelay.Milliseconds()), "reveal pacing delay (in milliseconds)")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "reference timezone")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RevealDelay = time.Duration(*revealDelay) * time.Millisecond
}
