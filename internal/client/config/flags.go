package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the HTTP API
//	-s int      summary stream cutoff in seconds
//
// Only the flags handled here are passed to the FlagSet (flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	summarizeTimeout := fs.Int("s", int(cfg.SummarizeTimeout.Seconds()), "summary stream cutoff (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SummarizeTimeout = time.Duration(*summarizeTimeout) * time.Second
}
