package config

import (
	"flag"
	"os"
	"time"

	"pubkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the publications backend
//	-t int      request timeout in seconds
//	-i int      session poll interval in seconds
//	-d string   path of the local database file
//	-debug      enable debug logging
//
// Arguments are filtered to only the flags handled here so other components
// (and the test binary) can define their own.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-d", "-debug"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "base URL of the publications backend")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	pollInterval := fs.Int("i", int(cfg.SessionPollInterval.Seconds()), "session poll interval (in seconds)")
	fs.StringVar(&cfg.DataFile, "d", cfg.DataFile, "path of the local database file")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.SessionPollInterval = time.Duration(*pollInterval) * time.Second
}
