package config

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/wekip/internal/flagx"
)

var knownFlags = []string{
	"-a", "--api-url",
	"-d", "--db",
	"--timeout",
	"--resend-cooldown",
	"--share-code-ttl",
	"--recent",
	"-l", "--log-level",
}

// parseFlags populates cfg from the flags it knows about. Other arguments are
// filtered out with flagx.FilterArgs first so that other components can share
// the command line.
func parseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("wekip", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&cfg.APIBaseURL, "api-url", "a", cfg.APIBaseURL, "base URL of the Wekip API")
	fs.StringVarP(&cfg.DatabasePath, "db", "d", cfg.DatabasePath, "local database file")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "API request timeout")
	fs.DurationVar(&cfg.ResendCooldown, "resend-cooldown", cfg.ResendCooldown, "wait between code resends")
	fs.DurationVar(&cfg.ShareCodeTTL, "share-code-ttl", cfg.ShareCodeTTL, "share code lifetime")
	fs.IntVar(&cfg.RecentLimit, "recent", cfg.RecentLimit, "receipts on the dashboard")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
