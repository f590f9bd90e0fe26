package config

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/wekip/internal/flagx"
)

var knownFlags = []string{
	"-a", "--addr",
	"-s", "--secret",
	"--token-ttl",
	"--share-code-ttl",
	"--otp",
	"-l", "--log-level",
	"-d", "--database-dsn",
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a, --addr string          HTTP bind address (e.g., ":8080")
//	-s, --secret string        JWT HMAC secret key
//	    --token-ttl duration   access token lifetime
//	    --share-code-ttl dur.  share code lifetime
//	    --otp string           fixed one-time code, random when empty
//	-l, --log-level string     log level
//	-d, --database-dsn string  PostgreSQL DSN, in-memory users when empty
func parseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&cfg.Addr, "addr", "a", cfg.Addr, "address and port to run server")
	fs.StringVarP(&cfg.SecretKey, "secret", "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "access token validity")
	fs.DurationVar(&cfg.ShareCodeTTL, "share-code-ttl", cfg.ShareCodeTTL, "share code validity")
	fs.StringVar(&cfg.FixedOTP, "otp", cfg.FixedOTP, "fixed one-time code")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVarP(&cfg.DatabaseDSN, "database-dsn", "d", cfg.DatabaseDSN, "database DSN")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
