// Package config handles configuration for the development API server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the API server.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use the default outside development.
//   - TokenTTL: access token lifetime.
//   - ShareCodeTTL: lifetime reported for new share codes.
//   - FixedOTP: when set, every issued one-time code has this value.
//   - LogLevel: debug, info, warn or error.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Users are kept in memory when empty.
type Config struct {
	Addr         string
	SecretKey    string
	TokenTTL     time.Duration
	ShareCodeTTL time.Duration
	FixedOTP     string
	LogLevel     string
	DatabaseDSN  string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.ShareCodeTTL = 15 * time.Minute
	c.FixedOTP = ""
	c.LogLevel = "info"
	c.DatabaseDSN = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. args
// excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
