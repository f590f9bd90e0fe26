package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Wekip client.
//
// Fields:
//   - APIBaseURL: base URL of the Wekip HTTP API.
//   - DatabasePath: SQLite file holding the device key-value store.
//   - RequestTimeout: per request timeout of the API gateway.
//   - ResendCooldown: wait between two code resends.
//   - ShareCodeTTL: longest lifetime shown for a share code.
//   - RecentLimit: receipts shown on the dashboard.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	ResendCooldown time.Duration
	ShareCodeTTL   time.Duration
	RecentLimit    int
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = defaultDatabasePath()
	c.RequestTimeout = 15 * time.Second
	c.ResendCooldown = 30 * time.Second
	c.ShareCodeTTL = 15 * time.Minute
	c.RecentLimit = 6
	c.LogLevel = "warn"
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wekip.db"
	}
	return filepath.Join(dir, "wekip", "wekip.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any) and command-line flags. Later sources take
// precedence over earlier ones. args excludes the program name.
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
