package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/wekip/internal/flagx"
	"github.com/dmitrijs2005/wekip/internal/timex"
)

// JsonConfig is the file form of Config. Durations accept strings such as
// "15m" or integer nanoseconds. Absent fields keep their current value.
type JsonConfig struct {
	Addr         *string         `json:"addr"`
	SecretKey    *string         `json:"secret_key"`
	TokenTTL     *timex.Duration `json:"token_ttl"`
	ShareCodeTTL *timex.Duration `json:"share_code_ttl"`
	FixedOTP     *string         `json:"fixed_otp"`
	LogLevel     *string         `json:"log_level"`
	DatabaseDSN  *string         `json:"database_dsn"`
}

// parseJSON loads the file named by -c/--config into cfg. Comments and
// trailing commas are allowed.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.Addr != nil {
		cfg.Addr = *c.Addr
	}
	if c.SecretKey != nil {
		cfg.SecretKey = *c.SecretKey
	}
	if c.TokenTTL != nil {
		cfg.TokenTTL = c.TokenTTL.Duration
	}
	if c.ShareCodeTTL != nil {
		cfg.ShareCodeTTL = c.ShareCodeTTL.Duration
	}
	if c.FixedOTP != nil {
		cfg.FixedOTP = *c.FixedOTP
	}
	if c.LogLevel != nil {
		cfg.LogLevel = *c.LogLevel
	}
	if c.DatabaseDSN != nil {
		cfg.DatabaseDSN = *c.DatabaseDSN
	}
	return nil
}
