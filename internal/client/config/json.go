package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/wekip/internal/flagx"
	"github.com/dmitrijs2005/wekip/internal/timex"
)

// JSONConfig is a DTO used exclusively for file unmarshalling. Absent fields
// keep their current value.
type JSONConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DatabasePath   *string         `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ResendCooldown *timex.Duration `json:"resend_cooldown"`
	ShareCodeTTL   *timex.Duration `json:"share_code_ttl"`
	RecentLimit    *int            `json:"recent_limit"`
	LogLevel       *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/--config. Without the flag
// nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc JSONConfig) apply(cfg *Config) {
	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ResendCooldown != nil {
		cfg.ResendCooldown = jc.ResendCooldown.Duration
	}
	if jc.ShareCodeTTL != nil {
		cfg.ShareCodeTTL = jc.ShareCodeTTL.Duration
	}
	if jc.RecentLimit != nil {
		cfg.RecentLimit = *jc.RecentLimit
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
