package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/arko-chat/cefview/bridge"
)

type Config struct {
	BridgeName string   `json:"bridge_name"`
	LogLevel   string   `json:"log_level"`
	LogFormat  string   `json:"log_format"`
	Events     []string `json:"events"`
}

func Default() *Config {
	return &Config{
		BridgeName: bridge.DefaultName,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load reads the JSON config at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if strings.TrimSpace(cfg.BridgeName) == "" {
		return nil, fmt.Errorf("config: bridge_name is empty")
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CEFVIEW_BRIDGE_NAME"); v != "" {
		cfg.BridgeName = v
	}
	if v := os.Getenv("CEFVIEW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CEFVIEW_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CEFVIEW_EVENTS"); v != "" {
		cfg.Events = cfg.Events[:0]
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				cfg.Events = append(cfg.Events, e)
			}
		}
	}
}
