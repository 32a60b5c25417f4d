// Package config loads the runtime configuration. Values come from
// ~/.techmarket/config.json with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DefaultListenAddr = ":8080"
	DefaultTokenTTL   = 24 * time.Hour

	// devJWTSecret is used only when no secret is configured. Fine for a
	// local database, unusable for anything shared.
	devJWTSecret = "techmarket-dev-secret"
)

// Config is the flat runtime configuration.
type Config struct {
	DBPath          string `json:"db_path,omitempty"`
	ListenAddr      string `json:"listen_addr,omitempty"`
	JWTSecret       string `json:"jwt_secret,omitempty"`
	TokenTTLMinutes int    `json:"token_ttl_minutes,omitempty"`
}

// TokenTTL returns the bearer token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.TokenTTLMinutes > 0 {
		return time.Duration(c.TokenTTLMinutes) * time.Minute
	}
	return DefaultTokenTTL
}

// Load reads the config file and applies environment overrides. A missing
// file is not an error: defaults apply.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr: DefaultListenAddr,
		JWTSecret:  devJWTSecret,
	}

	path, err := configPath()
	if err != nil {
		return nil, err
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(cfg)

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

// Save writes the config file.
func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TECHMARKET_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TECHMARKET_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("TECHMARKET_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TECHMARKET_TOKEN_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.TokenTTLMinutes = minutes
		}
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".techmarket", "config.json"), nil
}
