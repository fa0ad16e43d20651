// Package config loads dashboard settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"api"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Listen  string        `yaml:"listen"`
		Refresh time.Duration `yaml:"refresh"`
	} `yaml:"server"`
	Snapshot struct {
		Cron string `yaml:"cron"`
	} `yaml:"snapshot"`
	Log struct {
		Level string `yaml:"level"`
		Dev   bool   `yaml:"dev"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, loads a .env file next to the working
// directory if present, then applies environment variable overrides and
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("NETWORTH_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("NETWORTH_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("NETWORTH_DB"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("NETWORTH_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("NETWORTH_SNAPSHOT_CRON"); v != "" {
		cfg.Snapshot.Cron = v
	}
	if v := os.Getenv("NETWORTH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:3000"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "networth.db"
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8833"
	}
	if cfg.Server.Refresh == 0 {
		cfg.Server.Refresh = time.Minute
	}
	if cfg.Snapshot.Cron == "" {
		cfg.Snapshot.Cron = "0 0 22 * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Token == "" {
		return fmt.Errorf("api.token is required (set NETWORTH_TOKEN)")
	}
	if c.Server.Refresh < time.Second {
		return fmt.Errorf("server.refresh must be at least 1s")
	}
	return nil
}
