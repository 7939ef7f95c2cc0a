// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Sync          SyncConfig          `toml:"sync"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
	APIKey   string `toml:"api_key"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type SyncConfig struct {
	FetchTimeoutSeconds      int `toml:"fetch_timeout_seconds"`
	ReconcileIntervalSeconds int `toml:"reconcile_interval_seconds"`
	SearchQueueSize          int `toml:"search_queue_size"`
}

// FetchTimeout is the per-call bound on external list fetches.
func (c SyncConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ReconcileInterval is how often the scheduler re-reads the list configs.
func (c SyncConfig) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalSeconds) * time.Second
}

type NotificationsConfig struct {
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
}

// PollInterval is the notification poll cadence.
func (c NotificationsConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Load reads, substitutes, parses, and validates the configuration file.
// Missing environment variables and validation errors are aggregated into
// a single *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	errs := cfg.Validate()
	if len(missing) > 0 || len(errs) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the config, skipping validation
// and missing-variable checks. Used by tooling that inspects or rewrites
// configs that are not yet complete.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, missing, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/curarr.db"
	}
	if cfg.Sync.FetchTimeoutSeconds == 0 {
		cfg.Sync.FetchTimeoutSeconds = 30
	}
	if cfg.Sync.ReconcileIntervalSeconds == 0 {
		cfg.Sync.ReconcileIntervalSeconds = 60
	}
	if cfg.Sync.SearchQueueSize == 0 {
		cfg.Sync.SearchQueueSize = 64
	}
	if cfg.Notifications.PollIntervalSeconds == 0 {
		cfg.Notifications.PollIntervalSeconds = 5
	}
}

// substituteEnvVars replaces ${VAR}, ${VAR:-default}, and ${VAR:?message}
// with environment variable values. Returns the substituted content and a
// list of variables that were missing (plain form) or missing-and-required
// (:? form, reported as "NAME: message").
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)((:-|:\?)([^}]*))?\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, op, arg := groups[1], groups[3], groups[4]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			// Empty counts as unset, same as shell :- semantics.
			if ok && value != "" {
				return value
			}
			return arg
		case ":?":
			if ok && value != "" {
				return value
			}
			missing = append(missing, name+": "+strings.TrimSpace(arg))
			return match
		default:
			if ok {
				return value
			}
			missing = append(missing, name)
			return match
		}
	})
	return result, missing
}
