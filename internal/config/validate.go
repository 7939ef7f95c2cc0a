package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path: required")
	}

	// Sync validation
	if c.Sync.FetchTimeoutSeconds < 0 {
		errs = append(errs, fmt.Sprintf("sync.fetch_timeout_seconds: must not be negative, got %d", c.Sync.FetchTimeoutSeconds))
	}
	if c.Sync.ReconcileIntervalSeconds < 0 {
		errs = append(errs, fmt.Sprintf("sync.reconcile_interval_seconds: must not be negative, got %d", c.Sync.ReconcileIntervalSeconds))
	}
	if c.Sync.SearchQueueSize < 0 {
		errs = append(errs, fmt.Sprintf("sync.search_queue_size: must not be negative, got %d", c.Sync.SearchQueueSize))
	}

	// Notifications validation
	if c.Notifications.PollIntervalSeconds < 0 {
		errs = append(errs, fmt.Sprintf("notifications.poll_interval_seconds: must not be negative, got %d", c.Notifications.PollIntervalSeconds))
	}

	return errs
}
