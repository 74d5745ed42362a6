// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package config

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
	minReloadInterval    = time.Minute
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks the configuration before anything is started.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateReload(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled")
	}
	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Dir == "" {
			return fmt.Errorf("DATASET_DIR is required for the csv source")
		}
	case SourceDuckDB:
		if c.Dataset.Dir == "" && c.Dataset.DuckDBPath == "" {
			return fmt.Errorf("DATASET_DIR or DATASET_DUCKDB_PATH is required for the duckdb source")
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: csv, duckdb (got %q)", c.Dataset.Source)
	}

	if utf8.RuneCountInString(c.Dataset.Delimiter) != 1 {
		return fmt.Errorf("DATASET_DELIMITER must be a single character (got %q)", c.Dataset.Delimiter)
	}
	for _, layout := range c.Dataset.DateLayouts {
		if err := validateDateLayout(layout); err != nil {
			return err
		}
	}
	return nil
}

// validateDateLayout rejects layouts that cannot round-trip a calendar date.
func validateDateLayout(layout string) error {
	ref := time.Date(1997, time.December, 19, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, ref.Format(layout))
	if err != nil {
		return fmt.Errorf("date layout %q is invalid: %w", layout, err)
	}
	y, m, d := parsed.Date()
	if y != 1997 || m != time.December || d != 19 {
		return fmt.Errorf("date layout %q does not carry a full calendar date", layout)
	}
	return nil
}

func (c *Config) validateReload() error {
	if c.Reload.Watch && c.Reload.Debounce <= 0 {
		return fmt.Errorf("RELOAD_DEBOUNCE must be positive when RELOAD_WATCH=true")
	}
	if c.Reload.Interval < 0 {
		return fmt.Errorf("RELOAD_INTERVAL must not be negative")
	}
	if c.Reload.Interval > 0 && c.Reload.Interval < minReloadInterval {
		return fmt.Errorf("RELOAD_INTERVAL must be at least %v", minReloadInterval)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultLimit < 1 {
		return fmt.Errorf("API_DEFAULT_LIMIT must be at least 1")
	}
	if c.API.MaxLimit < c.API.DefaultLimit {
		return fmt.Errorf("API_MAX_LIMIT (%d) must not be below API_DEFAULT_LIMIT (%d)", c.API.MaxLimit, c.API.DefaultLimit)
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
