// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

// Package config loads Blockbuster's configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"net"
	"strconv"
	"time"
)

// Source kinds accepted by DatasetConfig.Source.
const (
	SourceCSV    = "csv"
	SourceDuckDB = "duckdb"
)

// Config is the root configuration.
type Config struct {
	Dataset  DatasetConfig  `koanf:"dataset"`
	Reload   ReloadConfig   `koanf:"reload"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatasetConfig describes where the entity tables come from.
type DatasetConfig struct {
	// Dir holds one tbl<Entity>.csv file per entity.
	Dir string `koanf:"dir"`

	// Source selects the reader: csv or duckdb.
	Source string `koanf:"source"`

	// DuckDBPath, when set with Source=duckdb, points at a database file
	// containing tbl<Entity> tables. Empty means DuckDB reads the CSVs in Dir.
	DuckDBPath string `koanf:"duckdb_path"`

	// Delimiter is the CSV column separator.
	Delimiter string `koanf:"delimiter"`

	// DateLayouts are tried in order when parsing release dates and birth
	// dates. Empty uses the loader's built-in layouts.
	DateLayouts []string `koanf:"date_layouts"`
}

// ReloadConfig controls reload-and-swap of the dataset snapshot.
type ReloadConfig struct {
	// Watch reloads when files in Dataset.Dir change.
	Watch bool `koanf:"watch"`

	// Debounce collapses bursts of file events into one reload.
	Debounce time.Duration `koanf:"debounce"`

	// Interval reloads on a fixed schedule. Zero disables it.
	Interval time.Duration `koanf:"interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// APIConfig holds query defaults.
type APIConfig struct {
	// DefaultLimit is the number of ranked rows returned when the request
	// does not say. Dashboards show the top ten.
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CacheConfig controls the query result cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Default returns the built-in configuration before any file or
// environment overrides.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Dir:         "data",
			Source:      SourceCSV,
			Delimiter:   ",",
		},
		Reload: ReloadConfig{
			Watch:    false,
			Debounce: 500 * time.Millisecond,
			Interval: 0,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8050,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			DefaultLimit: 10,
			MaxLimit:     500,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
