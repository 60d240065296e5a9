// Package config loads Ember configuration from the environment.
//
// Every key is read as EMBER_<KEY> and falls back to the bare <KEY>, so
// EMBER_LOG_LEVEL and LOG_LEVEL both work. Defaults live in the struct tags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/rolandbiro/Ember/pkg/logger"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// Prefix is the environment prefix for all keys.
const Prefix = "ember"

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTest        Environment = "test"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// General
	Environment Environment `envconfig:"ENV" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat   string      `envconfig:"LOG_FORMAT"` // json or console; empty picks by environment
	Timezone    string      `envconfig:"TIMEZONE" default:"Local"`

	// Storage
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"sqlite"` // memory, sqlite, redis, postgres
	SQLitePath    string `envconfig:"SQLITE_PATH"`                      // empty means ~/.ember.db
	KeyPrefix     string `envconfig:"KEY_PREFIX" default:"ember:"`

	RedisURL      string `envconfig:"REDIS_URL"`
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	PostgresURL string `envconfig:"DATABASE_URL"`

	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"5s"`

	// Catalog
	CatalogPath string `envconfig:"CATALOG_PATH"` // empty means the embedded catalog

	// Seed fixes the daily selection order; zero seeds from the clock.
	Seed int64 `envconfig:"SEED" default:"0"`

	// Features is a comma-separated list of feature overrides, e.g. "ui.color=false".
	Features string `envconfig:"FEATURES"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Environment {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		errs = append(errs, fmt.Sprintf("ENV must be one of development, test, production, got %q", c.Environment))
	}

	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q is not a known level", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "", string(logger.FormatJSON), string(logger.FormatConsole):
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}

	if _, err := timeutil.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("TIMEZONE %q: %v", c.Timezone, err))
	}

	switch strings.ToLower(c.StorageDriver) {
	case "memory", "sqlite", "":
	case "redis":
		if c.RedisURL == "" && c.RedisHost == "" {
			errs = append(errs, "REDIS_URL or REDIS_HOST is required for the redis driver")
		}
	case "postgres":
		if c.PostgresURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORAGE_DRIVER %q is not supported", c.StorageDriver))
	}

	if c.RedisPort < 1 || c.RedisPort > 65535 {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be between 1 and 65535, got %d", c.RedisPort))
	}
	if c.RedisDB < 0 {
		errs = append(errs, "REDIS_DB must not be negative")
	}
	if c.ConnectTimeout <= 0 {
		errs = append(errs, "CONNECT_TIMEOUT must be positive")
	}
	if _, err := ParseFeatureOverrides(c.Features); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Location resolves Timezone. Validate guarantees it succeeds.
func (c *Config) Location() *time.Location {
	loc, err := timeutil.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoggerOptions derives logger options. Console output is the default in
// development, JSON elsewhere.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.DefaultOptions()
	if level, ok := logger.ParseLevel(c.LogLevel); ok {
		opts.Level = level
	}

	switch strings.ToLower(c.LogFormat) {
	case string(logger.FormatJSON):
		opts.Format = logger.FormatJSON
	case string(logger.FormatConsole):
		opts.Format = logger.FormatConsole
	default:
		if c.IsDevelopment() {
			opts.Format = logger.FormatConsole
		}
	}
	return opts
}
