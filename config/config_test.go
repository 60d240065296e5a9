package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolandbiro/Ember/pkg/logger"
)

var fallbackKeys = []string{
	"ENV", "LOG_LEVEL", "LOG_FORMAT", "TIMEZONE", "STORAGE_DRIVER", "SQLITE_PATH",
	"KEY_PREFIX", "REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"DATABASE_URL", "CONNECT_TIMEOUT", "CATALOG_PATH", "SEED", "FEATURES",
}

// clearEmberEnv unsets every key Load reads. t.Setenv restores them afterwards.
func clearEmberEnv(t *testing.T) {
	t.Helper()
	unset := func(key string) {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "EMBER_") {
			unset(key)
		}
	}
	for _, key := range fallbackKeys {
		unset(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEmberEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "ember:", cfg.KeyPrefix)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Zero(t, cfg.Seed)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_PrefixedKeys(t *testing.T) {
	clearEmberEnv(t)
	t.Setenv("EMBER_STORAGE_DRIVER", "memory")
	t.Setenv("EMBER_SEED", "42")
	t.Setenv("EMBER_CONNECT_TIMEOUT", "250ms")
	t.Setenv("EMBER_CATALOG_PATH", "/tmp/tasks.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.ConnectTimeout)
	assert.Equal(t, "/tmp/tasks.yaml", cfg.CatalogPath)
}

func TestLoad_UnprefixedFallback(t *testing.T) {
	clearEmberEnv(t)
	t.Setenv("DATABASE_URL", "postgres://ember@localhost/ember")
	t.Setenv("EMBER_STORAGE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://ember@localhost/ember", cfg.PostgresURL)
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEmberEnv(t)
	t.Setenv("EMBER_REDIS_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:    EnvDevelopment,
			LogLevel:       "info",
			Timezone:       "UTC",
			StorageDriver:  "sqlite",
			RedisHost:      "localhost",
			RedisPort:      6379,
			ConnectTimeout: time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad env", func(c *Config) { c.Environment = "staging" }, "ENV"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"bad driver", func(c *Config) { c.StorageDriver = "etcd" }, "STORAGE_DRIVER"},
		{"postgres without url", func(c *Config) { c.StorageDriver = "postgres" }, "DATABASE_URL"},
		{"bad port", func(c *Config) { c.RedisPort = 70000 }, "REDIS_PORT"},
		{"zero timeout", func(c *Config) { c.ConnectTimeout = 0 }, "CONNECT_TIMEOUT"},
		{"bad feature", func(c *Config) { c.Features = "ui.color=maybe" }, "ui.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoggerOptions(t *testing.T) {
	cfg := &Config{Environment: EnvDevelopment, LogLevel: "debug"}
	opts := cfg.LoggerOptions()
	assert.Equal(t, logger.LevelDebug, opts.Level)
	assert.Equal(t, logger.FormatConsole, opts.Format)

	cfg = &Config{Environment: EnvProduction, LogLevel: "error"}
	assert.Equal(t, logger.FormatJSON, cfg.LoggerOptions().Format)

	cfg.LogFormat = "console"
	assert.Equal(t, logger.FormatConsole, cfg.LoggerOptions().Format)
}

func TestFeatureFlags(t *testing.T) {
	ff, err := NewFeatureFlags("")
	require.NoError(t, err)
	assert.True(t, ff.IsEnabled(FeatureCelebrations))
	assert.True(t, ff.IsEnabled(FeatureColor))
	assert.False(t, ff.IsEnabled("ui.unknown"))

	ff, err = NewFeatureFlags("ui.color=false, -daily.bonus")
	require.NoError(t, err)
	assert.False(t, ff.IsEnabled(FeatureColor))
	assert.False(t, ff.IsEnabled(FeatureBonusTasks))
	assert.True(t, ff.IsEnabled(FeatureCelebrations))

	ff.SetEnabled(FeatureColor, true)
	assert.True(t, ff.IsEnabled(FeatureColor))
	assert.Len(t, ff.All(), 3)

	_, err = NewFeatureFlags("ui.sparkles")
	assert.Error(t, err)
}
