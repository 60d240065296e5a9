package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password = "pw"

	assert.Equal(t,
		"host=localhost port=5432 dbname=ember user=postgres password=pw sslmode=prefer connect_timeout=10",
		cfg.DSN(),
	)

	cfg.URL = "postgres://u:p@db:5433/ember"
	assert.Equal(t, "postgres://u:p@db:5433/ember", cfg.DSN())
}

func TestConfig_PoolConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConns = 3
	cfg.ConnectTimeout = 2 * time.Second

	pc, err := cfg.PoolConfig()
	require.NoError(t, err)
	assert.Equal(t, int32(3), pc.MaxConns)
	assert.Equal(t, 2*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "ember", pc.ConnConfig.Database)
}

func TestConfig_PoolConfigInvalid(t *testing.T) {
	_, err := Config{URL: "postgres://%zz"}.PoolConfig()
	assert.Error(t, err)
}

func TestMigrations_Ordered(t *testing.T) {
	migs := Migrations()
	require.NotEmpty(t, migs)
	for i, m := range migs {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.UpSQL)
	}
}

func TestNewConnection_Unreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 1
	cfg.SSLMode = "disable"
	cfg.ConnectTimeout = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewConnection(ctx, cfg)
	assert.Error(t, err)
}
