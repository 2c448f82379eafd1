package db

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusauth/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("DB_DRIVER", config.DriverPostgres)
	cfg, err := config.LoadConfig(t.TempDir() + "/none.yaml")
	require.NoError(t, err)
	return cfg
}

func TestPoolConfigAppliesDatabaseSection(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.MaxOpenConns = 8
	cfg.Database.MaxIdleConns = 2
	cfg.Database.ConnMaxLifetime = "30m"

	poolConfig, err := PoolConfig(cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, int32(8), poolConfig.MaxConns)
	assert.Equal(t, int32(2), poolConfig.MinConns)
	assert.Equal(t, 30*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, "campusauth", poolConfig.ConnConfig.Database)
	assert.NotNil(t, poolConfig.BeforeAcquire)
}

func TestPoolConfigClampsIdleToMax(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.MaxOpenConns = 3
	cfg.Database.MaxIdleConns = 10
	cfg.Database.ConnMaxLifetime = "bogus"

	poolConfig, err := PoolConfig(cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, int32(3), poolConfig.MinConns)
	assert.Equal(t, time.Hour, poolConfig.MaxConnLifetime)
}
