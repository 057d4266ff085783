package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyEnvPath points loadEnv at a directory without .env files so the
// developer's local environment never leaks into tests
func emptyEnvPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config")
}

func TestLoadAPIConfig_Defaults(t *testing.T) {
	t.Setenv("ADRIFT_DATABASE_HOST", "localhost")
	t.Setenv("ADRIFT_DATABASE_DBNAME", "adrift")

	cfg, err := LoadAPIConfig("", emptyEnvPath(t))
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, "BOTTLE_EVENTS", cfg.NATS.StreamName)
	assert.Equal(t, 10, cfg.NATS.MaxReconnects)
	assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
	assert.Equal(t, "adrift-api", cfg.NATS.ConnectionName)
	assert.False(t, cfg.Debug)
}

func TestLoadAPIConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ADRIFT_DEBUG", "true")
	t.Setenv("ADRIFT_DATABASE_HOST", "db.internal")
	t.Setenv("ADRIFT_DATABASE_PORT", "5433")
	t.Setenv("ADRIFT_DATABASE_USER", "adrift")
	t.Setenv("ADRIFT_DATABASE_PASSWORD", "secret")
	t.Setenv("ADRIFT_DATABASE_DBNAME", "bottles")
	t.Setenv("ADRIFT_SERVER_PORT", "9090")
	t.Setenv("ADRIFT_NATS_URL", "nats://mq:4222")

	cfg, err := LoadAPIConfig("", emptyEnvPath(t))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "nats://mq:4222", cfg.NATS.URL)
}

func TestLoadReconcilerConfig_Defaults(t *testing.T) {
	t.Setenv("ADRIFT_DATABASE_HOST", "localhost")
	t.Setenv("ADRIFT_DATABASE_DBNAME", "adrift")

	cfg, err := LoadReconcilerConfig("", emptyEnvPath(t))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Reconciler.Interval)
	assert.Equal(t, 10, cfg.Reconciler.WorkerPoolSize)
	assert.False(t, cfg.Reconciler.Repair)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
}

func TestLoadReconcilerConfig_RequiredFields(t *testing.T) {
	t.Setenv("ADRIFT_DATABASE_HOST", "")
	t.Setenv("ADRIFT_DATABASE_DBNAME", "")

	_, err := LoadReconcilerConfig("", emptyEnvPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host is required")

	t.Setenv("ADRIFT_DATABASE_HOST", "localhost")
	_, err = LoadReconcilerConfig("", emptyEnvPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dbname is required")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "adrift",
		Password: "secret",
		DBName:   "bottles",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=adrift password=secret dbname=bottles sslmode=disable",
		cfg.DSN(),
	)
}
