package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("TICKER", "")
	t.Setenv("IMPORT_TICK_INTERVAL", "")
	t.Setenv("IMPORT_TICK_STEP", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sample", cfg.DataSource)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, "local", cfg.Ticker)
	assert.Equal(t, 500*time.Millisecond, cfg.ImportTickInterval)
	assert.Equal(t, 20, cfg.ImportTickStep)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("TICKER", "asynq")
	t.Setenv("IMPORT_TICK_INTERVAL", "250ms")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("DATA_SOURCE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/commissions.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DataSource)
	assert.Equal(t, "/tmp/commissions.db", cfg.SQLitePath)

	assert.Equal(t, 250*time.Millisecond, cfg.ImportTickInterval)
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
}

func TestValidate(t *testing.T) {
	base := Config{
		DataSource:         "sample",
		SessionStore:       "memory",
		Ticker:             "local",
		ImportTickInterval: time.Second,
		ImportTickStep:     20,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown data source", func(c *Config) { c.DataSource = "csv" }},
		{"unknown session store", func(c *Config) { c.SessionStore = "etcd" }},
		{"unknown ticker", func(c *Config) { c.Ticker = "cron" }},
		{"asynq without redis store", func(c *Config) { c.Ticker = "asynq" }},
		{"zero interval", func(c *Config) { c.ImportTickInterval = 0 }},
		{"step too large", func(c *Config) { c.ImportTickStep = 101 }},
		{"zero step", func(c *Config) { c.ImportTickStep = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := Config{DBUsername: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBDatabase: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?parseTime=true&loc=Local", cfg.GetDSN())
}
