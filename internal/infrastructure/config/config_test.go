package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"BRIDGE_APP_NAME":          os.Getenv("BRIDGE_APP_NAME"),
		"BRIDGE_APP_ENV":           os.Getenv("BRIDGE_APP_ENV"),
		"BRIDGE_APP_PORT":          os.Getenv("BRIDGE_APP_PORT"),
		"BRIDGE_DATABASE_HOST":     os.Getenv("BRIDGE_DATABASE_HOST"),
		"BRIDGE_DATABASE_PASSWORD": os.Getenv("BRIDGE_DATABASE_PASSWORD"),
		"BRIDGE_DATABASE_SSLMODE":  os.Getenv("BRIDGE_DATABASE_SSLMODE"),
		"BRIDGE_WEBHOOK_SECRET":    os.Getenv("BRIDGE_WEBHOOK_SECRET"),
		"BRIDGE_NINJA_BASE_URL":    os.Getenv("BRIDGE_NINJA_BASE_URL"),
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()
	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "ninjasync", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 30, cfg.Ninja.TimeoutSeconds)
		assert.Equal(t, 10, cfg.Ninja.PingTimeoutSeconds)
		assert.Equal(t, time.Hour, cfg.Scheduler.PullInterval)
		assert.Equal(t, 30, cfg.Scheduler.LogRetentionDays)
		assert.Equal(t, 30*time.Second, cfg.Sync.LockTTL)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_APP_NAME", "bridge-test")
		os.Setenv("BRIDGE_DATABASE_HOST", "db.internal")
		os.Setenv("BRIDGE_NINJA_BASE_URL", "https://ninja.example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "bridge-test", cfg.App.Name)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "https://ninja.example.com", cfg.Ninja.BaseURL)
	})

	t.Run("production requires webhook secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_APP_ENV", "production")
		os.Setenv("BRIDGE_DATABASE_PASSWORD", "secret")
		os.Setenv("BRIDGE_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "webhook.secret")
	})

	t.Run("production accepts complete config", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_APP_ENV", "production")
		os.Setenv("BRIDGE_DATABASE_PASSWORD", "secret")
		os.Setenv("BRIDGE_DATABASE_SSLMODE", "require")
		os.Setenv("BRIDGE_WEBHOOK_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("rejects non-http base url", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_NINJA_BASE_URL", "ninja.example.com")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "ninjasync",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestSyncConfigDirectives(t *testing.T) {
	cfg := SyncConfig{
		Customers: EntitySyncConfig{Enabled: true, Outbound: true, Inbound: true},
		Invoices:  EntitySyncConfig{Enabled: true, Outbound: true},
	}

	directives := cfg.Directives()
	assert.Len(t, directives, 5)
	assert.True(t, directives["Customer"].Inbound)
	assert.True(t, directives["Sales Invoice"].Outbound)
	assert.False(t, directives["Sales Invoice"].Inbound)
	assert.False(t, directives["Item"].Enabled)
}
