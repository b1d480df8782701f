package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, "task_manager", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"ENV":                "production",
		"STORAGE_DRIVER":     "postgres",
		"POSTGRES_DSN":       "postgres://localhost/tasks",
		"REDIS_ADDR":         "localhost:6379",
		"RATE_LIMIT_MAX":     "5",
		"RATE_LIMIT_WINDOW":  "30s",
		"RATE_LIMIT_ENABLED": "false",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.RateLimit.Max)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadFrom_InvalidStorage(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":   {"JWT_SECRET": "s", "STORAGE_DRIVER": "sqlite"},
		"postgres w/o dsn": {"JWT_SECRET": "s", "STORAGE_DRIVER": "postgres"},
		"zero limit":       {"JWT_SECRET": "s", "RATE_LIMIT_MAX": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
