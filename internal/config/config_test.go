package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8081, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "earkms", cfg.MetricsNamespace)
				assert.Equal(t, 100, cfg.AliasPageSize)
				assert.Equal(t, 1000, cfg.KeyPageSize)
				assert.Equal(t, 20.0, cfg.ListRateLimitPerSec)
				assert.Equal(t, 5, cfg.ListRateLimitBurst)
				assert.Equal(t, 60*time.Minute, cfg.ReconcileInterval)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":            "mysql",
				"DB_CONNECTION_STRING": "user:password@tcp(localhost:3306)/testdb",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
			},
		},
		{
			name: "load custom list traversal configuration",
			envVars: map[string]string{
				"KMS_ALIAS_PAGE_SIZE":         "50",
				"KMS_KEY_PAGE_SIZE":           "500",
				"KMS_LIST_RATE_LIMIT_PER_SEC": "10.5",
				"KMS_LIST_RATE_LIMIT_BURST":   "2",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 50, cfg.AliasPageSize)
				assert.Equal(t, 500, cfg.KeyPageSize)
				assert.Equal(t, 10.5, cfg.ListRateLimitPerSec)
				assert.Equal(t, 2, cfg.ListRateLimitBurst)
			},
		},
		{
			name: "disable metrics",
			envVars: map[string]string{
				"METRICS_ENABLED": "false",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.MetricsEnabled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	t.Run("debug log level uses debug mode", func(t *testing.T) {
		cfg := &Config{LogLevel: "debug"}
		assert.Equal(t, "debug", cfg.GetGinMode())
	})

	t.Run("other log levels use release mode", func(t *testing.T) {
		for _, level := range []string{"info", "warn", "error", ""} {
			cfg := &Config{LogLevel: level}
			assert.Equal(t, "release", cfg.GetGinMode())
		}
	})
}
