package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 20, cfg.Leave.DefaultBalance)
	assert.Equal(t, 0, cfg.Leave.BalanceCap)
	assert.Equal(t, 500, cfg.Leave.ReasonMaxLength)
	assert.False(t, cfg.Leave.CancelRevertsToPending)
	assert.Empty(t, cfg.Storage.SeedEmployees)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LEAVE_BALANCE_CAP", "25")
	t.Setenv("LEAVE_CANCEL_REVERTS_TO_PENDING", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MEMORY_SEED_EMPLOYEES", "ana@example.com,budi@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())
	assert.Equal(t, 25, cfg.Leave.BalanceCap)
	assert.True(t, cfg.Leave.CancelRevertsToPending)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, []string{"ana@example.com", "budi@example.com"}, cfg.Storage.SeedEmployees)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"STORAGE_DRIVER": "memory"}},
		{"postgres without password", map[string]string{"JWT_SECRET": "s"}},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "redis"}},
		{"bad timezone", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "memory", "APP_TIMEZONE": "Mars/Olympus"}},
		{"bad expiration", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "memory", "JWT_ACCESS_EXPIRATION": "soon"}},
		{"negative cap", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "memory", "LEAVE_BALANCE_CAP": "-1"}},
		{"non numeric port", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "memory", "APP_PORT": "eighty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("DB_PASSWORD", "")
			t.Setenv("STORAGE_DRIVER", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL_EscapesCredentials(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss:word", Name: "hris", SSLMode: "disable",
	}}

	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/hris?sslmode=disable", cfg.DatabaseURL())
}
