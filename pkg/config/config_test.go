package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invex-api/pkg/config"
)

var keys = []string{
	"APP_ENV", "APP_NAME", "LOG_LEVEL", "DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER",
	"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_MAX_CONNS", "DB_AUTO_MIGRATE", "REDIS_ADDR", "REDIS_PASSWORD",
	"REDIS_DB", "IDEMPOTENCY_TTL_MINUTES", "JWT_SECRET", "JWT_EXPIRATION_MINUTES", "JWT_ISSUER",
	"HTTP_HOST", "HTTP_PORT", "AUTH_REQUIRED", "LOGIN_RATE_LIMIT", "SWAGGER_FILE",
}

// clearEnv deja vacías las variables conocidas; Viper ignora las vacías.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "invex-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "postgres://postgres:@localhost:5432/invex?sslmode=disable", cfg.DB.ConnectionString())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 1440, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, 720, cfg.JWT.Expiration)
	assert.Equal(t, "invex-api", cfg.JWT.Issuer)
	assert.False(t, cfg.HTTP.AuthRequired)
	assert.Equal(t, 10, cfg.HTTP.LoginRateLimit)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DB_PASSWORD", "p@ss/word")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%2Fword")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.AuthRequired)
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/x?sslmode=require")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@db:5432/x?sslmode=require", cfg.DB.ConnectionString())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"driver desconocido", map[string]string{"DB_DRIVER": "mysql"}},
		{"puerto fuera de rango", map[string]string{"HTTP_PORT": "70000"}},
		{"auth sin secreto", map[string]string{"AUTH_REQUIRED": "true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
