package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/nutrilyzer/internal/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", c.HTTP.Addr)
	assert.Equal(t, "http://localhost:5173", c.HTTP.CORSOrigin)
	assert.Equal(t, 720*time.Hour, c.Auth.TokenTTL)
	assert.Equal(t, 10, c.Auth.BcryptCost)
	assert.True(t, c.RateLimit.Enabled)
	assert.Equal(t, 15*time.Minute, c.RateLimit.Window)
	assert.Equal(t, 100, c.RateLimit.Max)
	assert.Equal(t, logger.LevelInfo, c.Logger.Level)
	assert.Empty(t, c.Redis.Addr)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=nutrilyzer sslmode=disable", c.DB.DSN())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, logger.LevelDebug, c.Logger.Level)
	assert.Equal(t, time.Minute, c.RateLimit.Window)
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
}

func TestValidateReportsEverything(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BCRYPT_COST", "2")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "BCRYPT_COST")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
