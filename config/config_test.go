package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, "admin@oakandvale.com", cfg.Auth.AdminEmail)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, int64(1000), cfg.Booking.Fee)
	assert.Equal(t, time.Hour, cfg.Booking.MaintenanceInterval)
	assert.Equal(t, 3, cfg.Booking.NotifyRetries)
	assert.Equal(t, 2*time.Second, cfg.Booking.NotifyRetryDelay)
	assert.True(t, cfg.Database.SeedCatalog)
	assert.Empty(t, cfg.Telegram.BotToken)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BOOKING_FEE", "2500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://oakandvale.co.ke,https://admin.oakandvale.co.ke")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(2500), cfg.Booking.Fee)
	assert.Equal(t, []string{"https://oakandvale.co.ke", "https://admin.oakandvale.co.ke"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TELEGRAM_CHAT_ID=-100200300\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("TELEGRAM_CHAT_ID") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "-100200300", cfg.Telegram.ChatID)
}

func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("BOOKING_FEE", "a lot")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
