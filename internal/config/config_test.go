package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 30*time.Minute, cfg.DBMaxConnIdleTime)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, "./content", cfg.ContentDir)
	assert.Empty(t, cfg.NatsURL)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("NATS_URL", "nats://127.0.0.1:4222")
	t.Setenv("OWNER_NAME", "Ana")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NatsURL)
	assert.Equal(t, "Ana", cfg.OwnerName)
	assert.Equal(t, 90*time.Second, cfg.DBMaxConnIdleTime)
}

func TestLoad_FromEnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set.
	t.Setenv("CONTENT_DIR", "")
	os.Unsetenv("CONTENT_DIR")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONTENT_DIR=/srv/content\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/content", cfg.ContentDir)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
