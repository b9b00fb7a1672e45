package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 12*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotEvery)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.GoogleCredFile)
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "45s")
	assert.Equal(t, 45*time.Second, getDuration("TEST_DUR", time.Minute))

	// Bare integers are seconds.
	t.Setenv("TEST_DUR", "90")
	assert.Equal(t, 90*time.Second, getDuration("TEST_DUR", time.Minute))

	t.Setenv("TEST_DUR", "garbage")
	assert.Equal(t, time.Minute, getDuration("TEST_DUR", time.Minute))

	t.Setenv("TEST_DUR", "")
	assert.Equal(t, time.Minute, getDuration("TEST_DUR", time.Minute))
}
