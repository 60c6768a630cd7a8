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
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "log", cfg.Messaging.Driver)
	assert.Equal(t, time.Minute, cfg.Worker.Interval)
	assert.Equal(t, 5, cfg.Booking.MaxCommitRetries)
	assert.Equal(t, 5*time.Minute, cfg.Redis.QuoteTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
database:
  host: db.internal
  port: 6543
messaging:
  driver: kafka
  kafka:
    brokers: ["k1:9092", "k2:9092"]
worker:
  interval: 30s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("SITTERBOOK_DATABASE_HOST", "override.internal")
	t.Setenv("SITTERBOOK_BOOKING_MAX_COMMIT_RETRIES", "9")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "kafka", cfg.Messaging.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Messaging.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Worker.Interval)
	assert.Equal(t, 9, cfg.Booking.MaxCommitRetries)
	assert.Contains(t, cfg.Database.DSN(), "host=override.internal port=6543")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("SITTERBOOK_MESSAGING_DRIVER", "carrier-pigeon")

	_, err := Load(t.TempDir())

	assert.ErrorContains(t, err, "messaging.driver")
}
