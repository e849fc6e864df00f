package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
database:
  host: "db"
  port: 5432
  user: "u"
  password: "p"
  name: "flights"
  ssl_mode: "disable"
worker:
  delay_sweep_minutes: 10
booking:
  seat_lock_ttl_minutes: 2
`)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=flights sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 10, cfg.Worker.DelaySweepMinutes)
	assert.Equal(t, 2, cfg.Booking.SeatLockTTLMinutes)
}

func TestLoadConfig_DefaultsZeroIntervals(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
`)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 5, cfg.Worker.DelaySweepMinutes)
	assert.Equal(t, 1, cfg.Booking.SeatLockTTLMinutes)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
