package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "dev-secret"
database:
  dbname: trading
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "trading", cfg.Database.DBName)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Second, cfg.Simulator.Interval)
	assert.Equal(t, 0.005, cfg.Simulator.Volatility)
	assert.Equal(t, 50, cfg.Simulator.HistorySize)
	assert.Equal(t, 100000.0, cfg.Trading.InitialBalance)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "dev-secret"
simulator:
  interval: 2s
`)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SIMULATOR_INTERVAL", "750ms")
	t.Setenv("INITIAL_BALANCE", "5000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.Simulator.Interval)
	assert.Equal(t, 5000.0, cfg.Trading.InitialBalance)
}

func TestValidateRejectsShortSecretInRelease(t *testing.T) {
	cfg := Default()
	cfg.Server.Mode = "release"
	cfg.JWT.Secret = "short"

	assert.ErrorContains(t, cfg.Validate(), "at least 32 characters")

	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveInterval(t *testing.T) {
	cfg := Default()
	cfg.JWT.Secret = "dev-secret"
	cfg.Simulator.Interval = 0

	assert.ErrorContains(t, cfg.Validate(), "simulator.interval")
}

func TestDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Password = "pw"

	assert.Contains(t, cfg.Database.DSN(), "dbname=stocktrade")
	assert.Contains(t, cfg.Database.DSN(), "password=pw")
}
