package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arbiterhq/arbiter/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.toml"), []byte(content), 0o644))
	t.Chdir(dir)
}

func TestLoadConfig(t *testing.T) {
	writeConfig(t, `
version = 1

[debug]
log_level = "debug"
max_logs_to_keep = 5

[postgresql]
host = "localhost"
port = 5432
user = "arbiter"
db_name = "arbiter"

[redis]
host = "localhost"
port = 6379

[api]
host = "0.0.0.0"
port = 8080
request_timeout = 5000
max_page_size = 100
requests_per_minute = 600
`)

	cfg, dir, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ".", dir)
	assert.Equal(t, "debug", cfg.Debug.LogLevel)
	assert.Equal(t, 5432, cfg.PostgreSQL.Port)
	assert.Equal(t, "arbiter", cfg.PostgreSQL.DBName)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 5000, cfg.API.RequestTimeout)
	assert.Equal(t, 100, cfg.API.MaxPageSize)
	assert.Equal(t, 600, cfg.API.RequestsPerMinute)
}

func TestLoadConfigMissingVersion(t *testing.T) {
	writeConfig(t, `
[api]
port = 8080
`)

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigVersionMissing)
}

func TestLoadConfigVersionMismatch(t *testing.T) {
	writeConfig(t, `version = 99`)

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigVersionMismatch)
}

func TestLoadConfigNotFound(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}
