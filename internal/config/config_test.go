package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lzww0608/gid"
	"github.com/Lzww0608/gid/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9090"
  read_timeout: 2s

logging:
  level: debug
  format: console

store:
  driver: sqlite3
  dsn: ":memory:"

metrics:
  enabled: true

ids:
  default_kind: random
  default_format: hex
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sqlite3", cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Store.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Store.ConnMaxLifetime)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, config.KindRandom, cfg.IDs.DefaultKind)
	assert.Equal(t, gid.FormatHex, cfg.IDs.DefaultFormat)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Store.Enabled())
	assert.Equal(t, config.KindTime, cfg.IDs.DefaultKind)
	assert.Equal(t, gid.FormatBase36, cfg.IDs.DefaultFormat)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("GID_TEST_DSN", "file:registry.db")
	path := writeConfig(t, `
store:
  driver: sqlite3
  dsn: ${GID_TEST_DSN}
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file:registry.db", cfg.Store.DSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GID_SERVER_ADDR", ":7070")
	t.Setenv("GID_METRICS_ENABLED", "true")
	path := writeConfig(t, `
server:
  addr: ":9090"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"log level", "logging:\n  level: loud\n"},
		{"log format", "logging:\n  format: xml\n"},
		{"store driver", "store:\n  driver: postgres\n  dsn: x\n"},
		{"store dsn", "store:\n  driver: mysql\n"},
		{"kind", "ids:\n  default_kind: snowflake\n"},
		{"format", "ids:\n  default_format: base58\n"},
		{"yaml", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
