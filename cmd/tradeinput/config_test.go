package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tradeinput.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
address = "trade.example.net:30000"
pending_timeout = "90s"
metrics_address = "127.0.0.1:9108"
log_level = "debug"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "trade.example.net:30000", cfg.Address)
	require.Equal(t, 90*time.Second, cfg.PendingTimeout)
	require.Equal(t, "127.0.0.1:9108", cfg.MetricsAddress)

	level, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `pending_timeout = "5m"`))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Address)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `adress = "typo"`))
	require.ErrorContains(t, err, "unknown keys: adress")
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty address", mutate: func(c *Config) { c.Address = " " }, wantErr: "address"},
		{name: "negative timeout", mutate: func(c *Config) { c.PendingTimeout = -time.Second }, wantErr: "pending_timeout"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			require.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
