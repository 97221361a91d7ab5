package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1500*time.Millisecond, cfg.Latency)
	assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, filepath.IsAbs(cfg.DBPath) || cfg.DBPath == "fleksjobb.db")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("FLEKSJOBB_DB", "/tmp/test.db")
	t.Setenv("FLEKSJOBB_LATENCY_MS", "0")
	t.Setenv("FLEKSJOBB_TOAST_MS", "500")
	t.Setenv("FLEKSJOBB_LOG", "stderr")
	t.Setenv("FLEKSJOBB_LOG_LEVEL", "debug")
	t.Setenv("FLEKSJOBB_USER", "kari@example.no")

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Zero(t, cfg.Latency)
	assert.Equal(t, 500*time.Millisecond, cfg.ToastTTL)
	assert.Equal(t, "stderr", cfg.LogPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "kari@example.no", cfg.User)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("FLEKSJOBB_LATENCY_MS", "soon")
	t.Setenv("FLEKSJOBB_TOAST_MS", "-5")
	t.Setenv("FLEKSJOBB_LOG_LEVEL", "chatty")

	cfg := LoadConfig()

	assert.Equal(t, 1500*time.Millisecond, cfg.Latency)
	assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FLEKSJOBB_TOAST_MS=1200\nFLEKSJOBB_USER=file@example.no\n"), 0o644))

	// Environment wins over the file.
	t.Setenv("FLEKSJOBB_USER", "env@example.no")
	// Register cleanup, then unset so the file value applies.
	t.Setenv("FLEKSJOBB_TOAST_MS", "")
	require.NoError(t, os.Unsetenv("FLEKSJOBB_TOAST_MS"))

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "env@example.no", cfg.User)
	assert.Equal(t, 1200*time.Millisecond, cfg.ToastTTL)
}

func TestOpenLogger_File(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogPath = filepath.Join(t.TempDir(), "logs", "fleksjobb.log")

	logger, closer, err := cfg.OpenLogger()
	require.NoError(t, err)
	logger.Info("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestOpenLogger_DisabledByDefault(t *testing.T) {
	logger, closer, err := DefaultConfig().OpenLogger()
	require.NoError(t, err)
	defer closer.Close()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
