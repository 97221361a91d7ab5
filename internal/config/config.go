package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings for the TUI and subcommands.
type Config struct {
	DBPath   string
	Latency  time.Duration // simulated round trip before a form action runs
	ToastTTL time.Duration
	LogPath  string // "" disables logging, "stderr" logs to the terminal
	LogLevel slog.Level
	User     string // default account email for subcommands
}

// DefaultConfig returns the built-in defaults. The database lives under
// the user's home directory.
func DefaultConfig() Config {
	dbPath := "fleksjobb.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".fleksjobb", "fleksjobb.db")
	}
	return Config{
		DBPath:   dbPath,
		Latency:  1500 * time.Millisecond,
		ToastTTL: 3 * time.Second,
		LogLevel: slog.LevelInfo,
	}
}

// Load reads configuration from the environment, after merging any of
// the given .env files. Variables already set in the environment win
// over values from files. Missing files are skipped.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return LoadConfig(), nil
}

// LoadConfig reads FLEKSJOBB_* variables, falling back to defaults for
// unset or malformed values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FLEKSJOBB_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FLEKSJOBB_LATENCY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Latency = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("FLEKSJOBB_TOAST_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ToastTTL = time.Duration(n) * time.Millisecond
		}
	}
	cfg.LogPath = os.Getenv("FLEKSJOBB_LOG")
	if v := os.Getenv("FLEKSJOBB_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(v))); err == nil {
			cfg.LogLevel = lvl
		}
	}
	cfg.User = os.Getenv("FLEKSJOBB_USER")

	return cfg
}

// OpenLogger builds the process logger. The TUI owns the terminal, so
// logs only go to stderr when asked for explicitly. The returned closer
// must be called on exit.
func (c Config) OpenLogger() (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	switch c.LogPath {
	case "":
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	case "stderr":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
