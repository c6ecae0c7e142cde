// Package config loads process settings: built-in defaults, then an
// optional TOML file, then MENUS_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all process configuration.
type Config struct {
	DB      DBConfig      `toml:"db"`
	HTTP    HTTPConfig    `toml:"http"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

type DBConfig struct {
	Path          string `toml:"path"`
	BusyTimeoutMs int    `toml:"busy_timeout_ms"`
}

// BusyTimeout is how long a writer waits for the database lock.
func (c DBConfig) BusyTimeout() time.Duration {
	return time.Duration(c.BusyTimeoutMs) * time.Millisecond
}

type HTTPConfig struct {
	Addr              string `toml:"addr"`
	ShutdownTimeoutMs int    `toml:"shutdown_timeout_ms"`
}

func (c HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the settings used when nothing overrides them.
// The database lives under ~/.menus unless the home directory is unknown.
func DefaultConfig() Config {
	dbPath := "menus.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".menus", "menus.db")
	}
	return Config{
		DB:      DBConfig{Path: dbPath, BusyTimeoutMs: 5000},
		HTTP:    HTTPConfig{Addr: ":8080", ShutdownTimeoutMs: 10000},
		Log:     LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// ResolvePath picks the config file: an explicit flag value wins over
// MENUS_CONFIG. An empty result means no file.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("MENUS_CONFIG")
}

// Load builds the configuration. path may be empty.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MENUS_DB"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("MENUS_DB_BUSY_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MENUS_DB_BUSY_TIMEOUT_MS: %w", err)
		}
		cfg.DB.BusyTimeoutMs = n
	}
	if v := os.Getenv("MENUS_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("MENUS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MENUS_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MENUS_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MENUS_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = b
	}
	return nil
}

// Validate rejects settings the process cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	if c.DB.BusyTimeoutMs <= 0 {
		return fmt.Errorf("db.busy_timeout_ms must be positive, got %d", c.DB.BusyTimeoutMs)
	}
	if c.HTTP.ShutdownTimeoutMs < 0 {
		return fmt.Errorf("http.shutdown_timeout_ms must not be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the process logger described by c.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
