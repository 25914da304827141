// File path: internal/store/config.go
package store

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config controls the SQLite catalog connection pool.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
}

// DefaultConfig returns the catalog defaults used when the environment
// provides no overrides.
func DefaultConfig() Config {
	return Config{
		Path:            filepath.Join("data", "catalog.db"),
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		BusyTimeout:     5 * time.Second,
	}
}

// LoadConfig builds a Config from TESTFORGE_DB_* environment variables,
// falling back to defaults for anything unset or unparsable.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("TESTFORGE_DB_PATH")); path != "" {
		cfg.Path = path
	}
	if v := strings.TrimSpace(os.Getenv("TESTFORGE_DB_MAX_OPEN")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.MaxOpenConns = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("TESTFORGE_DB_MAX_IDLE")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.MaxIdleConns = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("TESTFORGE_DB_BUSY_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			cfg.BusyTimeout = parsed
		}
	}
	return cfg
}
