// Package config reads flashbox settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	DBPath          string
	CatalogSource   string
	Course          string
	StoragePrefix   string
	ReportURL       string
	ReportTimeoutMs int
	WorkbookPath    string
	History         bool
	LogLevel        slog.Level
	LogFile         string
	Seed            int64
}

// DefaultConfig returns settings used when nothing is overridden. DBPath is
// left empty and resolved against the home directory by Load.
func DefaultConfig() Config {
	return Config{
		CatalogSource:   "./terms.txt",
		Course:          "CS 0478",
		ReportTimeoutMs: 10000,
		History:         true,
		LogLevel:        slog.LevelWarn,
	}
}

// LoadDotEnv loads variables from the given files, or ./.env when none are
// named. Missing files are ignored and existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from FLASHBOX_* environment variables, falling
// back to defaults for any unset or malformed values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("FLASHBOX_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".flashbox", "flashbox.db")
	}
	if v := os.Getenv("FLASHBOX_CATALOG"); v != "" {
		cfg.CatalogSource = v
	}
	if v := os.Getenv("FLASHBOX_COURSE"); v != "" {
		cfg.Course = v
	}
	if v := os.Getenv("FLASHBOX_STORAGE_PREFIX"); v != "" {
		cfg.StoragePrefix = v
	}
	cfg.ReportURL = os.Getenv("FLASHBOX_REPORT_URL")
	if v := os.Getenv("FLASHBOX_REPORT_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ReportTimeoutMs = n
		}
	}
	cfg.WorkbookPath = os.Getenv("FLASHBOX_WORKBOOK")
	if v := os.Getenv("FLASHBOX_HISTORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History = b
		}
	}
	if v := os.Getenv("FLASHBOX_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("FLASHBOX_LOG_FILE"); v != "" {
		cfg.LogFile = v
	} else {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.DBPath), "flashbox.log")
	}
	if v := os.Getenv("FLASHBOX_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}

	return cfg, nil
}

// Prefix returns the persistence key prefix: StoragePrefix if set,
// otherwise the course name lowercased with non-alphanumerics removed.
func (c Config) Prefix() string {
	if c.StoragePrefix != "" {
		return c.StoragePrefix
	}
	p := CoursePrefix(c.Course)
	if p == "" {
		return "flashbox"
	}
	return p
}

// ReportTimeout returns the HTTP sink timeout.
func (c Config) ReportTimeout() time.Duration {
	return time.Duration(c.ReportTimeoutMs) * time.Millisecond
}

// CoursePrefix derives a storage prefix from a course name ("CS 0478" ->
// "cs0478").
func CoursePrefix(course string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(course) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
