package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"FLASHBOX_DB", "FLASHBOX_CATALOG", "FLASHBOX_COURSE", "FLASHBOX_STORAGE_PREFIX",
		"FLASHBOX_REPORT_URL", "FLASHBOX_REPORT_TIMEOUT_MS", "FLASHBOX_WORKBOOK",
		"FLASHBOX_HISTORY", "FLASHBOX_LOG_LEVEL", "FLASHBOX_LOG_FILE", "FLASHBOX_SEED",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".flashbox", "flashbox.db"), cfg.DBPath)
	assert.Equal(t, "./terms.txt", cfg.CatalogSource)
	assert.Equal(t, "CS 0478", cfg.Course)
	assert.Equal(t, "cs0478", cfg.Prefix())
	assert.Empty(t, cfg.ReportURL)
	assert.Equal(t, 10*time.Second, cfg.ReportTimeout())
	assert.True(t, cfg.History)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".flashbox", "flashbox.log"), cfg.LogFile)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FLASHBOX_DB", "/tmp/x.db")
	t.Setenv("FLASHBOX_CATALOG", "https://example.com/terms.txt")
	t.Setenv("FLASHBOX_COURSE", "A-Level Physics")
	t.Setenv("FLASHBOX_STORAGE_PREFIX", "")
	t.Setenv("FLASHBOX_REPORT_URL", "https://script.example.com/exec")
	t.Setenv("FLASHBOX_REPORT_TIMEOUT_MS", "2500")
	t.Setenv("FLASHBOX_WORKBOOK", "/tmp/r.xlsx")
	t.Setenv("FLASHBOX_HISTORY", "false")
	t.Setenv("FLASHBOX_LOG_LEVEL", "debug")
	t.Setenv("FLASHBOX_LOG_FILE", "/tmp/fb.log")
	t.Setenv("FLASHBOX_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "https://example.com/terms.txt", cfg.CatalogSource)
	assert.Equal(t, "alevelphysics", cfg.Prefix())
	assert.Equal(t, "https://script.example.com/exec", cfg.ReportURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.ReportTimeout())
	assert.Equal(t, "/tmp/r.xlsx", cfg.WorkbookPath)
	assert.False(t, cfg.History)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/tmp/fb.log", cfg.LogFile)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoad_MalformedValuesKeepDefaults(t *testing.T) {
	t.Setenv("FLASHBOX_DB", "/tmp/x.db")
	t.Setenv("FLASHBOX_REPORT_TIMEOUT_MS", "-5")
	t.Setenv("FLASHBOX_HISTORY", "maybe")
	t.Setenv("FLASHBOX_LOG_LEVEL", "loud")
	t.Setenv("FLASHBOX_SEED", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.ReportTimeoutMs)
	assert.True(t, cfg.History)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Zero(t, cfg.Seed)
}

func TestPrefix_ExplicitWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StoragePrefix = "custom"
	assert.Equal(t, "custom", cfg.Prefix())

	cfg = DefaultConfig()
	cfg.Course = "!!!"
	assert.Equal(t, "flashbox", cfg.Prefix())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FLASHBOX_COURSE=\"IGCSE Biology\"\n"), 0o600))
	t.Setenv("FLASHBOX_COURSE", "")
	os.Unsetenv("FLASHBOX_COURSE")
	t.Setenv("FLASHBOX_DB", "/tmp/x.db")

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "igcsebiology", cfg.Prefix())
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestNewLogger_WritesToRotatingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = slog.LevelInfo
	cfg.LogFile = filepath.Join(t.TempDir(), "flashbox.log")

	logger, closer := cfg.NewLogger()
	logger.InfoContext(context.Background(), "study_session", "event", "start")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "study_session")
	assert.Contains(t, string(data), "event=start")
}

func TestLoad_LogFileFollowsDB(t *testing.T) {
	t.Setenv("FLASHBOX_DB", "/tmp/data/progress.db")
	t.Setenv("FLASHBOX_LOG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data/flashbox.log", cfg.LogFile)
}

// captureStderr swaps os.Stderr for a pipe while fn runs and returns what was
// written to it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewLogger_EmptyLogFileNeverWritesStderr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = slog.LevelDebug

	out := captureStderr(t, func() {
		logger, closer := cfg.NewLogger()
		logger.Warn("report_failed", "sink", "http")
		require.NoError(t, closer.Close())
	})
	assert.Empty(t, out)
}

func TestNewLogger_StderrOptIn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFile = LogToStderr

	out := captureStderr(t, func() {
		logger, _ := cfg.NewLogger()
		logger.Warn("report_failed", "sink", "http")
	})
	assert.Contains(t, out, "msg=report_failed")
}
