package config

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogToStderr as LogFile sends records to stderr instead of a file.
const LogToStderr = "stderr"

// NewLogger builds the process logger. Records go to a size-rotated LogFile
// so they never interleave with the TUI. An empty LogFile discards them, and
// LogToStderr opts into stderr. The returned closer releases the file.
func (c Config) NewLogger() (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	switch c.LogFile {
	case "":
		return slog.New(slog.DiscardHandler), io.NopCloser(nil)
	case LogToStderr:
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), io.NopCloser(nil)
	}
	rotator := &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
	return slog.New(slog.NewTextHandler(rotator, opts)), rotator
}
