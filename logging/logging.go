// Package logging configures the default slog logger with file rotation.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"ripclip/config"
)

// ParseLevel maps debug, info, warn and error to slog levels. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Configure builds a logger from s, installs it as the slog default and
// returns a closer for the log file. With no file and stdout disabled,
// output is discarded.
func Configure(s config.LogSettings) (*slog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if s.File != "" {
		if err := os.MkdirAll(filepath.Dir(s.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    s.MaxSizeMB, // megabytes
			MaxBackups: s.MaxBackups,
			MaxAge:     30,
		}
		writers = append(writers, rotator)
		closer = rotator
	}
	if s.Stdout {
		writers = append(writers, os.Stdout)
	}

	logger := New(io.MultiWriter(writers...), s.Format, ParseLevel(s.Level))
	slog.SetDefault(logger)
	return logger, closer, nil
}

// New returns a text or JSON logger writing to w.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
