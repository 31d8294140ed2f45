package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ripclip/config"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("Listener started", "hotkeys", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "Listener started" || rec["hotkeys"] != float64(2) {
		t.Fatalf("record = %v", rec)
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "text", slog.LevelDebug).Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestConfigureWritesFile(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "ripclip.log")

	_, closer, err := Configure(config.LogSettings{
		Level:      "info",
		Format:     "text",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	slog.Info("Read configuration", "path", "x")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "Read configuration") {
		t.Fatalf("log file = %q", data)
	}
}

func TestConfigureWithoutOutputs(t *testing.T) {
	restoreDefault(t)
	logger, closer, err := Configure(config.LogSettings{Level: "debug"})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	logger.Info("discarded")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	if slog.Default() != logger {
		t.Fatal("Configure did not install the default logger")
	}
}
