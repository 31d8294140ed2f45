package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SettingsFileName holds runtime settings that are not part of ripclip.conf.
const SettingsFileName = "settings.toml"

// Settings configures logging, the event journal and the diagnostics API.
type Settings struct {
	Log     LogSettings     `toml:"log"`
	Journal JournalSettings `toml:"journal"`
	Web     WebSettings     `toml:"web"`
}

type LogSettings struct {
	Level      string `toml:"level"`  // debug, info, warn, error
	Format     string `toml:"format"` // text, json
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	Stdout     bool   `toml:"stdout"`
}

type JournalSettings struct {
	Enabled bool `toml:"enabled"`
	// Dir holds ripclip.db; empty means the application directory.
	Dir           string `toml:"dir"`
	RetentionDays int    `toml:"retention_days"`
}

type WebSettings struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// DefaultSettings returns settings rooted at appDir.
func DefaultSettings(appDir string) *Settings {
	return &Settings{
		Log: LogSettings{
			Level:      "info",
			Format:     "text",
			File:       filepath.Join(appDir, "ripclip.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			Stdout:     true,
		},
		Journal: JournalSettings{
			Enabled:       true,
			Dir:           appDir,
			RetentionDays: 30,
		},
		Web: WebSettings{
			Enabled: false,
			Addr:    "127.0.0.1:7391",
		},
	}
}

// LoadSettings reads settings.toml from appDir. If the file doesn't exist,
// it is created with default values.
func LoadSettings(appDir string) (*Settings, error) {
	path := filepath.Join(appDir, SettingsFileName)
	settings := DefaultSettings(appDir)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
		if err := SaveSettings(path, settings); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return settings, nil
	}

	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if settings.Journal.Dir == "" {
		settings.Journal.Dir = appDir
	}
	return settings, nil
}

// SaveSettings writes settings to path as TOML.
func SaveSettings(path string, settings *Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(settings)
}
