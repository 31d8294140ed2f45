package config

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// AppDirName is the subdirectory of the user configuration directory.
	AppDirName = "ripclip"
	// FileName is the configuration file inside AppDirName.
	FileName = "ripclip.conf"
)

// DirFunc resolves the per-user configuration directory.
type DirFunc func() (string, error)

// AppDir returns <dir>/ripclip.
func AppDir(dir DirFunc) (string, error) {
	base, err := dir()
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", errors.New("configuration directory is empty")
	}
	return filepath.Join(base, AppDirName), nil
}

// Path returns the location of ripclip.conf.
func Path(dir DirFunc) (string, error) {
	appDir, err := AppDir(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, FileName), nil
}

// Load loads ripclip.conf from the OS user configuration directory.
func Load() (*Config, error) {
	return LoadFrom(os.UserConfigDir)
}

// LoadFrom loads ripclip.conf from the directory resolved by dir. A missing
// directory or file falls back to Default() (writing the default template
// when possible); only a file that exists and fails to parse is an error.
func LoadFrom(dir DirFunc) (*Config, error) {
	path, err := Path(dir)
	if err != nil {
		slog.Warn("Unable to determine configuration directory; falling back to default", "error", err)
		return Default(), nil
	}

	// Maybe it already exists, maybe not. Failures surface on the next file operation.
	_ = os.Mkdir(filepath.Dir(path), 0o755)

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		cfg, err := Parse(bufio.NewReader(f))
		if err != nil {
			return nil, err
		}
		slog.Info("Read configuration", "path", path)
		return cfg, nil
	}

	if err := writeDefault(path); err != nil {
		slog.Warn("Unable to write default configuration", "path", path, "error", err)
	} else {
		slog.Info("Wrote default configuration", "path", path)
	}
	return Default(), nil
}

func writeDefault(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(DefaultTemplate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
