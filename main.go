package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"ripclip/agent"
	"ripclip/config"
	"ripclip/logging"
	"ripclip/platform"
	"ripclip/storage"
	"ripclip/systray"
	"ripclip/web"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:   "ripclip",
		Short: "ripclip - a clipboard stack driven by global hotkeys",
		Long: `ripclip watches the clipboard and keeps a stack of copied entries.
Global hotkeys pop, swap or clear the stack. Options live in ripclip.conf
under the user configuration directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return run(ctx, dirFunc(configDir))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "Base configuration directory (defaults to the OS user config dir)")

	root.AddCommand(newCheckCmd(&configDir))
	root.AddCommand(newEventsCmd(&configDir))
	root.AddCommand(newPathsCmd(&configDir))
	return root
}

func dirFunc(override string) config.DirFunc {
	if override == "" {
		return os.UserConfigDir
	}
	return func() (string, error) { return override, nil }
}

// loadSettings reads settings.toml, falling back to defaults that keep
// everything in memory when the application directory is unknown.
func loadSettings(dir config.DirFunc) (*config.Settings, string) {
	appDir, err := config.AppDir(dir)
	if err != nil {
		s := config.DefaultSettings("")
		s.Log.File = ""
		s.Journal.Enabled = false
		return s, ""
	}
	s, err := config.LoadSettings(appDir)
	if err != nil {
		slog.Warn("Failed to load settings; using defaults", "error", err)
		return config.DefaultSettings(appDir), appDir
	}
	return s, appDir
}

func run(ctx context.Context, dir config.DirFunc) error {
	settings, appDir := loadSettings(dir)

	_, logCloser, err := logging.Configure(settings.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var opts agent.Options

	if settings.Journal.Enabled {
		db, err := storage.Open(settings.Journal.Dir)
		if err != nil {
			slog.Warn("Event journal unavailable", "error", err)
		} else {
			defer db.Close()
			agent.PruneJournal(db, settings.Journal.RetentionDays)
			opts.Journal = db
		}
	}

	statusURL := ""
	if settings.Web.Enabled {
		srv := web.NewServer(opts.Journal, cfg, settings.Web.Addr)
		opts.Web = srv
		statusURL = srv.URL()
	}

	if cfg.ShowTrayIcon {
		opts.Tray = systray.NewManager(statusURL)
	}

	slog.Info("Starting ripclip", "version", version, "dir", appDir)
	if err := agent.New(cfg, platform.NewListener(), opts).Run(ctx); err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			return fmt.Errorf("ripclip only runs on Windows: %w", err)
		}
		return err
	}

	slog.Info("ripclip stopped")
	return nil
}

// journalDir resolves where ripclip.db lives for the read-only commands.
func journalDir(dir config.DirFunc) (string, error) {
	settings, appDir := loadSettings(dir)
	if appDir == "" {
		return "", errors.New("unable to determine configuration directory")
	}
	if settings.Journal.Dir != "" {
		return settings.Journal.Dir, nil
	}
	return appDir, nil
}

func dbPath(dir string) string {
	return filepath.Join(dir, storage.FileName)
}
