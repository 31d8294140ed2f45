package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"ripclip/config"
	"ripclip/dispatch"
	"ripclip/storage"
)

func newCheckCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Parse a ripclip.conf and print the normalized configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := config.Path(dirFunc(*configDir))
				if err != nil {
					return err
				}
				path = p
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			cfg, err := config.Parse(bufio.NewReader(f))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.Format())
			return nil
		},
	}
}

func newEventsCmd(configDir *string) *cobra.Command {
	var limit, offset int
	var kindName string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent journaled events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindFilter(kindName)
			if err != nil {
				return err
			}
			dir, err := journalDir(dirFunc(*configDir))
			if err != nil {
				return err
			}
			if _, err := os.Stat(dbPath(dir)); err != nil {
				return fmt.Errorf("no journal at %s", dbPath(dir))
			}

			db, err := storage.Open(dir)
			if err != nil {
				return err
			}
			defer db.Close()

			events, err := db.RecentEventsOfKind(kind, limit, offset)
			if err != nil {
				return err
			}
			return printEvents(cmd, events)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of newest events to skip")
	cmd.Flags().StringVar(&kindName, "kind", "", "Only show events of this kind (clipboard_changed, hotkey_pressed, quit, other)")
	return cmd
}

// kindFilter validates a --kind value; "" means every kind.
func kindFilter(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	kind, err := dispatch.ParseKind(name)
	if err != nil {
		return "", err
	}
	return kind.String(), nil
}

func printEvents(cmd *cobra.Command, events []storage.Event) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tACTION\tCODE\tRUN")
	for _, e := range events {
		action := e.Action
		if action == "" {
			action = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t0x%04X\t%.8s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Kind, action, e.MessageCode, e.RunID)
	}
	return tw.Flush()
}

func newPathsCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the files ripclip reads and writes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirFunc(*configDir)
			confPath, err := config.Path(dir)
			if err != nil {
				return err
			}
			settings, appDir := loadSettings(dir)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:   %s\n", confPath)
			fmt.Fprintf(out, "settings: %s\n", filepath.Join(appDir, config.SettingsFileName))
			fmt.Fprintf(out, "journal:  %s\n", dbPath(settings.Journal.Dir))
			fmt.Fprintf(out, "log:      %s\n", settings.Log.File)
			return nil
		},
	}
}
