// Package agent runs the clipboard listener and routes its events to the
// journal, the diagnostics API and the log.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ripclip/config"
	"ripclip/dispatch"
	"ripclip/platform"
	"ripclip/storage"
)

// How long Run waits for the listener to release its resources.
var shutdownTimeout = 5 * time.Second

// Tray is the optional notification-area icon.
type Tray interface {
	Run()
	Stop()
	Quit() <-chan struct{}
}

// Broadcaster receives every classified event and listener state changes.
type Broadcaster interface {
	Start(ctx context.Context) error
	SetListening(bool)
	BroadcastEvent(dispatch.Event)
}

// Options carries the optional collaborators. Nil fields are disabled.
type Options struct {
	Journal *storage.DB
	Web     Broadcaster
	Tray    Tray
}

// Agent coordinates the listener and everything that consumes its events.
type Agent struct {
	cfg        *config.Config
	listener   platform.Listener
	bindings   []dispatch.Binding
	classifier *dispatch.Classifier

	journal *storage.DB
	web     Broadcaster
	tray    Tray
}

// New creates an agent for cfg. Keybindings that collide are logged and
// only the first action keeps the combination.
func New(cfg *config.Config, listener platform.Listener, opts Options) *Agent {
	bindings := dispatch.Bindings(cfg)
	for _, c := range dispatch.Conflicts(bindings) {
		slog.Warn("Several actions share one keybinding; only the first is registered",
			"hotkey", c.Hotkey.String(), "actions", c.Actions)
	}
	bindings = dispatch.Dedupe(bindings)

	return &Agent{
		cfg:        cfg,
		listener:   listener,
		bindings:   bindings,
		classifier: dispatch.NewClassifier(bindings),
		journal:    opts.Journal,
		web:        opts.Web,
		tray:       opts.Tray,
	}
}

// Bindings returns the hotkeys the agent registers.
func (a *Agent) Bindings() []dispatch.Binding {
	return a.bindings
}

// Run starts the agent's main event loop. It returns when ctx is cancelled,
// the tray requests quit or the listener stops.
func (a *Agent) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.web != nil {
		if err := a.web.Start(ctx); err != nil {
			slog.Warn("Diagnostics API unavailable", "error", err)
			a.web = nil
		}
	}

	var trayQuit <-chan struct{}
	if a.tray != nil {
		trayQuit = a.tray.Quit()
		go a.tray.Run()
		defer a.tray.Stop()
	}

	messages, err := a.listener.Listen(ctx, dispatch.Registrations(a.bindings))
	if err != nil {
		return fmt.Errorf("failed to start clipboard listener: %w", err)
	}
	a.setListening(true)
	defer a.setListening(false)

	slog.Info("ripclip started", a.startupAttrs()...)

	a.loop(ctx, trayQuit, messages)

	cancel()
	a.waitForListener(messages)
	return nil
}

func (a *Agent) loop(ctx context.Context, trayQuit <-chan struct{}, messages <-chan platform.Message) {
	for {
		select {
		case <-ctx.Done():
			return

		case <-trayQuit:
			return

		case msg, ok := <-messages:
			if !ok {
				slog.Info("Listener stopped")
				return
			}
			ev := a.classifier.Classify(msg)
			a.record(ev)
			if ev.Kind == dispatch.Quit {
				return
			}
		}
	}
}

// waitForListener drains messages until the listener closes the channel,
// which it does only after releasing its native resources.
func (a *Agent) waitForListener(messages <-chan platform.Message) {
	timeout := time.NewTimer(shutdownTimeout)
	defer timeout.Stop()
	for {
		select {
		case _, ok := <-messages:
			if !ok {
				return
			}
		case <-timeout.C:
			slog.Warn("Listener did not shut down in time", "timeout", shutdownTimeout)
			return
		}
	}
}

func (a *Agent) startupAttrs() []any {
	maxSize := "unbounded"
	if a.cfg.MaxStackSize != nil {
		maxSize = fmt.Sprint(*a.cfg.MaxStackSize)
	}
	attrs := []any{
		"max_stack_size", maxSize,
		"show_tray_icon", a.cfg.ShowTrayIcon,
		"prevent_duplicate_push", a.cfg.PreventDuplicatePush,
	}
	for _, b := range a.bindings {
		attrs = append(attrs, string(b.Action), b.Hotkey.String())
	}
	return attrs
}

func (a *Agent) setListening(listening bool) {
	if a.web != nil {
		a.web.SetListening(listening)
	}
}

func (a *Agent) record(ev dispatch.Event) {
	switch ev.Kind {
	case dispatch.HotkeyPressed:
		slog.Info("Hotkey pressed", "action", ev.Action)
	case dispatch.ClipboardChanged:
		slog.Debug("Clipboard changed")
	case dispatch.Quit:
		slog.Info("Quit requested")
	default:
		slog.Debug("Unhandled message", "code", fmt.Sprintf("0x%04X", ev.Code))
		return
	}

	if a.journal != nil {
		rec := &storage.Event{
			Timestamp:   ev.At,
			Kind:        ev.Kind.String(),
			Action:      string(ev.Action),
			MessageCode: ev.Code,
		}
		if err := a.journal.SaveEvent(rec); err != nil {
			slog.Warn("Failed to journal event", "kind", rec.Kind, "error", err)
		}
	}

	if a.web != nil {
		a.web.BroadcastEvent(ev)
	}
}

// PruneJournal drops journal entries older than the retention window.
func PruneJournal(db *storage.DB, retentionDays int) {
	if db == nil || retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	n, err := db.Prune(cutoff)
	if err != nil {
		slog.Warn("Failed to prune journal", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Pruned journal", "removed", n, "retention_days", retentionDays)
	}
}
