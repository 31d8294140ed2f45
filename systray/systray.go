package systray

import (
	_ "embed"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
)

//go:embed icon.ico
var defaultIcon []byte

// Manager owns the tray icon and its menu.
type Manager struct {
	statusURL string
	iconData  []byte
	quit      chan struct{}
	quitOnce  sync.Once
}

// NewManager creates a tray manager. statusURL may be empty, in which case
// the "Open status page" item is omitted.
func NewManager(statusURL string) *Manager {
	return &Manager{
		statusURL: statusURL,
		iconData:  defaultIcon,
		quit:      make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop removes the tray icon.
func (m *Manager) Stop() {
	systray.Quit()
}

// Quit returns a channel that is closed when the user picks Quit.
func (m *Manager) Quit() <-chan struct{} {
	return m.quit
}

func (m *Manager) requestQuit() {
	m.quitOnce.Do(func() { close(m.quit) })
}

func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	systray.SetTitle("ripclip")
	systray.SetTooltip("ripclip - clipboard stack")

	var openStatus <-chan struct{}
	if m.statusURL != "" {
		mStatus := systray.AddMenuItem("Open status page", "Open the ripclip status page")
		openStatus = mStatus.ClickedCh
		systray.AddSeparator()
	}
	mQuit := systray.AddMenuItem("Quit", "Exit ripclip")

	go func() {
		for {
			select {
			case <-openStatus:
				m.openStatusPage()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				m.requestQuit()
				systray.Quit()
				return
			}
		}
	}()
}

func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// openStatusPage opens the status page in the default browser
func (m *Manager) openStatusPage() {
	slog.Info("Opening status page", "url", m.statusURL)

	cmd, ok := browserCommand(runtime.GOOS, m.statusURL)
	if !ok {
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}
	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open status page", "error", err)
	}
}

func browserCommand(goos, url string) (*exec.Cmd, bool) {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), true
	case "darwin":
		return exec.Command("open", url), true
	case "linux":
		return exec.Command("xdg-open", url), true
	default:
		return nil, false
	}
}
