//go:build windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// ListenerClassName is the window class registered for the hidden window.
const ListenerClassName = "ripclip_clipboard_listener"

// resources tracks what the loop thread acquired so it can be released in
// reverse order, whether setup completed or not.
type resources struct {
	module  *ModuleHandle
	class   *ClassAtom
	window  *WindowHandle
	watcher bool
	hotkeys []int32
}

func (r *resources) release() error {
	var errs []error
	for i := len(r.hotkeys) - 1; i >= 0; i-- {
		if err := UnregisterHotkey(r.window, r.hotkeys[i]); err != nil {
			errs = append(errs, fmt.Errorf("UnregisterHotKey %d: %w", r.hotkeys[i], err))
		}
	}
	if r.watcher {
		if err := RemoveClipboardListener(r.window); err != nil {
			errs = append(errs, fmt.Errorf("RemoveClipboardFormatListener: %w", err))
		}
	}
	if r.window != nil {
		if err := DestroyWindow(r.window); err != nil {
			errs = append(errs, fmt.Errorf("DestroyWindow: %w", err))
		}
	}
	if r.class != nil {
		if err := UnregisterClass(r.class, r.module); err != nil {
			errs = append(errs, fmt.Errorf("UnregisterClass %s: %w", r.class.Name(), err))
		}
	}
	return errors.Join(errs...)
}

type loopReady struct {
	threadID uint32
	err      error
}

// WindowsListener implements Listener on top of a hidden top-level window.
type WindowsListener struct {
	mu      sync.Mutex
	running bool
}

// NewListener creates a new Windows clipboard/hotkey listener.
func NewListener() Listener {
	return &WindowsListener{}
}

// Listen starts the message loop and returns its message stream.
func (l *WindowsListener) Listen(ctx context.Context, hotkeys []HotkeyRegistration) (<-chan Message, error) {
	if err := loadUser32(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil, errors.New("listener is already running")
	}
	l.running = true
	l.mu.Unlock()

	messages := make(chan Message, 16)
	readyCh := make(chan loopReady, 1)
	done := make(chan struct{})

	go l.run(ctx, hotkeys, messages, readyCh, done)

	var ready loopReady
	select {
	case ready = <-readyCh:
	case <-ctx.Done():
		// The loop still reports readiness; stop it once it does.
		go func() {
			if r := <-readyCh; r.err == nil {
				_ = PostQuit(r.threadID)
			}
		}()
		return nil, ctx.Err()
	}
	if ready.err != nil {
		// Setup failures are rolled back before Listen reports them.
		<-done
		return nil, ready.err
	}

	// Stop the loop on cancellation.
	go func() {
		select {
		case <-ctx.Done():
			if err := PostQuit(ready.threadID); err != nil {
				slog.Warn("Failed to post quit to listener thread", "error", err)
			}
		case <-done:
		}
	}()

	return messages, nil
}

func (l *WindowsListener) run(ctx context.Context, hotkeys []HotkeyRegistration, messages chan<- Message, readyCh chan<- loopReady, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()
	defer close(messages)

	ensureQueue()

	res := &resources{}
	defer func() {
		if err := res.release(); err != nil {
			slog.Error("Failed to release listener resources", "error", err)
		}
	}()

	if err := res.setup(hotkeys); err != nil {
		readyCh <- loopReady{err: err}
		return
	}

	readyCh <- loopReady{threadID: CurrentThreadID()}
	slog.Debug("Listener ready", "class", res.class.String(), "hotkeys", len(res.hotkeys))

	for {
		msg, err := GetMessage(nil, 0, 0)
		if err != nil {
			slog.Error("GetMessage failed, stopping listener", "error", err)
			return
		}
		if msg.IsQuit() {
			slog.Info("Listener received quit")
			select {
			case messages <- msg:
			default:
			}
			return
		}
		select {
		case messages <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (r *resources) setup(hotkeys []HotkeyRegistration) error {
	var err error
	if r.module, err = GetModuleHandle(); err != nil {
		return fmt.Errorf("GetModuleHandleEx failed: %w", err)
	}
	if r.class, err = RegisterClass(r.module, DefaultWindowProc, ListenerClassName); err != nil {
		return fmt.Errorf("RegisterClassEx failed: %w", err)
	}
	if r.window, err = CreateWindow(0, r.class, 0, 0, 0, 0, 0, nil); err != nil {
		return fmt.Errorf("CreateWindowEx failed: %w", err)
	}
	if err = AddClipboardListener(r.window); err != nil {
		return fmt.Errorf("AddClipboardFormatListener failed: %w", err)
	}
	r.watcher = true
	for _, hk := range hotkeys {
		if err := RegisterHotkey(r.window, hk.ID, hk.Modifiers, hk.Key); err != nil {
			return fmt.Errorf("RegisterHotKey %s + %s failed: %w", hk.Modifiers, hk.Key, err)
		}
		r.hotkeys = append(r.hotkeys, hk.ID)
	}
	return nil
}
