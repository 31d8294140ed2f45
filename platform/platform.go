package platform

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNullHandle is returned when a native call yields, or a caller passes, a null handle.
	ErrNullHandle = errors.New("null native handle")
	// ErrUnsupported is returned by every native operation on non-Windows targets.
	ErrUnsupported = errors.New("native windowing is only supported on Windows")
)

// Message codes the rest of the application reacts to.
const (
	WMQuit            uint32 = 0x0012
	WMHotkey          uint32 = 0x0312
	WMClipboardUpdate uint32 = 0x031D
)

// ModuleHandle identifies the running executable image.
type ModuleHandle struct {
	raw uintptr
}

// WindowHandle identifies a window created by CreateWindow.
type WindowHandle struct {
	raw uintptr
}

// ClassAtom is the token returned by RegisterClass.
type ClassAtom struct {
	atom uint16
	name string
}

func newModuleHandle(raw uintptr) (*ModuleHandle, error) {
	if raw == 0 {
		return nil, ErrNullHandle
	}
	return &ModuleHandle{raw: raw}, nil
}

func newWindowHandle(raw uintptr) (*WindowHandle, error) {
	if raw == 0 {
		return nil, ErrNullHandle
	}
	return &WindowHandle{raw: raw}, nil
}

func newClassAtom(atom uint16, name string) (*ClassAtom, error) {
	if atom == 0 {
		return nil, ErrNullHandle
	}
	return &ClassAtom{atom: atom, name: name}, nil
}

// Raw returns the native HWND value.
func (w *WindowHandle) Raw() uintptr { return w.raw }

// Name returns the class name the atom was registered with.
func (c *ClassAtom) Name() string { return c.name }

func (c *ClassAtom) String() string {
	return fmt.Sprintf("%s (atom 0x%04X)", c.name, c.atom)
}

// rawWindow maps an optional handle to its native value, 0 for nil.
func rawWindow(w *WindowHandle) uintptr {
	if w == nil {
		return 0
	}
	return w.raw
}

// Message is one entry retrieved from the thread's message queue.
type Message struct {
	Window *WindowHandle // nil for thread messages
	Code   uint32
	WParam uintptr
	LParam uintptr
}

// IsQuit reports whether the message is the WM_QUIT signal.
func (m Message) IsQuit() bool { return m.Code == WMQuit }

// ErrorCode is an OS-reported failure code (GetLastError).
type ErrorCode uint32

// Description resolves the code to the system's message text.
func (c ErrorCode) Description() (string, error) {
	return describe(c)
}

func (c ErrorCode) Error() string {
	desc, err := c.Description()
	if err != nil || desc == "" {
		return fmt.Sprintf("error code %d", uint32(c))
	}
	return fmt.Sprintf("%s (code %d)", desc, uint32(c))
}

// HotkeyRegistration binds a hotkey id to a key combination.
type HotkeyRegistration struct {
	ID        int32
	Modifiers Modifiers
	Key       VirtualKey
}

// Listener owns a hidden window subscribed to clipboard changes and the
// registered hotkeys, and streams the messages it receives.
type Listener interface {
	// Listen sets everything up on a dedicated OS thread and returns once the
	// registrations are in place. The channel is closed after the loop exits
	// and all native resources have been released.
	Listen(ctx context.Context, hotkeys []HotkeyRegistration) (<-chan Message, error)
}
