//go:build !windows

package platform

import (
	"context"
	"log/slog"
	"syscall"
)

// WindowProc handles messages sent to a window of a registered class.
type WindowProc func(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr

// DefaultWindowProc is a no-op outside Windows.
func DefaultWindowProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr { return 0 }

func describe(c ErrorCode) (string, error) {
	return syscall.Errno(c).Error(), nil
}

func GetModuleHandle() (*ModuleHandle, error) { return nil, ErrUnsupported }

func RegisterClass(module *ModuleHandle, proc WindowProc, name string) (*ClassAtom, error) {
	return nil, ErrUnsupported
}

func UnregisterClass(class *ClassAtom, module *ModuleHandle) error { return ErrUnsupported }

func CreateWindow(exStyle uint32, class *ClassAtom, style uint32, x, y, width, height int32, parent *WindowHandle) (*WindowHandle, error) {
	return nil, ErrUnsupported
}

func DestroyWindow(w *WindowHandle) error { return ErrUnsupported }

func AddClipboardListener(w *WindowHandle) error { return ErrUnsupported }

func RemoveClipboardListener(w *WindowHandle) error { return ErrUnsupported }

func RegisterHotkey(w *WindowHandle, id int32, mods Modifiers, key VirtualKey) error {
	return ErrUnsupported
}

func UnregisterHotkey(w *WindowHandle, id int32) error { return ErrUnsupported }

func GetMessage(filter *WindowHandle, minCode, maxCode uint32) (Message, error) {
	return Message{}, ErrUnsupported
}

func CurrentThreadID() uint32 { return 0 }

func PostQuit(threadID uint32) error { return ErrUnsupported }

// UnsupportedListener is returned by NewListener outside Windows.
type UnsupportedListener struct{}

// NewListener returns a listener that always fails with ErrUnsupported.
func NewListener() Listener {
	return UnsupportedListener{}
}

// Listen always fails; the rest of the application keeps running without
// clipboard or hotkey notifications.
func (UnsupportedListener) Listen(ctx context.Context, hotkeys []HotkeyRegistration) (<-chan Message, error) {
	slog.Warn("Clipboard and hotkey notifications are not supported on this platform",
		"hotkeys", len(hotkeys))
	return nil, ErrUnsupported
}
