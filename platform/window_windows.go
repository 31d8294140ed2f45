//go:build windows

package platform

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	registerClassEx               = user32.NewProc("RegisterClassExW")
	unregisterClass               = user32.NewProc("UnregisterClassW")
	createWindowEx                = user32.NewProc("CreateWindowExW")
	destroyWindow                 = user32.NewProc("DestroyWindow")
	defWindowProc                 = user32.NewProc("DefWindowProcW")
	addClipboardFormatListener    = user32.NewProc("AddClipboardFormatListener")
	removeClipboardFormatListener = user32.NewProc("RemoveClipboardFormatListener")
	getMessage                    = user32.NewProc("GetMessageW")
	peekMessage                   = user32.NewProc("PeekMessageW")
	registerHotKey                = user32.NewProc("RegisterHotKey")
	unregisterHotKey              = user32.NewProc("UnregisterHotKey")
	postThreadMessage             = user32.NewProc("PostThreadMessageW")
)

const (
	pmNoRemove = 0x0000

	formatMessageFlags = windows.FORMAT_MESSAGE_FROM_SYSTEM | windows.FORMAT_MESSAGE_IGNORE_INSERTS
)

// wndClassEx mirrors WNDCLASSEXW.
type wndClassEx struct {
	size       uint32
	style      uint32
	wndProc    uintptr
	clsExtra   int32
	wndExtra   int32
	instance   windows.Handle
	icon       windows.Handle
	cursor     windows.Handle
	background windows.Handle
	menuName   *uint16
	className  *uint16
	iconSm     windows.Handle
}

type point struct {
	x int32
	y int32
}

// winMsg mirrors the Win32 MSG struct. Field order and types must match the
// native layout on both 32-bit and 64-bit Windows.
type winMsg struct {
	hWnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

// WindowProc handles messages sent to a window of a registered class.
type WindowProc func(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr

// DefaultWindowProc forwards to DefWindowProcW.
func DefaultWindowProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := defWindowProc.Call(hwnd, uintptr(msg), wParam, lParam)
	return r
}

// loadUser32 fails cleanly instead of letting LazyProc.Call panic.
func loadUser32() error {
	if err := user32.Load(); err != nil {
		return fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	return nil
}

// lastError converts the last-error value captured by LazyProc.Call.
func lastError(err error) ErrorCode {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return ErrorCode(errno)
	}
	return 0
}

func describe(c ErrorCode) (string, error) {
	buf := make([]uint16, 512)
	n, err := windows.FormatMessage(formatMessageFlags, 0, uint32(c), 0, buf, nil)
	if err != nil {
		return "", fmt.Errorf("FormatMessage failed for code %d: %w", uint32(c), err)
	}
	return strings.TrimSpace(windows.UTF16ToString(buf[:n])), nil
}

// GetModuleHandle returns the handle of the running executable.
func GetModuleHandle() (*ModuleHandle, error) {
	var h windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &h); err != nil {
		return nil, lastError(err)
	}
	return newModuleHandle(uintptr(h))
}

// RegisterClass registers a window class named name whose windows are served
// by proc (DefaultWindowProc when nil). Each call allocates a native callback
// that lives until the process exits.
func RegisterClass(module *ModuleHandle, proc WindowProc, name string) (*ClassAtom, error) {
	if module == nil {
		return nil, ErrNullHandle
	}
	if proc == nil {
		proc = DefaultWindowProc
	}
	className, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("invalid class name %q: %w", name, err)
	}

	wc := wndClassEx{
		wndProc:   windows.NewCallback(proc),
		instance:  windows.Handle(module.raw),
		className: className,
	}
	wc.size = uint32(unsafe.Sizeof(wc))

	atom, _, callErr := registerClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if atom == 0 {
		return nil, lastError(callErr)
	}
	return newClassAtom(uint16(atom), name)
}

// UnregisterClass releases a class registered with RegisterClass. Every
// window of the class must already be destroyed.
func UnregisterClass(class *ClassAtom, module *ModuleHandle) error {
	if class == nil || module == nil {
		return ErrNullHandle
	}
	r, _, callErr := unregisterClass.Call(uintptr(class.atom), module.raw)
	if r == 0 {
		return lastError(callErr)
	}
	return nil
}

// CreateWindow creates a window of the given class. parent may be nil.
func CreateWindow(exStyle uint32, class *ClassAtom, style uint32, x, y, width, height int32, parent *WindowHandle) (*WindowHandle, error) {
	if class == nil {
		return nil, ErrNullHandle
	}
	hwnd, _, callErr := createWindowEx.Call(
		uintptr(exStyle),
		uintptr(class.atom), // MAKEINTATOM
		0,
		uintptr(style),
		uintptr(x),
		uintptr(y),
		uintptr(width),
		uintptr(height),
		rawWindow(parent),
		0,
		0,
		0,
	)
	if hwnd == 0 {
		return nil, lastError(callErr)
	}
	return newWindowHandle(hwnd)
}

// DestroyWindow destroys a window created on the calling thread.
func DestroyWindow(w *WindowHandle) error {
	if w == nil {
		return ErrNullHandle
	}
	r, _, callErr := destroyWindow.Call(w.raw)
	if r == 0 {
		return lastError(callErr)
	}
	return nil
}

// AddClipboardListener subscribes w to WM_CLIPBOARDUPDATE notifications.
func AddClipboardListener(w *WindowHandle) error {
	if w == nil {
		return ErrNullHandle
	}
	r, _, callErr := addClipboardFormatListener.Call(w.raw)
	if r == 0 {
		return lastError(callErr)
	}
	return nil
}

// RemoveClipboardListener cancels AddClipboardListener.
func RemoveClipboardListener(w *WindowHandle) error {
	if w == nil {
		return ErrNullHandle
	}
	r, _, callErr := removeClipboardFormatListener.Call(w.raw)
	if r == 0 {
		return lastError(callErr)
	}
	return nil
}

// RegisterHotkey registers a global hotkey that posts WM_HOTKEY with wParam id
// to w, or to the calling thread when w is nil.
func RegisterHotkey(w *WindowHandle, id int32, mods Modifiers, key VirtualKey) error {
	r, _, callErr := registerHotKey.Call(rawWindow(w), uintptr(id), uintptr(mods), uintptr(key))
	if r == 0 {
		return lastError(callErr)
	}
	return nil
}

// UnregisterHotkey releases a hotkey registered with RegisterHotkey.
func UnregisterHotkey(w *WindowHandle, id int32) error {
	r, _, callErr := unregisterHotKey.Call(rawWindow(w), uintptr(id))
	if r == 0 {
		return lastError(callErr)
	}
	return nil
}

// GetMessage blocks until a message matching the filter is available. A nil
// filter accepts window and thread messages alike; minCode and maxCode bound the
// message code inclusively, 0 and 0 accepting all. WM_QUIT is returned as a
// regular message.
func GetMessage(filter *WindowHandle, minCode, maxCode uint32) (Message, error) {
	var m winMsg
	r, _, callErr := getMessage.Call(
		uintptr(unsafe.Pointer(&m)),
		rawWindow(filter),
		uintptr(minCode),
		uintptr(maxCode),
	)
	if int32(r) == -1 {
		return Message{}, lastError(callErr)
	}
	return fromWinMsg(m), nil
}

func fromWinMsg(m winMsg) Message {
	// A null hWnd marks a thread message.
	w, _ := newWindowHandle(m.hWnd)
	return Message{
		Window: w,
		Code:   m.message,
		WParam: m.wParam,
		LParam: m.lParam,
	}
}

// ensureQueue forces creation of the calling thread's message queue so that
// PostQuit can reach it before the first GetMessage call.
func ensureQueue() {
	var m winMsg
	peekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmNoRemove)
}

// CurrentThreadID returns the id of the calling OS thread.
func CurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}

// PostQuit posts WM_QUIT to the message queue of threadID.
func PostQuit(threadID uint32) error {
	if threadID == 0 {
		return errors.New("cannot post WM_QUIT: thread id is 0")
	}
	r, _, callErr := postThreadMessage.Call(uintptr(threadID), uintptr(WMQuit), 0, 0)
	if r == 0 {
		return lastError(callErr)
	}
	return nil
}
