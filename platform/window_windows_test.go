//go:build windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"testing"
	"time"
	"unsafe"
)

// TestWinMsgSize verifies that winMsg matches the Win32 MSG layout.
func TestWinMsgSize(t *testing.T) {
	var want uintptr
	switch unsafe.Sizeof(uintptr(0)) {
	case 8:
		want = 48
	case 4:
		want = 28
	default:
		t.Skip("unknown pointer size")
	}
	if got := unsafe.Sizeof(winMsg{}); got != want {
		t.Fatalf("unsafe.Sizeof(winMsg{}) = %d, want %d", got, want)
	}
}

func TestWndClassExSize(t *testing.T) {
	var want uintptr
	switch unsafe.Sizeof(uintptr(0)) {
	case 8:
		want = 80
	case 4:
		want = 48
	default:
		t.Skip("unknown pointer size")
	}
	if got := unsafe.Sizeof(wndClassEx{}); got != want {
		t.Fatalf("unsafe.Sizeof(wndClassEx{}) = %d, want %d", got, want)
	}
}

func TestNilHandlesRejectedBeforeNativeCall(t *testing.T) {
	if _, err := RegisterClass(nil, nil, "x"); !errors.Is(err, ErrNullHandle) {
		t.Fatalf("RegisterClass(nil) error = %v", err)
	}
	if _, err := CreateWindow(0, nil, 0, 0, 0, 0, 0, nil); !errors.Is(err, ErrNullHandle) {
		t.Fatalf("CreateWindow(nil) error = %v", err)
	}
	if err := AddClipboardListener(nil); !errors.Is(err, ErrNullHandle) {
		t.Fatalf("AddClipboardListener(nil) error = %v", err)
	}
	if err := DestroyWindow(nil); !errors.Is(err, ErrNullHandle) {
		t.Fatalf("DestroyWindow(nil) error = %v", err)
	}
}

func TestWindowLifecycle(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	module, err := GetModuleHandle()
	if err != nil {
		t.Fatalf("GetModuleHandle: %v", err)
	}
	name := fmt.Sprintf("ripclip_test_%d", os.Getpid())
	class, err := RegisterClass(module, nil, name)
	if err != nil {
		t.Fatalf("RegisterClass: %v", err)
	}
	defer func() {
		if err := UnregisterClass(class, module); err != nil {
			t.Errorf("UnregisterClass: %v", err)
		}
	}()

	// Registering the same name twice reports the OS error.
	if _, err := RegisterClass(module, nil, name); err == nil {
		t.Fatal("duplicate RegisterClass should fail")
	} else {
		var code ErrorCode
		if !errors.As(err, &code) || code == 0 {
			t.Fatalf("duplicate RegisterClass error = %v, want non-zero ErrorCode", err)
		}
	}

	w, err := CreateWindow(0, class, 0, 0, 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if err := AddClipboardListener(w); err != nil {
		t.Fatalf("AddClipboardListener: %v", err)
	}
	if err := RemoveClipboardListener(w); err != nil {
		t.Fatalf("RemoveClipboardListener: %v", err)
	}
	if err := DestroyWindow(w); err != nil {
		t.Fatalf("DestroyWindow: %v", err)
	}
}

func TestPostQuitEndsGetMessage(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ensureQueue()
	if err := PostQuit(CurrentThreadID()); err != nil {
		t.Fatalf("PostQuit: %v", err)
	}
	msg, err := GetMessage(nil, 0, 0)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if !msg.IsQuit() || msg.Window != nil {
		t.Fatalf("GetMessage = %+v, want thread WM_QUIT", msg)
	}
}

func TestListenerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	messages, err := NewListener().Listen(ctx, nil)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	cancel()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-messages:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("listener did not stop after cancellation")
		}
	}
}

func TestListenerRollsBackFailedSetup(t *testing.T) {
	// The same combination twice: the second RegisterHotKey must fail.
	mods := ModControl | ModAlt | ModShift | ModWin
	dup := []HotkeyRegistration{
		{ID: 1, Modifiers: mods, Key: VKF24},
		{ID: 2, Modifiers: mods, Key: VKF24},
	}

	l := NewListener()
	messages, err := l.Listen(context.Background(), dup)
	if err == nil {
		t.Fatal("Listen with a duplicate hotkey succeeded")
	}
	if messages != nil {
		t.Fatal("Listen returned a channel alongside an error")
	}
	var code ErrorCode
	if !errors.As(err, &code) {
		t.Fatalf("error %v does not wrap an ErrorCode", err)
	}

	// The class, window and first hotkey must be gone: the same listener
	// can start again from scratch.
	ctx, cancel := context.WithCancel(context.Background())
	messages, err = l.Listen(ctx, dup[:1])
	if err != nil {
		cancel()
		t.Fatalf("Listen after rollback: %v", err)
	}
	cancel()
	for range messages {
	}
}
