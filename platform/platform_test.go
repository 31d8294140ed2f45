package platform

import (
	"errors"
	"strings"
	"testing"
)

func TestHandleConstructorsRejectNull(t *testing.T) {
	if _, err := newModuleHandle(0); !errors.Is(err, ErrNullHandle) {
		t.Fatalf("newModuleHandle(0) error = %v, want ErrNullHandle", err)
	}
	if _, err := newWindowHandle(0); !errors.Is(err, ErrNullHandle) {
		t.Fatalf("newWindowHandle(0) error = %v, want ErrNullHandle", err)
	}
	if _, err := newClassAtom(0, "x"); !errors.Is(err, ErrNullHandle) {
		t.Fatalf("newClassAtom(0) error = %v, want ErrNullHandle", err)
	}

	w, err := newWindowHandle(0x1234)
	if err != nil || w.Raw() != 0x1234 {
		t.Fatalf("newWindowHandle(0x1234) = %v, %v", w, err)
	}
	c, err := newClassAtom(0xC001, "ripclip")
	if err != nil || c.Name() != "ripclip" {
		t.Fatalf("newClassAtom = %v, %v", c, err)
	}
	if !strings.Contains(c.String(), "0xC001") {
		t.Fatalf("ClassAtom.String() = %q, want atom value", c.String())
	}
}

func TestRawWindowOptional(t *testing.T) {
	if rawWindow(nil) != 0 {
		t.Fatal("rawWindow(nil) should be 0")
	}
	w, _ := newWindowHandle(42)
	if rawWindow(w) != 42 {
		t.Fatal("rawWindow should return the wrapped value")
	}
}

func TestMessageIsQuit(t *testing.T) {
	if !(Message{Code: WMQuit}).IsQuit() {
		t.Fatal("WM_QUIT should report IsQuit")
	}
	if (Message{Code: WMClipboardUpdate}).IsQuit() {
		t.Fatal("WM_CLIPBOARDUPDATE should not report IsQuit")
	}
}

func TestErrorCodeDescription(t *testing.T) {
	code := ErrorCode(2)
	desc, err := code.Description()
	if err != nil {
		t.Fatalf("Description() returned error: %v", err)
	}
	if desc == "" {
		t.Fatal("Description() returned empty text")
	}
	if !strings.Contains(code.Error(), desc) {
		t.Fatalf("Error() = %q, want it to contain %q", code.Error(), desc)
	}

	var target ErrorCode
	wrapped := errors.Join(errors.New("context"), code)
	if !errors.As(wrapped, &target) || target != code {
		t.Fatalf("errors.As did not recover the ErrorCode from %v", wrapped)
	}
}
