//go:build !windows

package platform

import (
	"context"
	"errors"
	"testing"
)

func TestNativeOperationsUnsupported(t *testing.T) {
	if _, err := GetModuleHandle(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("GetModuleHandle error = %v", err)
	}
	if _, err := RegisterClass(nil, nil, "x"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("RegisterClass error = %v", err)
	}
	if _, err := CreateWindow(0, nil, 0, 0, 0, 0, 0, nil); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("CreateWindow error = %v", err)
	}
	if err := AddClipboardListener(nil); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("AddClipboardListener error = %v", err)
	}
	if _, err := GetMessage(nil, 0, 0); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("GetMessage error = %v", err)
	}
}

func TestUnsupportedListener(t *testing.T) {
	ch, err := NewListener().Listen(context.Background(), nil)
	if !errors.Is(err, ErrUnsupported) || ch != nil {
		t.Fatalf("Listen = %v, %v; want nil, ErrUnsupported", ch, err)
	}
}
