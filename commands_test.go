//go:build windows

package main

import "testing"

func TestKindFilter(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"hotkey_pressed", "hotkey_pressed", false},
		{"clipboard_changed", "clipboard_changed", false},
		{"Hotkey_Pressed", "", true},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		got, err := kindFilter(tt.name)
		if (err != nil) != tt.wantErr {
			t.Fatalf("kindFilter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("kindFilter(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
