package platform

import (
	"errors"
	"testing"
)

func TestParseVirtualKey(t *testing.T) {
	tests := []struct {
		text string
		want VirtualKey
	}{
		{"c", VKC},
		{"C", VKC},
		{"  z ", VKZ},
		{"7", VK0 + 7},
		{"F1", VKF1},
		{"f24", VKF24},
		{"Space", VKSpace},
		{"return", VKReturn},
		{"ENTER", VKReturn},
		{"esc", VKEscape},
		{"PageUp", VKPrior},
		{"pgdn", VKNext},
		{"numpad5", VKNumpad0 + 5},
		{"backquote", VKOem3},
		{"Control", VKControl},
		{"lwin", VKLWin},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseVirtualKey(tt.text)
			if err != nil {
				t.Fatalf("ParseVirtualKey(%q) returned error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Fatalf("ParseVirtualKey(%q) = %s (0x%X), want %s (0x%X)", tt.text, got, uint16(got), tt.want, uint16(tt.want))
			}
		})
	}
}

func TestParseVirtualKeyUnknown(t *testing.T) {
	for _, text := range []string{"", "none", "f25", "ctrl+c", "Hyper", "\u212A"} {
		_, err := ParseVirtualKey(text)
		var unknown *UnknownKeyError
		if !errors.As(err, &unknown) {
			t.Fatalf("ParseVirtualKey(%q) error = %v, want *UnknownKeyError", text, err)
		}
		if unknown.Text != text {
			t.Fatalf("UnknownKeyError.Text = %q, want original %q", unknown.Text, text)
		}
	}
}

func TestVirtualKeyIsModifier(t *testing.T) {
	for _, vk := range []VirtualKey{VKShift, VKControl, VKMenu, VKLShift, VKRControl, VKLMenu, VKLWin, VKRWin} {
		if !vk.IsModifier() {
			t.Errorf("%s.IsModifier() = false, want true", vk)
		}
	}
	for _, vk := range []VirtualKey{VKC, VKF1, VKSpace, VKApps, VKCapital} {
		if vk.IsModifier() {
			t.Errorf("%s.IsModifier() = true, want false", vk)
		}
	}
}

func TestVirtualKeyStringRoundTrip(t *testing.T) {
	for vk, name := range keyNames {
		got, err := ParseVirtualKey(name)
		if err != nil {
			t.Fatalf("ParseVirtualKey(%q) returned error: %v", name, err)
		}
		if got != vk {
			t.Fatalf("ParseVirtualKey(%q) = 0x%X, want 0x%X", name, uint16(got), uint16(vk))
		}
	}
	if got := VirtualKey(0xFF).String(); got != "0xFF" {
		t.Fatalf("String() of unnamed key = %q, want 0xFF", got)
	}
}

func TestParseModifier(t *testing.T) {
	tests := []struct {
		text string
		want Modifiers
	}{
		{"ctrl", ModControl},
		{"CONTROL", ModControl},
		{" Shift ", ModShift},
		{"alt", ModAlt},
		{"win", ModWin},
		{"Windows", ModWin},
		{"super", ModWin},
	}
	for _, tt := range tests {
		got, err := ParseModifier(tt.text)
		if err != nil {
			t.Fatalf("ParseModifier(%q) returned error: %v", tt.text, err)
		}
		if got != tt.want {
			t.Fatalf("ParseModifier(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}

	_, err := ParseModifier("hyper")
	var unknown *UnknownModifierError
	if !errors.As(err, &unknown) || unknown.Text != "hyper" {
		t.Fatalf("ParseModifier(hyper) error = %v, want UnknownModifierError{hyper}", err)
	}
}

func TestModifiersUnion(t *testing.T) {
	m := ModShift | ModControl | ModShift
	if m != ModControl|ModShift {
		t.Fatalf("duplicate union changed the set: %s", m)
	}
	if !m.Has(ModControl) || !m.Has(ModShift) || m.Has(ModAlt) {
		t.Fatalf("Has reported wrong membership for %s", m)
	}
	if got := (ModWin | ModAlt | ModShift | ModControl).String(); got != "Control + Shift + Alt + Win" {
		t.Fatalf("String() = %q", got)
	}
	if got := Modifiers(0).String(); got != "None" {
		t.Fatalf("empty String() = %q, want None", got)
	}
}
