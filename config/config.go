package config

import (
	"fmt"
	"strconv"
	"strings"

	"ripclip/platform"
)

// DefaultTemplate is written verbatim when no configuration file exists.
const DefaultTemplate = `max_stack_size = 100
show_tray_icon = true
pop_keybinding = Control + Shift + C
swap_keybinding = None
clear_keybinding = None
prevent_duplicate_push = false
`

const defaultMaxStackSize uint = 100

// Config holds the options read from ripclip.conf. It is built once at
// startup and only read afterwards.
type Config struct {
	// MaxStackSize is nil when the stack is unbounded.
	MaxStackSize         *uint   `json:"max_stack_size"`
	ShowTrayIcon         bool    `json:"show_tray_icon"`
	PopKeybinding        *Hotkey `json:"pop_keybinding"`
	SwapKeybinding       *Hotkey `json:"swap_keybinding"`
	ClearKeybinding      *Hotkey `json:"clear_keybinding"`
	PreventDuplicatePush bool    `json:"prevent_duplicate_push"`
}

// Hotkey is a trigger key plus the modifiers held with it.
type Hotkey struct {
	Key       platform.VirtualKey
	Modifiers platform.Modifiers
}

// Default returns the built-in configuration.
func Default() *Config {
	size := defaultMaxStackSize
	return &Config{
		MaxStackSize: &size,
		ShowTrayIcon: true,
		PopKeybinding: &Hotkey{
			Key:       platform.VKC,
			Modifiers: platform.ModControl | platform.ModShift,
		},
	}
}

// String renders the hotkey in configuration syntax, e.g. "Control + Shift + C".
func (h Hotkey) String() string {
	return strings.Join(append(h.Modifiers.Names(), h.Key.String()), " + ")
}

// MarshalText implements encoding.TextMarshaler.
func (h Hotkey) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Format renders c in ripclip.conf syntax. Formatting Default() yields
// DefaultTemplate.
func (c *Config) Format() string {
	var b strings.Builder
	maxSize := "none"
	if c.MaxStackSize != nil {
		maxSize = strconv.FormatUint(uint64(*c.MaxStackSize), 10)
	}
	fmt.Fprintf(&b, "%s = %s\n", optMaxStackSize, maxSize)
	fmt.Fprintf(&b, "%s = %t\n", optShowTrayIcon, c.ShowTrayIcon)
	fmt.Fprintf(&b, "%s = %s\n", optPopKeybinding, formatBinding(c.PopKeybinding))
	fmt.Fprintf(&b, "%s = %s\n", optSwapKeybinding, formatBinding(c.SwapKeybinding))
	fmt.Fprintf(&b, "%s = %s\n", optClearKeybinding, formatBinding(c.ClearKeybinding))
	fmt.Fprintf(&b, "%s = %t\n", optPreventDuplicatePush, c.PreventDuplicatePush)
	return b.String()
}

func formatBinding(h *Hotkey) string {
	if h == nil {
		return "None"
	}
	return h.String()
}
