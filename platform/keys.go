package platform

import (
	"fmt"
	"strings"
)

// VirtualKey is a Win32 virtual-key code.
type VirtualKey uint16

// Modifiers is a set of hotkey modifier flags. The bit values match the
// Win32 MOD_* constants accepted by RegisterHotKey.
type Modifiers uint8

const (
	ModAlt     Modifiers = 0x0001
	ModControl Modifiers = 0x0002
	ModShift   Modifiers = 0x0004
	ModWin     Modifiers = 0x0008
)

// Has reports whether every flag in other is also set in m.
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

// Names returns the canonical modifier names in Control, Shift, Alt, Win order.
func (m Modifiers) Names() []string {
	var names []string
	if m.Has(ModControl) {
		names = append(names, "Control")
	}
	if m.Has(ModShift) {
		names = append(names, "Shift")
	}
	if m.Has(ModAlt) {
		names = append(names, "Alt")
	}
	if m.Has(ModWin) {
		names = append(names, "Win")
	}
	return names
}

func (m Modifiers) String() string {
	if m == 0 {
		return "None"
	}
	return strings.Join(m.Names(), " + ")
}

// UnknownModifierError is returned when a token names no known modifier.
type UnknownModifierError struct {
	Text string
}

func (e *UnknownModifierError) Error() string {
	return fmt.Sprintf("unknown modifier %q", e.Text)
}

var modifierByName = map[string]Modifiers{
	"control": ModControl,
	"ctrl":    ModControl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"menu":    ModAlt,
	"win":     ModWin,
	"windows": ModWin,
	"super":   ModWin,
	"meta":    ModWin,
}

// ParseModifier parses a single modifier name, ignoring case and surrounding space.
func ParseModifier(text string) (Modifiers, error) {
	mod, ok := modifierByName[lowerASCII(strings.TrimSpace(text))]
	if !ok {
		return 0, &UnknownModifierError{Text: text}
	}
	return mod, nil
}

const (
	VKBack       VirtualKey = 0x08
	VKTab        VirtualKey = 0x09
	VKReturn     VirtualKey = 0x0D
	VKShift      VirtualKey = 0x10
	VKControl    VirtualKey = 0x11
	VKMenu       VirtualKey = 0x12
	VKPause      VirtualKey = 0x13
	VKCapital    VirtualKey = 0x14
	VKEscape     VirtualKey = 0x1B
	VKSpace      VirtualKey = 0x20
	VKPrior      VirtualKey = 0x21
	VKNext       VirtualKey = 0x22
	VKEnd        VirtualKey = 0x23
	VKHome       VirtualKey = 0x24
	VKLeft       VirtualKey = 0x25
	VKUp         VirtualKey = 0x26
	VKRight      VirtualKey = 0x27
	VKDown       VirtualKey = 0x28
	VKSnapshot   VirtualKey = 0x2C
	VKInsert     VirtualKey = 0x2D
	VKDelete     VirtualKey = 0x2E
	VK0          VirtualKey = 0x30
	VKA          VirtualKey = 0x41
	VKC          VirtualKey = 0x43
	VKV          VirtualKey = 0x56
	VKX          VirtualKey = 0x58
	VKZ          VirtualKey = 0x5A
	VKLWin       VirtualKey = 0x5B
	VKRWin       VirtualKey = 0x5C
	VKApps       VirtualKey = 0x5D
	VKNumpad0    VirtualKey = 0x60
	VKMultiply   VirtualKey = 0x6A
	VKAdd        VirtualKey = 0x6B
	VKSubtract   VirtualKey = 0x6D
	VKDecimal    VirtualKey = 0x6E
	VKDivide     VirtualKey = 0x6F
	VKF1         VirtualKey = 0x70
	VKF24        VirtualKey = 0x87
	VKNumLock    VirtualKey = 0x90
	VKScroll     VirtualKey = 0x91
	VKLShift     VirtualKey = 0xA0
	VKRShift     VirtualKey = 0xA1
	VKLControl   VirtualKey = 0xA2
	VKRControl   VirtualKey = 0xA3
	VKLMenu      VirtualKey = 0xA4
	VKRMenu      VirtualKey = 0xA5
	VKOem1       VirtualKey = 0xBA
	VKOemPlus    VirtualKey = 0xBB
	VKOemComma   VirtualKey = 0xBC
	VKOemMinus   VirtualKey = 0xBD
	VKOemPeriod  VirtualKey = 0xBE
	VKOem2       VirtualKey = 0xBF
	VKOem3       VirtualKey = 0xC0
	VKOem4       VirtualKey = 0xDB
	VKOem5       VirtualKey = 0xDC
	VKOem6       VirtualKey = 0xDD
	VKOem7       VirtualKey = 0xDE
)

// keyNames holds the canonical name of every named key. Letters, digits,
// numpad digits and function keys are derived in init.
var keyNames = map[VirtualKey]string{
	VKBack:      "Backspace",
	VKTab:       "Tab",
	VKReturn:    "Enter",
	VKShift:     "Shift",
	VKControl:   "Control",
	VKMenu:      "Alt",
	VKPause:     "Pause",
	VKCapital:   "CapsLock",
	VKEscape:    "Escape",
	VKSpace:     "Space",
	VKPrior:     "PageUp",
	VKNext:      "PageDown",
	VKEnd:       "End",
	VKHome:      "Home",
	VKLeft:      "Left",
	VKUp:        "Up",
	VKRight:     "Right",
	VKDown:      "Down",
	VKSnapshot:  "PrintScreen",
	VKInsert:    "Insert",
	VKDelete:    "Delete",
	VKLWin:      "LWin",
	VKRWin:      "RWin",
	VKApps:      "Apps",
	VKMultiply:  "Multiply",
	VKAdd:       "Add",
	VKSubtract:  "Subtract",
	VKDecimal:   "Decimal",
	VKDivide:    "Divide",
	VKNumLock:   "NumLock",
	VKScroll:    "ScrollLock",
	VKLShift:    "LShift",
	VKRShift:    "RShift",
	VKLControl:  "LControl",
	VKRControl:  "RControl",
	VKLMenu:     "LAlt",
	VKRMenu:     "RAlt",
	VKOem1:      "Semicolon",
	VKOemPlus:   "Equals",
	VKOemComma:  "Comma",
	VKOemMinus:  "Minus",
	VKOemPeriod: "Period",
	VKOem2:      "Slash",
	VKOem3:      "Backquote",
	VKOem4:      "LeftBracket",
	VKOem5:      "Backslash",
	VKOem6:      "RightBracket",
	VKOem7:      "Quote",
}

// keyAliases are accepted spellings beyond the lowercased canonical names.
var keyAliases = map[string]VirtualKey{
	"return":  VKReturn,
	"esc":     VKEscape,
	"ctrl":    VKControl,
	"menu":    VKMenu,
	"lctrl":   VKLControl,
	"rctrl":   VKRControl,
	"lmenu":   VKLMenu,
	"rmenu":   VKRMenu,
	"pgup":    VKPrior,
	"pgdn":    VKNext,
	"del":     VKDelete,
	"ins":     VKInsert,
	"plus":    VKOemPlus,
	"grave":   VKOem3,
	"capital": VKCapital,
	"scroll":  VKScroll,
	"prtsc":   VKSnapshot,
}

var keyByName = map[string]VirtualKey{}

func init() {
	for i := VirtualKey(0); i < 26; i++ {
		keyNames[VKA+i] = string(rune('A' + i))
	}
	for i := VirtualKey(0); i < 10; i++ {
		keyNames[VK0+i] = string(rune('0' + i))
		keyNames[VKNumpad0+i] = fmt.Sprintf("Numpad%d", i)
	}
	for i := VirtualKey(0); i <= VKF24-VKF1; i++ {
		keyNames[VKF1+i] = fmt.Sprintf("F%d", i+1)
	}
	for vk, name := range keyNames {
		keyByName[lowerASCII(name)] = vk
	}
	for alias, vk := range keyAliases {
		keyByName[alias] = vk
	}
}

// lowerASCII folds only A-Z, so names never match through Unicode case
// folding (the Kelvin sign is not "k").
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// UnknownKeyError is returned when a token names no known key.
type UnknownKeyError struct {
	Text string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %q", e.Text)
}

// ParseVirtualKey parses a key name, ignoring case and surrounding space.
func ParseVirtualKey(text string) (VirtualKey, error) {
	vk, ok := keyByName[lowerASCII(strings.TrimSpace(text))]
	if !ok {
		return 0, &UnknownKeyError{Text: text}
	}
	return vk, nil
}

// IsModifier reports whether the key is itself a modifier key.
func (k VirtualKey) IsModifier() bool {
	switch k {
	case VKShift, VKControl, VKMenu,
		VKLShift, VKRShift, VKLControl, VKRControl, VKLMenu, VKRMenu,
		VKLWin, VKRWin:
		return true
	}
	return false
}

func (k VirtualKey) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}
