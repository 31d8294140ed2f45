package config

import (
	"log/slog"
	"strings"

	"ripclip/platform"
)

// ParseHotkey parses a binding such as "control + shift + c". The last
// "+"-separated token is the key and every earlier token a modifier. A lone
// "none" yields a nil Hotkey. Errors are *LineError.
func ParseHotkey(text string) (*Hotkey, error) {
	hk, lineErr := parseHotkey(text)
	if lineErr != nil {
		return nil, lineErr
	}
	return hk, nil
}

func parseHotkey(text string) (*Hotkey, *LineError) {
	tokens := strings.Split(text, "+")
	rawKey := strings.TrimSpace(tokens[len(tokens)-1])
	rest := tokens[:len(tokens)-1]

	if lowerASCII(rawKey) == "none" {
		if len(rest) > 0 {
			return nil, &LineError{Kind: ModifierWithNoKey}
		}
		return nil, nil
	}

	key, err := platform.ParseVirtualKey(rawKey)
	if err != nil {
		return nil, &LineError{Kind: UnknownKey, Value: rawKey}
	}
	if key.IsModifier() {
		slog.Warn("Encountered a modifier key in key position while parsing hotkey. Is this intended?",
			"key", rawKey)
	}

	var mods platform.Modifiers
	for i := len(rest) - 1; i >= 0; i-- {
		token := strings.TrimSpace(rest[i])
		mod, err := platform.ParseModifier(token)
		if err != nil {
			return nil, &LineError{Kind: UnknownModifier, Value: token}
		}
		mods |= mod
	}

	return &Hotkey{Key: key, Modifiers: mods}, nil
}
