package config

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

const (
	optMaxStackSize         = "max_stack_size"
	optShowTrayIcon         = "show_tray_icon"
	optPreventDuplicatePush = "prevent_duplicate_push"
	optPopKeybinding        = "pop_keybinding"
	optSwapKeybinding       = "swap_keybinding"
	optClearKeybinding      = "clear_keybinding"
)

// Parse reads a ripclip.conf stream. Options start from Default() and later
// lines override earlier ones. Parsing stops at the first bad line; errors
// are *ParseError and no partial Config is returned.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	br := bufio.NewReader(r)

	for i := 0; ; i++ {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, &ParseError{IO: readErr}
		}
		if raw == "" && readErr != nil {
			break
		}

		if err := cfg.applyLine(raw); err != nil {
			return nil, &ParseError{Line: i, Cause: err}
		}

		if readErr != nil {
			break
		}
	}
	return cfg, nil
}

func (c *Config) applyLine(raw string) *LineError {
	line := strings.TrimSpace(lowerASCII(raw))
	if line == "" {
		return nil
	}

	pieces := strings.Split(line, "=")
	if len(pieces) != 2 {
		return &LineError{Kind: Malformed}
	}
	name := strings.TrimSpace(pieces[0])
	value := strings.TrimSpace(pieces[1])

	switch name {
	case optMaxStackSize:
		if value == "none" {
			c.MaxStackSize = nil
			return nil
		}
		// One leading plus sign is accepted, as in "+5".
		n, err := strconv.ParseUint(strings.TrimPrefix(value, "+"), 10, strconv.IntSize)
		if err != nil {
			return expectedInt(value, err)
		}
		size := uint(n)
		c.MaxStackSize = &size
	case optShowTrayIcon:
		return parseBool(value, &c.ShowTrayIcon)
	case optPreventDuplicatePush:
		return parseBool(value, &c.PreventDuplicatePush)
	case optPopKeybinding:
		return parseBinding(value, &c.PopKeybinding)
	case optSwapKeybinding:
		return parseBinding(value, &c.SwapKeybinding)
	case optClearKeybinding:
		return parseBinding(value, &c.ClearKeybinding)
	default:
		return &LineError{Kind: UnknownOption, Value: name}
	}
	return nil
}

// lowerASCII folds only A-Z; the rest of Unicode is left alone.
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func parseBool(value string, dst *bool) *LineError {
	switch value {
	case "true":
		*dst = true
	case "false":
		*dst = false
	default:
		return &LineError{Kind: ExpectedBool, Value: value}
	}
	return nil
}

func parseBinding(value string, dst **Hotkey) *LineError {
	hk, err := parseHotkey(value)
	if err != nil {
		return err
	}
	*dst = hk
	return nil
}
