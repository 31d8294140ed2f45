// Package dispatch turns the configured keybindings into hotkey
// registrations and classifies the messages the listener delivers.
package dispatch

import (
	"ripclip/config"
	"ripclip/platform"
)

// Action is what a hotkey asks the stack to do.
type Action string

const (
	ActionPop   Action = "pop"
	ActionSwap  Action = "swap"
	ActionClear Action = "clear"
)

// Hotkey ids are fixed per action, bound or not.
const (
	popID   int32 = 1
	swapID  int32 = 2
	clearID int32 = 3
)

// Binding ties a hotkey id to its action and key combination.
type Binding struct {
	ID     int32
	Action Action
	Hotkey config.Hotkey
}

// Bindings returns the bound actions of cfg in pop, swap, clear order.
func Bindings(cfg *config.Config) []Binding {
	candidates := []struct {
		id     int32
		action Action
		hotkey *config.Hotkey
	}{
		{popID, ActionPop, cfg.PopKeybinding},
		{swapID, ActionSwap, cfg.SwapKeybinding},
		{clearID, ActionClear, cfg.ClearKeybinding},
	}

	var bindings []Binding
	for _, c := range candidates {
		if c.hotkey == nil {
			continue
		}
		bindings = append(bindings, Binding{ID: c.id, Action: c.action, Hotkey: *c.hotkey})
	}
	return bindings
}

// Registrations converts bindings for platform.Listener.
func Registrations(bindings []Binding) []platform.HotkeyRegistration {
	regs := make([]platform.HotkeyRegistration, 0, len(bindings))
	for _, b := range bindings {
		regs = append(regs, platform.HotkeyRegistration{
			ID:        b.ID,
			Modifiers: b.Hotkey.Modifiers,
			Key:       b.Hotkey.Key,
		})
	}
	return regs
}

// Conflict lists actions that share one key combination. Only the first of
// them can be registered with the OS.
type Conflict struct {
	Hotkey  config.Hotkey
	Actions []Action
}

// Conflicts reports every key combination bound to more than one action, in
// order of first appearance.
func Conflicts(bindings []Binding) []Conflict {
	index := make(map[config.Hotkey]int)
	var groups []Conflict
	for _, b := range bindings {
		if i, ok := index[b.Hotkey]; ok {
			groups[i].Actions = append(groups[i].Actions, b.Action)
			continue
		}
		index[b.Hotkey] = len(groups)
		groups = append(groups, Conflict{Hotkey: b.Hotkey, Actions: []Action{b.Action}})
	}

	var conflicts []Conflict
	for _, g := range groups {
		if len(g.Actions) > 1 {
			conflicts = append(conflicts, g)
		}
	}
	return conflicts
}

// Dedupe keeps the first binding of each key combination.
func Dedupe(bindings []Binding) []Binding {
	seen := make(map[config.Hotkey]bool, len(bindings))
	var unique []Binding
	for _, b := range bindings {
		if seen[b.Hotkey] {
			continue
		}
		seen[b.Hotkey] = true
		unique = append(unique, b)
	}
	return unique
}
