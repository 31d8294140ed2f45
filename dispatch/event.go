package dispatch

import (
	"fmt"
	"time"

	"ripclip/platform"
)

// Time source, replaced in tests.
var now = time.Now

// Kind classifies a message from the listener.
type Kind int

const (
	Other Kind = iota
	ClipboardChanged
	HotkeyPressed
	Quit
)

var kindNames = map[Kind]string{
	Other:            "other",
	ClipboardChanged: "clipboard_changed",
	HotkeyPressed:    "hotkey_pressed",
	Quit:             "quit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return Other, fmt.Errorf("unknown event kind %q", s)
}

// Event is a classified message.
type Event struct {
	Kind   Kind      `json:"kind"`
	Action Action    `json:"action,omitempty"`
	Code   uint32    `json:"code"`
	At     time.Time `json:"at"`
}

// Classifier maps listener messages to events using the registered bindings.
type Classifier struct {
	actions map[int32]Action
}

func NewClassifier(bindings []Binding) *Classifier {
	actions := make(map[int32]Action, len(bindings))
	for _, b := range bindings {
		actions[b.ID] = b.Action
	}
	return &Classifier{actions: actions}
}

// Classify never fails; anything unrecognised is an Other event.
func (c *Classifier) Classify(msg platform.Message) Event {
	ev := Event{Kind: Other, Code: msg.Code, At: now()}
	switch msg.Code {
	case platform.WMClipboardUpdate:
		ev.Kind = ClipboardChanged
	case platform.WMQuit:
		ev.Kind = Quit
	case platform.WMHotkey:
		// wParam carries the id passed to RegisterHotKey.
		if action, ok := c.actions[int32(msg.WParam)]; ok {
			ev.Kind = HotkeyPressed
			ev.Action = action
		}
	}
	return ev
}
