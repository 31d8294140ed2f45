package web

import (
	"testing"
)

func newFakeClient(h *Hub, buffer int) *Client {
	return &Client{hub: h, send: make(chan []byte, buffer)}
}

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()
	c := newFakeClient(h, 1)

	h.Register(c)
	if got := h.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() = %d, want 1", got)
	}

	h.Unregister(c)
	h.Unregister(c)
	if got := h.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}
	if _, ok := <-c.send; ok {
		t.Fatal("send channel still open")
	}
}

func TestHubBroadcastDeliversJSON(t *testing.T) {
	h := NewHub()
	c := newFakeClient(h, 1)
	h.Register(c)

	h.Broadcast(Message{Type: MessageTypeStatus, Data: StatusMessage{Listening: true}})

	got := string(<-c.send)
	want := `{"type":"status","data":{"listening":true}}`
	if got != want {
		t.Fatalf("payload = %s, want %s", got, want)
	}
}

func TestHubCloseAll(t *testing.T) {
	h := NewHub()
	for i := 0; i < 3; i++ {
		h.Register(newFakeClient(h, 1))
	}
	h.CloseAll()
	if got := h.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	slow := newFakeClient(h, 1)
	fast := newFakeClient(h, 4)
	h.Register(slow)
	h.Register(fast)

	h.Broadcast(Message{Type: MessageTypeStatus, Data: StatusMessage{}})
	h.Broadcast(Message{Type: MessageTypeStatus, Data: StatusMessage{}})

	if got := h.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() = %d, want 1", got)
	}
	if len(fast.send) != 2 {
		t.Fatalf("fast client got %d messages, want 2", len(fast.send))
	}
}
