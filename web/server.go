package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ripclip/config"
	"ripclip/dispatch"
	"ripclip/storage"
)

//go:embed static/*
var staticFiles embed.FS

// A nil CheckOrigin rejects cross-origin handshakes, so only the status page
// served from the same host can subscribe.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server is the read-only diagnostics API.
type Server struct {
	db      *storage.DB
	config  *config.Config
	addr    string
	hub     *Hub
	runID   string
	started time.Time

	listening atomic.Bool
	boundAddr atomic.Value // string
}

// NewServer creates a new web server. db may be nil when the journal is
// disabled; the journal endpoints then answer 503.
func NewServer(db *storage.DB, cfg *config.Config, addr string) *Server {
	runID := uuid.NewString()
	if db != nil {
		runID = db.RunID()
	}
	return &Server{
		db:      db,
		config:  cfg,
		addr:    addr,
		hub:     NewHub(),
		runID:   runID,
		started: time.Now(),
	}
}

// Hub returns the server's WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	return mux, nil
}

// Start listens on the configured address and serves until ctx is
// cancelled. It returns once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	if err := requireLoopback(s.addr); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.boundAddr.Store(ln.Addr().String())

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Web server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.hub.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Web server shutdown", "error", err)
		}
		slog.Info("Web server stopped")
	}()

	slog.Info("Starting web server", "url", s.URL())
	return nil
}

// requireLoopback rejects addresses reachable from other machines, including
// an empty host, which listens on every interface.
func requireLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid web address %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return fmt.Errorf("web address %q is not a loopback address", addr)
}

// Addr returns the bound address after Start, or the configured one.
func (s *Server) Addr() string {
	if v, ok := s.boundAddr.Load().(string); ok {
		return v
	}
	return s.addr
}

// URL returns the status page URL.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/"
}

// SetListening records whether the clipboard listener is running and tells
// connected clients.
func (s *Server) SetListening(listening bool) {
	s.listening.Store(listening)
	s.hub.Broadcast(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Listening: listening},
	})
}

// BroadcastEvent pushes a classified event to all connected clients.
func (s *Server) BroadcastEvent(ev dispatch.Event) {
	s.hub.Broadcast(Message{Type: MessageTypeEvent, Data: ev})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	s.hub.Register(client)

	go client.writePump()
	go client.readPump()
}
