package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ripclip/dispatch"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 1000
	defaultStatsDays  = 7
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) requireJournal(w http.ResponseWriter) bool {
	if s.db == nil {
		http.Error(w, "Event journal is disabled", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleConfig returns the loaded configuration. Hotkeys render as
// "Control + Shift + C", unbound ones and an unbounded stack as null.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	writeJSON(w, s.config)
}

// handleEvents returns paginated journal entries, newest first. An optional
// kind parameter such as "hotkey_pressed" restricts them to one event kind.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) || !s.requireJournal(w) {
		return
	}

	var kind string
	if raw := r.URL.Query().Get("kind"); raw != "" {
		var k dispatch.Kind
		if err := k.UnmarshalText([]byte(raw)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = k.String()
	}

	limit := queryInt(r, "limit", defaultEventLimit, 1)
	if limit > maxEventLimit {
		limit = maxEventLimit
	}
	offset := queryInt(r, "offset", 0, 0)

	events, err := s.db.RecentEventsOfKind(kind, limit, offset)
	if err != nil {
		slog.Error("Failed to get events", "error", err)
		http.Error(w, "Failed to get events", http.StatusInternalServerError)
		return
	}

	total, err := s.db.EventCountOfKind(kind)
	if err != nil {
		slog.Error("Failed to get event count", "error", err)
		http.Error(w, "Failed to get events", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"events": events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// handleStats returns per-kind, per-action and daily counts
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) || !s.requireJournal(w) {
		return
	}

	days := queryInt(r, "days", defaultStatsDays, 1)

	total, err := s.db.EventCount()
	if err != nil {
		slog.Error("Failed to get event count", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	kinds, err := s.db.KindCounts()
	if err != nil {
		slog.Error("Failed to get kind counts", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	actions, err := s.db.ActionCounts()
	if err != nil {
		slog.Error("Failed to get action counts", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.DailyCounts(days)
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"total":   total,
		"kinds":   kinds,
		"actions": actions,
		"daily":   daily,
		"days":    days,
	})
}

// handleStatus returns the agent status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	writeJSON(w, map[string]any{
		"run_id":         s.runID,
		"started":        s.started.UTC().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"listening":      s.listening.Load(),
		"journal":        s.db != nil,
		"clients":        s.hub.ClientCount(),
	})
}

// queryInt reads an integer query parameter, falling back to def when it is
// missing, malformed or below floor.
func queryInt(r *http.Request, name string, def, floor int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < floor {
		return def
	}
	return n
}
