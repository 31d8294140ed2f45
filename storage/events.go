package storage

import (
	"fmt"
	"time"
)

// Event is one journaled listener event.
type Event struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Kind        string    `json:"kind"`
	Action      string    `json:"action,omitempty"`
	MessageCode uint32    `json:"message_code"`
}

// SaveEvent saves an event to the database. An empty RunID is replaced by
// the DB's run id and a zero Timestamp by the current time.
func (db *DB) SaveEvent(e *Event) error {
	if e.RunID == "" {
		e.RunID = db.runID
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `
		INSERT INTO events (run_id, timestamp, kind, action, message_code)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		e.RunID, e.Timestamp.UnixMilli(), e.Kind, e.Action, e.MessageCode,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	e.ID = id
	return nil
}

// RecentEvents retrieves events newest first, with pagination
func (db *DB) RecentEvents(limit, offset int) ([]Event, error) {
	return db.RecentEventsOfKind("", limit, offset)
}

// RecentEventsOfKind is RecentEvents restricted to one kind. An empty kind
// matches every event.
func (db *DB) RecentEventsOfKind(kind string, limit, offset int) ([]Event, error) {
	query := `
		SELECT id, run_id, timestamp, kind, action, message_code
		FROM events
		WHERE ? = '' OR kind = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, kind, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ms int64

		if err := rows.Scan(&e.ID, &e.RunID, &ms, &e.Kind, &e.Action, &e.MessageCode); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ms).UTC()

		events = append(events, e)
	}

	return events, rows.Err()
}

// EventCount returns the total number of events
func (db *DB) EventCount() (int, error) {
	return db.EventCountOfKind("")
}

// EventCountOfKind counts events of one kind, or all of them for "".
func (db *DB) EventCountOfKind(kind string) (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM events WHERE ? = '' OR kind = ?", kind, kind).Scan(&count)
	return count, err
}

// Prune deletes events older than the cutoff and reports how many went.
func (db *DB) Prune(olderThan time.Time) (int64, error) {
	result, err := db.conn.Exec(`DELETE FROM events WHERE timestamp < ?`, olderThan.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
