package storage

import (
	"fmt"
	"time"
)

// DailyStats represents statistics for a single day
type DailyStats struct {
	Date             string `json:"date"`
	TotalEvents      int    `json:"total_events"`
	ClipboardChanges int    `json:"clipboard_changes"`
	HotkeyPresses    int    `json:"hotkey_presses"`
}

// Kind names as written by the agent.
const (
	kindClipboardChanged = "clipboard_changed"
	kindHotkeyPressed    = "hotkey_pressed"
)

// KindCounts returns the number of events per kind
func (db *DB) KindCounts() (map[string]int, error) {
	return db.countBy("kind")
}

// ActionCounts returns the number of hotkey presses per action
func (db *DB) ActionCounts() (map[string]int, error) {
	return db.countBy("action")
}

func (db *DB) countBy(column string) (map[string]int, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM events
		WHERE %[1]s != ''
		GROUP BY %[1]s
	`, column)

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s counts: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s counts: %w", column, err)
		}
		counts[key] = n
	}

	return counts, rows.Err()
}

// DailyCounts retrieves statistics grouped by UTC date for the last N days
func (db *DB) DailyCounts(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp / 1000, 'unixepoch') as date,
			COUNT(*) as total_events,
			SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) as clipboard_changes,
			SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) as hotkey_presses
		FROM events
		WHERE timestamp >= ?
		GROUP BY date
		ORDER BY date DESC
	`

	since := time.Now().AddDate(0, 0, -days).UnixMilli()
	rows, err := db.conn.Query(query, kindClipboardChanged, kindHotkeyPressed, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		if err := rows.Scan(&s.Date, &s.TotalEvents, &s.ClipboardChanges, &s.HotkeyPresses); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
