package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// FileName is the journal database inside the application directory.
const FileName = "ripclip.db"

// DB is the event journal. Every event saved through one DB carries the
// same run id.
type DB struct {
	conn  *sql.DB
	runID string
}

// Open opens the database and initializes the schema
func Open(dir string) (*DB, error) {
	dbPath := filepath.Join(dir, FileName)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db := &DB{conn: conn, runID: uuid.NewString()}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// RunID identifies this process lifetime in the journal.
func (db *DB) RunID() string {
	return db.runID
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,

		-- Unix milliseconds, UTC
		timestamp INTEGER NOT NULL,

		kind TEXT NOT NULL,
		action TEXT NOT NULL DEFAULT '',
		message_code INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_events_run_id ON events(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`

	_, err := db.conn.Exec(schema)
	return err
}
