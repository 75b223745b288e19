// Package journal records reload and crash events of sandbox sessions in
// SQLite. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LocalSession names events recorded by the terminal sandbox.
const LocalSession = "local"

// Store manages the SQLite database connection for the event journal.
type Store struct {
	db *sql.DB
}

// ReloadEntry is one reload attempt.
type ReloadEntry struct {
	ID        int64
	Session   string
	Module    string
	Outcome   string // "reloaded" or "reload_failed"
	Message   string // Diagnostic of a failed reload
	CreatedAt time.Time
}

// FailureEntry is one entry-point failure.
type FailureEntry struct {
	ID        int64
	Session   string
	Module    string
	Kind      string
	Line      string
	Message   string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("journal: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			module TEXT NOT NULL,
			outcome TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reloads_module ON reloads(module);

		CREATE TABLE IF NOT EXISTS failures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			module TEXT NOT NULL,
			kind TEXT NOT NULL,
			line TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_failures_module ON failures(module);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Session returns a recorder that tags events with the session name.
func (s *Store) Session(name string) *Session {
	return &Session{store: s, name: name}
}

// SaveReload records a reload attempt and returns the ID of the new row.
func (s *Store) SaveReload(session, module, outcome, message string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO reloads (session, module, outcome, message) VALUES (?, ?, ?, ?)",
		session, module, outcome, message,
	)
	if err != nil {
		return 0, fmt.Errorf("journal: cannot save reload: %w", err)
	}
	return result.LastInsertId()
}

// SaveFailure records an entry-point failure and returns the ID of the new row.
func (s *Store) SaveFailure(session, module, kind, line, message string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO failures (session, module, kind, line, message) VALUES (?, ?, ?, ?, ?)",
		session, module, kind, line, message,
	)
	if err != nil {
		return 0, fmt.Errorf("journal: cannot save failure: %w", err)
	}
	return result.LastInsertId()
}

// RecentReloads returns the latest reload attempts, newest first.
func (s *Store) RecentReloads(limit int) ([]ReloadEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session, module, outcome, message, created_at
		 FROM reloads
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query reloads: %w", err)
	}
	defer rows.Close()

	var entries []ReloadEntry
	for rows.Next() {
		var e ReloadEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Session, &e.Module, &e.Outcome, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("journal: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}
	return entries, nil
}

// RecentFailures returns the latest entry-point failures, newest first.
func (s *Store) RecentFailures(limit int) ([]FailureEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session, module, kind, line, message, created_at
		 FROM failures
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query failures: %w", err)
	}
	defer rows.Close()

	var entries []FailureEntry
	for rows.Next() {
		var e FailureEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Session, &e.Module, &e.Kind, &e.Line, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("journal: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// Session records events of one sandbox session.
type Session struct {
	store *Store
	name  string
}

// RecordReload journals a reload attempt.
func (s *Session) RecordReload(module, outcome, message string) error {
	_, err := s.store.SaveReload(s.name, module, outcome, message)
	return err
}

// RecordFailure journals an entry-point failure.
func (s *Session) RecordFailure(module, kind, line, message string) error {
	_, err := s.store.SaveFailure(s.name, module, kind, line, message)
	return err
}
