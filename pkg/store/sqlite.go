package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStorage keeps persisted trees in a single SQLite database, one row
// per key. Useful when several tools share one state file, or when the
// state directory lives on a filesystem where many small files are
// awkward.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens (creating if needed) the state database at path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open state database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS tree_state (
			key        TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create tree_state table: %w", err)
	}

	return &SQLiteStorage{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Load implements Storage.
func (s *SQLiteStorage) Load(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM tree_state WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", key, ErrNoState)
	}
	if err != nil {
		return nil, fmt.Errorf("load state %q: %w", key, err)
	}
	return data, nil
}

// Save implements Storage.
func (s *SQLiteStorage) Save(key string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO tree_state (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, key, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	return nil
}

// Delete removes the persisted blob for a key. Missing keys are not an error.
func (s *SQLiteStorage) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM tree_state WHERE key = ?`, key)
	return err
}
