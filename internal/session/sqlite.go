package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	turns_json TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLite is a Store backed by a local SQLite database, for deployments that
// need sessions to survive restarts.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the session database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get returns the session's history, or an empty history for unknown ids.
func (s *SQLite) Get(ctx context.Context, id string) ([]Turn, error) {
	var turnsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT turns_json FROM sessions WHERE id = ?`, id).Scan(&turnsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var turns []Turn
	if err := json.Unmarshal([]byte(turnsJSON), &turns); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return turns, nil
}

// Put replaces the session's history.
func (s *SQLite) Put(ctx context.Context, id string, turns []Turn) error {
	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, turns_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET turns_json = excluded.turns_json, updated_at = excluded.updated_at
	`, id, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

// Clear removes the session. Unknown ids are a no-op.
func (s *SQLite) Clear(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear session %s: %w", id, err)
	}
	return nil
}
