// Package sqlite is the local fallback mode: a single on-disk database serving
// as both credential store and session storage when no backend is reachable.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	role          TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS session (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	payload TEXT NOT NULL
);
`

// Open opens (creating if needed) the local database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A local store has exactly one writer: this process.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return NewStore(db), nil
}

// Store implements both ports.CredentialStore and ports.SessionStore over one
// database handle.
type Store struct {
	db *sql.DB
}

// NewStore wraps an existing handle; the schema must already be applied.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}
