// Package store writes extracted declarations to a SQLite database for
// code-intelligence indexes. Each file's rows are replaced as a unit; nothing
// is read back by later extractions.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the four export tables.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Open opens the database at dbPath and migrates it.
func Open(dbPath string) (*Store, error) {
	s, err := NewStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  hash            TEXT NOT NULL,
  parser          TEXT NOT NULL,
  version         TEXT NOT NULL,
  extracted_at    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS symbols (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  kind            TEXT NOT NULL,
  name            TEXT NOT NULL,
  is_public       BOOLEAN NOT NULL DEFAULT FALSE,
  ordinal         INTEGER NOT NULL,
  modifiers       TEXT,
  type_expr       TEXT,
  trait_name      TEXT
);

CREATE TABLE IF NOT EXISTS members (
  id              INTEGER PRIMARY KEY,
  symbol_id       INTEGER NOT NULL REFERENCES symbols(id),
  kind            TEXT NOT NULL,
  name            TEXT NOT NULL,
  type_expr       TEXT,
  is_public       BOOLEAN NOT NULL DEFAULT FALSE,
  is_mut          BOOLEAN NOT NULL DEFAULT FALSE,
  ordinal         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS uses (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  path            TEXT NOT NULL,
  ordinal         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind);
CREATE INDEX IF NOT EXISTS idx_members_symbol ON members(symbol_id);
CREATE INDEX IF NOT EXISTS idx_uses_file ON uses(file_id);
`
