// Package localstore is a small best-effort key/value store on SQLite for
// per-user state that never reaches the document store: draft rows and the
// wishlist.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrMalformed is returned when a stored value cannot be decoded. Callers
// replace such values with their defaults.
var ErrMalformed = errors.New("malformed stored value")

// KV is the persistence surface used by the draft book and the wishlist.
type KV interface {
	Load(ctx context.Context, namespace, key string, v any) (bool, error)
	Save(ctx context.Context, namespace, key string, v any) error
	Remove(ctx context.Context, namespace, key string) error
}

var _ KV = (*Store)(nil)

// OpenSQLite opens (or creates) a SQLite database at the given path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while a write is in flight.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

// New creates the store and its table.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return s, nil
}

// Open is OpenSQLite followed by New.
func Open(path string) (*Store, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load decodes the value stored under (namespace, key) into v. It reports
// false when nothing is stored and wraps ErrMalformed when decoding fails.
func (s *Store) Load(ctx context.Context, namespace, key string, v any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE namespace = ? AND key = ?`, namespace, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s/%s: %w", namespace, key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %s/%s: %v", ErrMalformed, namespace, key, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, namespace, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", namespace, key, err)
	}
	return s.SaveRaw(ctx, namespace, key, string(raw))
}

// SaveRaw stores raw as-is, without checking that it is valid JSON.
func (s *Store) SaveRaw(ctx context.Context, namespace, key, raw string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, key, raw, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, namespace, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE namespace = ? AND key = ?`, namespace, key); err != nil {
		return fmt.Errorf("remove %s/%s: %w", namespace, key, err)
	}
	return nil
}
