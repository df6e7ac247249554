// Package cache provides a SQLite-backed TTL cache for *arr lookup responses.
package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store caches raw response bodies keyed by request URL.
type Store struct {
	db    *sql.DB
	owned bool
	now   func() time.Time
}

// Open opens (creating if needed) the cache database at path and applies the
// schema. Use ":memory:" for a throwaway cache.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// One connection keeps in-memory databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	s, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New wraps an existing database, creating the cache table if it is missing.
// Close does not close a database passed to New.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Get returns the response body stored under key. Expired rows and database
// errors read as a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	var (
		body      []byte
		expiresAt int64
	)
	row := s.db.QueryRowContext(ctx, "SELECT value, expires_at FROM lookup_cache WHERE key = ?", key)
	if err := row.Scan(&body, &expiresAt); err != nil {
		return nil, false
	}
	if s.now().UnixMilli() >= expiresAt {
		return nil, false
	}
	return body, true
}

// Set stores a lookup response for ttl, replacing any earlier response for
// the same request.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO lookup_cache (key, value, stored_at, expires_at) VALUES (?, ?, ?, ?)",
		key, value, now.UnixMilli(), now.Add(ttl).UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("cache %s: %w", key, err)
	}
	return nil
}

// Delete forgets the response stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM lookup_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Prune drops expired responses and reports how many were dropped.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM lookup_cache WHERE expires_at <= ?", s.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// Len returns the number of stored entries, expired ones included.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lookup_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}

// Close closes the database if the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
