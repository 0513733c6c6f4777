// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed     = errors.New("history store closed")
	ErrBlankValue = errors.New("blank value")
)

// =============================================================================
// STORE
// =============================================================================

// Usage is one row of the usage table.
type Usage struct {
	Value    string
	Uses     int
	LastUsed time.Time
}

// Store is a usage history backed by SQLite. It is safe for concurrent
// use.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(initMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record counts one use of value.
func (s *Store) Record(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrBlankValue
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage (value, uses, last_used) VALUES (?, 1, ?)
		ON CONFLICT(value) DO UPDATE SET uses = uses + 1, last_used = excluded.last_used`,
		value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record %q: %w", value, err)
	}
	return nil
}

// Counts returns the use count of every recorded value.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, "SELECT value, uses FROM usage")
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			value string
			uses  int
		)
		if err := rows.Scan(&value, &uses); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		counts[value] = uses
	}
	return counts, rows.Err()
}

// Top returns the n most used values, most used first. Ties go to the most
// recently used.
func (s *Store) Top(ctx context.Context, n int) ([]Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT value, uses, last_used FROM usage ORDER BY uses DESC, last_used DESC, value LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var out []Usage
	for rows.Next() {
		var (
			u    Usage
			last int64
		)
		if err := rows.Scan(&u.Value, &u.Uses, &last); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.LastUsed = time.Unix(last, 0)
		out = append(out, u)
	}
	return out, rows.Err()
}

// Forget deletes value from the history.
func (s *Store) Forget(ctx context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM usage WHERE value = ?", value)
	return err
}

// Prune deletes values not used since before. It returns how many rows
// were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM usage WHERE last_used < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune usage: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
