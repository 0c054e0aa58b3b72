// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/dmtrv/lifebot/internal/models"
	"github.com/dmtrv/lifebot/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// timeLayout is how timestamps are persisted. Calendar dates use DateLayout.
const (
	timeLayout = time.RFC3339
	DateLayout = "2006-01-02"
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser registers a user on first contact. Re-registering the same id is
// a no-op, so the original registration timestamp is never overwritten.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (user_id, username, first_name, registered_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Username, user.FirstName, user.RegisteredAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// nullIfEmpty maps an optional text field to NULL when unset.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseTime reads a persisted timestamp, tolerating an empty column.
func parseTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
