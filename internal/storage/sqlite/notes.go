package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
)

// CreateNote persists a new note and populates its ID.
func (s *SQLiteStore) CreateNote(ctx context.Context, note *models.Note) error {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (user_id, title, content, created_at) VALUES (?, ?, ?, ?)",
		note.UserID, note.Title, note.Content, note.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	note.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read note id: %w", err)
	}

	return nil
}

// ListNotes returns the user's notes, newest first.
func (s *SQLiteStore) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, created_at
		 FROM notes
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var (
			n         models.Note
			content   sql.NullString
			createdAt sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.Content = content.String
		n.CreatedAt = parseTime(createdAt)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// GetNote retrieves one note. The owner id is part of the WHERE clause, so a
// note belonging to another user is indistinguishable from a missing one.
func (s *SQLiteStore) GetNote(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	var (
		n         models.Note
		content   sql.NullString
		createdAt sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, content, created_at FROM notes WHERE id = ? AND user_id = ?",
		noteID, userID,
	).Scan(&n.ID, &n.UserID, &n.Title, &content, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Note not found (or not owned by this user)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	n.Content = content.String
	n.CreatedAt = parseTime(createdAt)

	return &n, nil
}
