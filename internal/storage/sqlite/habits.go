package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
)

// CreateHabit persists a new habit and populates its ID.
func (s *SQLiteStore) CreateHabit(ctx context.Context, habit *models.Habit) error {
	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO habits (user_id, habit_name, description, frequency, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		habit.UserID, habit.Name, nullIfEmpty(habit.Description),
		string(habit.Frequency), habit.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	habit.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read habit id: %w", err)
	}

	return nil
}

// ListHabits returns all of the user's habits in creation order.
func (s *SQLiteStore) ListHabits(ctx context.Context, userID int64) ([]models.Habit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, habit_name, description, frequency, created_at
		 FROM habits
		 WHERE user_id = ?
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var (
			h           models.Habit
			description sql.NullString
			createdAt   sql.NullString
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &description, &h.Frequency, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		h.Description = description.String
		h.CreatedAt = parseTime(createdAt)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	return habits, nil
}

// UpsertHabitLog records a habit completion for one date. The INSERT selects
// from habits so ownership is checked in the same statement, and OR IGNORE
// plus the UNIQUE(habit_id, completed_date) constraint makes a duplicate
// completion a silent no-op.
func (s *SQLiteStore) UpsertHabitLog(ctx context.Context, habitID, userID int64, date string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO habit_logs (habit_id, user_id, completed_date)
		 SELECT id, user_id, ? FROM habits WHERE id = ? AND user_id = ?`,
		date, habitID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert habit log: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}

// HabitsCompletedOn reports which of the user's habits have a log for the
// given date.
func (s *SQLiteStore) HabitsCompletedOn(ctx context.Context, userID int64, date string) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT habit_id FROM habit_logs WHERE user_id = ? AND completed_date = ?",
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit logs: %w", err)
	}
	defer rows.Close()

	done := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		done[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habit logs: %w", err)
	}

	return done, nil
}
