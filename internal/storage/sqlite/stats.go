package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
)

// UserStats computes the per-user summary counters. Pure projection: nothing
// here writes.
func (s *SQLiteStore) UserStats(ctx context.Context, userID int64) (*models.Stats, error) {
	stats := &models.Stats{}
	today := time.Now().Format(DateLayout)

	var completed sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END)
		 FROM tasks WHERE user_id = ?`,
		userID,
	).Scan(&stats.TasksTotal, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	stats.TasksCompleted = int(completed.Int64)

	var calories sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		"SELECT SUM(calories) FROM food_entries WHERE user_id = ? AND date = ?",
		userID, today,
	).Scan(&calories)
	if err != nil {
		return nil, fmt.Errorf("failed to sum calories: %w", err)
	}
	stats.CaloriesToday = int(calories.Int64)

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM habits WHERE user_id = ?", userID,
	).Scan(&stats.HabitsTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to count habits: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM habit_logs WHERE user_id = ? AND completed_date = ?",
		userID, today,
	).Scan(&stats.HabitsDoneToday)
	if err != nil {
		return nil, fmt.Errorf("failed to count habit logs: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notes WHERE user_id = ?", userID,
	).Scan(&stats.NotesTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}

	return stats, nil
}
