package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
)

// CreateFoodEntry appends one diary line and populates its ID. Entries are
// immutable after this point.
func (s *SQLiteStore) CreateFoodEntry(ctx context.Context, entry *models.FoodEntry) error {
	now := time.Now()
	if entry.Date == "" {
		entry.Date = now.Format(DateLayout)
	}
	if entry.Time == "" {
		entry.Time = now.Format("15:04:05")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO food_entries (user_id, meal_type, food_name, calories, proteins, fats, carbs, date, time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.MealType, entry.FoodName,
		entry.Calories, entry.Proteins, entry.Fats, entry.Carbs,
		entry.Date, entry.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food entry: %w", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read food entry id: %w", err)
	}

	return nil
}

// ListFoodEntries returns the user's diary for one date, ordered by time.
func (s *SQLiteStore) ListFoodEntries(ctx context.Context, userID int64, date string) ([]models.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, meal_type, food_name, calories, proteins, fats, carbs, date, time
		 FROM food_entries
		 WHERE user_id = ? AND date = ?
		 ORDER BY time`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list food entries: %w", err)
	}
	defer rows.Close()

	var entries []models.FoodEntry
	for rows.Next() {
		var e models.FoodEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.MealType, &e.FoodName,
			&e.Calories, &e.Proteins, &e.Fats, &e.Carbs,
			&e.Date, &e.Time,
		); err != nil {
			return nil, fmt.Errorf("failed to scan food entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food entries: %w", err)
	}

	return entries, nil
}
