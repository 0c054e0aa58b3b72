// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/dmtrv/lifebot/internal/models"
)

// Store is the record-store contract consumed by the conversation engine and
// the router. Every read and write except user creation is scoped by the
// owning user id, so cross-user interference is impossible by construction.
//
// Not-found is reported as (nil, nil) on reads and (false, nil) on
// conditional writes; a non-nil error always means the store itself failed.
type Store interface {
	// CreateUser registers a user on first contact. Calling it again for the
	// same id is a no-op.
	CreateUser(ctx context.Context, user *models.User) error

	// CreateTask persists a new task. task.ID is populated by the store.
	CreateTask(ctx context.Context, task *models.Task) error

	// ListActiveTasks returns the user's active tasks ordered by due date and
	// priority.
	ListActiveTasks(ctx context.Context, userID int64) ([]models.Task, error)

	// CompleteTask marks a task completed. Returns true iff a row matching
	// owner, id, and active status was updated.
	CompleteTask(ctx context.Context, userID, taskID int64) (bool, error)

	// DeleteTask removes a task. Returns true iff a row matching owner and id
	// was deleted.
	DeleteTask(ctx context.Context, userID, taskID int64) (bool, error)

	// CreateFoodEntry appends one diary line. entry.ID is populated.
	CreateFoodEntry(ctx context.Context, entry *models.FoodEntry) error

	// ListFoodEntries returns the user's diary for one date, ordered by time.
	ListFoodEntries(ctx context.Context, userID int64, date string) ([]models.FoodEntry, error)

	// CreateHabit persists a new habit. habit.ID is populated.
	CreateHabit(ctx context.Context, habit *models.Habit) error

	// ListHabits returns all of the user's habits.
	ListHabits(ctx context.Context, userID int64) ([]models.Habit, error)

	// UpsertHabitLog records a habit completion for one date. Returns true
	// iff a new log row was inserted; a duplicate completion, an unknown
	// habit id, or a habit owned by someone else all return false.
	UpsertHabitLog(ctx context.Context, habitID, userID int64, date string) (bool, error)

	// HabitsCompletedOn reports which of the user's habits have a log for the
	// given date, keyed by habit id.
	HabitsCompletedOn(ctx context.Context, userID int64, date string) (map[int64]bool, error)

	// CreateNote persists a new note. note.ID is populated.
	CreateNote(ctx context.Context, note *models.Note) error

	// ListNotes returns the user's notes, newest first.
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)

	// GetNote retrieves one note iff it is owned by the user.
	GetNote(ctx context.Context, userID, noteID int64) (*models.Note, error)

	// UserStats computes the per-user summary counters.
	UserStats(ctx context.Context, userID int64) (*models.Stats, error)

	// Close releases any resources held by the store.
	Close() error
}
