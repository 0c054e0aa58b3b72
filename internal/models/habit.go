package models

import "time"

// HabitFrequency is how often a habit is meant to be performed.
type HabitFrequency string

const (
	FrequencyDaily   HabitFrequency = "daily"
	FrequencyWeekly  HabitFrequency = "weekly"
	FrequencyMonthly HabitFrequency = "monthly"
)

// Habit is a recurring activity the user wants to track.
type Habit struct {
	ID     int64
	UserID int64

	Name string

	// Description is optional; empty means none.
	Description string

	Frequency HabitFrequency

	CreatedAt time.Time
}

// HabitLog marks a habit as done on a given date. At most one log exists per
// (habit, date); duplicate completions are no-ops.
type HabitLog struct {
	ID      int64
	HabitID int64
	UserID  int64

	// CompletedDate is YYYY-MM-DD.
	CompletedDate string
}
