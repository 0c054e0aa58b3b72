package models

// Stats is the per-user summary shown by the statistics view. All counts are
// computed under the same ownership filter as the entity tables themselves.
type Stats struct {
	TasksTotal     int
	TasksCompleted int

	CaloriesToday int

	HabitsTotal     int
	HabitsDoneToday int

	NotesTotal int
}
