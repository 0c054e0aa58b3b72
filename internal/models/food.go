package models

// Meal type values are the user-facing Russian words, stored as-is.
const (
	MealBreakfast = "завтрак"
	MealLunch     = "обед"
	MealDinner    = "ужин"
	MealSnack     = "перекус"
)

// FoodEntry is one line of the food diary. Entries are append-only: there is
// no update or delete path once a meal is logged.
type FoodEntry struct {
	ID     int64
	UserID int64

	MealType string
	FoodName string

	Calories int
	Proteins float64
	Fats     float64
	Carbs    float64

	// Date is YYYY-MM-DD, Time is HH:MM:SS, both in local time.
	Date string
	Time string
}
