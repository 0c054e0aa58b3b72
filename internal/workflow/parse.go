package workflow

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
)

// Button-label maps. Priority and frequency default rather than fail on an
// unrecognized label; meal type is strict because the step is skipped
// entirely when a shortcut button already chose it.
var (
	priorityLabels = map[string]models.TaskPriority{
		"🔴 Высокий": models.PriorityHigh,
		"🟡 Средний": models.PriorityMedium,
		"🟢 Низкий":  models.PriorityLow,
	}

	frequencyLabels = map[string]models.HabitFrequency{
		"Ежедневно":   models.FrequencyDaily,
		"Еженедельно": models.FrequencyWeekly,
		"Ежемесячно":  models.FrequencyMonthly,
	}

	mealLabels = map[string]string{
		"🥗 Завтрак": models.MealBreakfast,
		"🍝 Обед":    models.MealLunch,
		"🍽 Ужин":    models.MealDinner,
		"🍎 Перекус": models.MealSnack,
	}
)

// MealForLabel resolves a meal shortcut button to its stored value. The
// router uses it to seed the log-meal flow past the meal-type step.
func MealForLabel(label string) (string, bool) {
	meal, ok := mealLabels[label]
	return meal, ok
}

func parseRequired(errText string) ParseFunc {
	return func(input string) (any, error) {
		text := strings.TrimSpace(input)
		if text == "" {
			return nil, errors.New(errText)
		}
		return text, nil
	}
}

// parseOptional maps "-" to the empty string, meaning "no value".
func parseOptional(input string) (any, error) {
	text := strings.TrimSpace(input)
	if text == "-" {
		return "", nil
	}
	return text, nil
}

// parseDate accepts the literals "сегодня"/"today", "завтра"/"tomorrow", or a
// YYYY-MM-DD date, and yields the date in YYYY-MM-DD form.
func parseDate(input string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "сегодня", "today":
		return time.Now().Format("2006-01-02"), nil
	case "завтра", "tomorrow":
		return time.Now().AddDate(0, 0, 1).Format("2006-01-02"), nil
	}

	d, err := time.Parse("2006-01-02", strings.TrimSpace(input))
	if err != nil {
		return nil, errors.New("Неверный формат даты. Используйте ГГГГ-ММ-ДД или 'сегодня'/'завтра'")
	}
	return d.Format("2006-01-02"), nil
}

// parsePriority maps a priority button label, defaulting to medium on
// anything unrecognized.
func parsePriority(input string) (any, error) {
	if p, ok := priorityLabels[strings.TrimSpace(input)]; ok {
		return p, nil
	}
	return models.PriorityMedium, nil
}

// parseFrequency maps a frequency button label, defaulting to daily.
func parseFrequency(input string) (any, error) {
	if f, ok := frequencyLabels[strings.TrimSpace(input)]; ok {
		return f, nil
	}
	return models.FrequencyDaily, nil
}

// parseMealType requires one of the meal buttons.
func parseMealType(input string) (any, error) {
	if meal, ok := mealLabels[strings.TrimSpace(input)]; ok {
		return meal, nil
	}
	return nil, errors.New("Пожалуйста, выберите тип приема пищи из меню.")
}

// parseCalories accepts a non-negative integer.
func parseCalories(input string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 {
		return nil, errors.New("Пожалуйста, введите число.")
	}
	return n, nil
}

// parseGrams accepts a non-negative number of grams.
func parseGrams(input string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || f < 0 {
		return nil, errors.New("Пожалуйста, введите число.")
	}
	return f, nil
}

// parseID accepts a record id.
func parseID(errText string) ParseFunc {
	return func(input string) (any, error) {
		id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
		if err != nil {
			return nil, errors.New(errText)
		}
		return id, nil
	}
}
