package bot

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dmtrv/lifebot/internal/models"
)

// Plain-text renderers for the list and summary views. Presentation only; all
// data arrives already scoped to the requesting user.

func renderTasks(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "У вас нет активных задач."
	}

	var b strings.Builder
	b.WriteString("📋 Ваши активные задачи:\n\n")
	for _, t := range tasks {
		b.WriteString(priorityEmoji(t.Priority))
		b.WriteString(" ")
		b.WriteString(t.Title)
		b.WriteString("\n")

		due := t.DueDate
		if due == "" {
			due = "Без срока"
		}
		fmt.Fprintf(&b, "📅 Срок: %s\n", due)
		if t.Description != "" {
			fmt.Fprintf(&b, "📝 %s\n", t.Description)
		}
		fmt.Fprintf(&b, "ID: %d\n\n", t.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func priorityEmoji(p models.TaskPriority) string {
	switch p {
	case models.PriorityHigh:
		return "🔴"
	case models.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

func renderHabits(habits []models.Habit, doneToday map[int64]bool) string {
	if len(habits) == 0 {
		return "У вас нет созданных привычек."
	}

	var b strings.Builder
	b.WriteString("💪 Ваши привычки:\n\n")
	for _, h := range habits {
		status := "⭕"
		if doneToday[h.ID] {
			status = "✅"
		}
		fmt.Fprintf(&b, "%s %s\n", status, h.Name)

		desc := h.Description
		if desc == "" {
			desc = "Нет описания"
		}
		fmt.Fprintf(&b, "📝 %s\n", desc)
		fmt.Fprintf(&b, "📅 Частота: %s\n", h.Frequency)
		fmt.Fprintf(&b, "ID: %d\n\n", h.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNotes(notes []models.Note) string {
	if len(notes) == 0 {
		return "У вас нет заметок."
	}

	var b strings.Builder
	b.WriteString("📝 Ваши заметки:\n\n")
	for _, n := range notes {
		fmt.Fprintf(&b, "📌 %s\n", n.Title)
		fmt.Fprintf(&b, "🆔 ID: %d\n", n.ID)
		fmt.Fprintf(&b, "📅 %s\n\n", n.CreatedAt.Format("02.01.2006 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFoodDay(date string, entries []models.FoodEntry) string {
	if len(entries) == 0 {
		return "За сегодня записей о питании нет."
	}

	var (
		b        strings.Builder
		calories int
		proteins float64
		fats     float64
		carbs    float64
	)

	fmt.Fprintf(&b, "📊 Питание за %s:\n\n", date)
	for _, e := range entries {
		clock := e.Time
		if len(clock) > 5 {
			clock = clock[:5]
		}
		fmt.Fprintf(&b, "🕐 %s - %s\n", clock, capitalize(e.MealType))
		fmt.Fprintf(&b, "🍽 %s\n", e.FoodName)
		fmt.Fprintf(&b, "📊 %d ккал | Б:%g Ж:%g У:%g\n\n", e.Calories, e.Proteins, e.Fats, e.Carbs)

		calories += e.Calories
		proteins += e.Proteins
		fats += e.Fats
		carbs += e.Carbs
	}

	fmt.Fprintf(&b, "Итого: %d ккал\n", calories)
	fmt.Fprintf(&b, "Б:%.1f Ж:%.1f У:%.1f", proteins, fats, carbs)
	return b.String()
}

func renderStats(s *models.Stats) string {
	var b strings.Builder
	b.WriteString("📊 Ваша статистика:\n\n")
	b.WriteString("📋 Задачи:\n")
	fmt.Fprintf(&b, "├ Всего: %d\n", s.TasksTotal)
	fmt.Fprintf(&b, "└ Выполнено: %d\n\n", s.TasksCompleted)
	b.WriteString("🍽 Питание сегодня:\n")
	fmt.Fprintf(&b, "└ Калории: %d ккал\n\n", s.CaloriesToday)
	b.WriteString("💪 Привычки:\n")
	fmt.Fprintf(&b, "├ Всего: %d\n", s.HabitsTotal)
	fmt.Fprintf(&b, "└ Выполнено сегодня: %d\n\n", s.HabitsDoneToday)
	b.WriteString("📝 Заметки:\n")
	fmt.Fprintf(&b, "└ Всего: %d", s.NotesTotal)
	return b.String()
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
