package workflow

import (
	"context"
	"fmt"

	"github.com/dmtrv/lifebot/internal/models"
	"github.com/dmtrv/lifebot/internal/session"
	"github.com/dmtrv/lifebot/internal/storage"
)

// Bag field names, one per step.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "due_date"
	FieldPriority    = "priority"
	FieldMealType    = "meal_type"
	FieldFoodName    = "food_name"
	FieldCalories    = "calories"
	FieldProteins    = "proteins"
	FieldFats        = "fats"
	FieldCarbs       = "carbs"
	FieldHabitName   = "habit_name"
	FieldFrequency   = "frequency"
	FieldContent     = "content"
	FieldTaskID      = "task_id"
	FieldNoteID      = "note_id"
)

// StepMealType is where the log-meal flow starts when no shortcut button
// pre-selected the meal; shortcuts seed the bag and start one step later.
const (
	StepMealType = 0
	StepFoodName = 1
)

// Registry returns all workflow definitions keyed by id. The map is built
// fresh per call so callers cannot mutate shared state.
func Registry() map[models.WorkflowID]*Workflow {
	flows := []*Workflow{
		addTask(),
		logMeal(),
		addHabit(),
		addNote(),
		completeTask(),
		deleteTask(),
		viewNote(),
	}

	reg := make(map[models.WorkflowID]*Workflow, len(flows))
	for _, f := range flows {
		reg[f.ID] = f
	}
	return reg
}

func addTask() *Workflow {
	return &Workflow{
		ID: models.WorkflowAddTask,
		Steps: []Step{
			{
				Field:  FieldTitle,
				Prompt: "Введите название задачи:",
				Parse:  parseRequired("Название не может быть пустым. Введите название задачи:"),
			},
			{
				Field:  FieldDescription,
				Prompt: "Введите описание задачи (или отправьте '-' если не нужно):",
				Parse:  parseOptional,
			},
			{
				Field:  FieldDueDate,
				Prompt: "Введите срок выполнения (ГГГГ-ММ-ДД, или 'сегодня'/'завтра'):",
				Parse:  parseDate,
			},
			{
				Field:  FieldPriority,
				Prompt: "Выберите приоритет:",
				Choices: [][]string{
					{"🔴 Высокий", "🟡 Средний", "🟢 Низкий"},
				},
				Parse: parsePriority,
			},
		},
		Commit: func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error) {
			raw, _ := data.Get(FieldPriority)
			priority, _ := raw.(models.TaskPriority)

			task := &models.Task{
				UserID:      userID,
				Title:       data.String(FieldTitle),
				Description: data.String(FieldDescription),
				DueDate:     data.String(FieldDueDate),
				Priority:    priority,
			}
			if err := store.CreateTask(ctx, task); err != nil {
				return "", err
			}
			return "✅ Задача успешно создана!", nil
		},
	}
}

func logMeal() *Workflow {
	return &Workflow{
		ID: models.WorkflowLogMeal,
		Steps: []Step{
			{
				Field:  FieldMealType,
				Prompt: "Выберите тип приема пищи:",
				Choices: [][]string{
					{"🥗 Завтрак", "🍝 Обед"},
					{"🍽 Ужин", "🍎 Перекус"},
				},
				Parse: parseMealType,
			},
			{
				Field:  FieldFoodName,
				Prompt: "Что вы съели?",
				Parse:  parseRequired("Что вы съели?"),
			},
			{
				Field:  FieldCalories,
				Prompt: "Сколько калорий? (только число)",
				Parse:  parseCalories,
			},
			{
				Field:  FieldProteins,
				Prompt: "Белки (г): (только число, или 0)",
				Parse:  parseGrams,
			},
			{
				Field:  FieldFats,
				Prompt: "Жиры (г): (только число, или 0)",
				Parse:  parseGrams,
			},
			{
				Field:  FieldCarbs,
				Prompt: "Углеводы (г): (только число, или 0)",
				Parse:  parseGrams,
			},
		},
		Commit: func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error) {
			entry := &models.FoodEntry{
				UserID:   userID,
				MealType: data.String(FieldMealType),
				FoodName: data.String(FieldFoodName),
				Calories: data.Int(FieldCalories),
				Proteins: data.Float(FieldProteins),
				Fats:     data.Float(FieldFats),
				Carbs:    data.Float(FieldCarbs),
			}
			if err := store.CreateFoodEntry(ctx, entry); err != nil {
				return "", err
			}
			return "✅ Запись о питании добавлена!", nil
		},
	}
}

func addHabit() *Workflow {
	return &Workflow{
		ID: models.WorkflowAddHabit,
		Steps: []Step{
			{
				Field:  FieldHabitName,
				Prompt: "Введите название привычки:",
				Parse:  parseRequired("Название не может быть пустым. Введите название привычки:"),
			},
			{
				Field:  FieldDescription,
				Prompt: "Введите описание привычки (или '-' если не нужно):",
				Parse:  parseOptional,
			},
			{
				Field:  FieldFrequency,
				Prompt: "Выберите частоту:",
				Choices: [][]string{
					{"Ежедневно", "Еженедельно", "Ежемесячно"},
				},
				Parse: parseFrequency,
			},
		},
		Commit: func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error) {
			raw, _ := data.Get(FieldFrequency)
			frequency, _ := raw.(models.HabitFrequency)

			habit := &models.Habit{
				UserID:      userID,
				Name:        data.String(FieldHabitName),
				Description: data.String(FieldDescription),
				Frequency:   frequency,
			}
			if err := store.CreateHabit(ctx, habit); err != nil {
				return "", err
			}
			return "✅ Привычка успешно создана!", nil
		},
	}
}

func addNote() *Workflow {
	return &Workflow{
		ID: models.WorkflowAddNote,
		Steps: []Step{
			{
				Field:  FieldTitle,
				Prompt: "Введите заголовок заметки:",
				Parse:  parseRequired("Заголовок не может быть пустым. Введите заголовок заметки:"),
			},
			{
				Field:  FieldContent,
				Prompt: "Введите содержимое заметки:",
				Parse:  parseRequired("Введите содержимое заметки:"),
			},
		},
		Commit: func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error) {
			note := &models.Note{
				UserID:  userID,
				Title:   data.String(FieldTitle),
				Content: data.String(FieldContent),
			}
			if err := store.CreateNote(ctx, note); err != nil {
				return "", err
			}
			return "✅ Заметка создана!", nil
		},
	}
}

func completeTask() *Workflow {
	return &Workflow{
		ID: models.WorkflowCompleteTask,
		Steps: []Step{
			{
				Field:  FieldTaskID,
				Prompt: "Введите ID задачи для завершения:",
				Parse:  parseID("❌ Пожалуйста, введите корректный ID задачи."),
			},
		},
		Commit: func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error) {
			taskID := data.Int64(FieldTaskID)
			ok, err := store.CompleteTask(ctx, userID, taskID)
			if err != nil {
				return "", err
			}
			if !ok {
				return "❌ Задача не найдена или уже завершена.", nil
			}
			return fmt.Sprintf("✅ Задача %d завершена!", taskID), nil
		},
	}
}

func deleteTask() *Workflow {
	return &Workflow{
		ID: models.WorkflowDeleteTask,
		Steps: []Step{
			{
				Field:  FieldTaskID,
				Prompt: "Введите ID задачи для удаления:",
				Parse:  parseID("❌ Пожалуйста, введите корректный ID задачи."),
			},
		},
		Commit: func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error) {
			taskID := data.Int64(FieldTaskID)
			ok, err := store.DeleteTask(ctx, userID, taskID)
			if err != nil {
				return "", err
			}
			if !ok {
				return "❌ Задача не найдена.", nil
			}
			return fmt.Sprintf("✅ Задача %d удалена!", taskID), nil
		},
	}
}

func viewNote() *Workflow {
	return &Workflow{
		ID: models.WorkflowViewNote,
		Steps: []Step{
			{
				Field:  FieldNoteID,
				Prompt: "Введите ID заметки для просмотра:",
				Parse:  parseID("❌ Пожалуйста, введите корректный ID."),
			},
		},
		Commit: func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error) {
			note, err := store.GetNote(ctx, userID, data.Int64(FieldNoteID))
			if err != nil {
				return "", err
			}
			if note == nil {
				return "❌ Заметка не найдена.", nil
			}
			return fmt.Sprintf("📝 %s\n\n%s\n\n📅 Создано: %s",
				note.Title, note.Content, note.CreatedAt.Format("02.01.2006 15:04")), nil
		},
	}
}
