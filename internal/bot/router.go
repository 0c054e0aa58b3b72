// Package bot routes inbound events: global commands, menu buttons, habit
// callbacks, and, whenever a session is active, the conversation engine.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmtrv/lifebot/internal/engine"
	"github.com/dmtrv/lifebot/internal/metrics"
	"github.com/dmtrv/lifebot/internal/models"
	"github.com/dmtrv/lifebot/internal/session"
	"github.com/dmtrv/lifebot/internal/storage"
	"github.com/dmtrv/lifebot/internal/workflow"
)

const (
	habitCallbackPrefix = "complete_habit_"

	storeFailureText = "⚠️ Не удалось получить данные. Попробуйте позже."
)

// Router classifies events and dispatches them. An active session wins over
// every menu label except explicit navigation ("🔙 Главное меню" and slash
// commands), which aborts the session outright.
type Router struct {
	engine *engine.Engine
	store  storage.Store
}

// NewRouter wires the router over the engine and record store.
func NewRouter(eng *engine.Engine, store storage.Store) *Router {
	return &Router{engine: eng, store: store}
}

// Dispatch handles one inbound event and returns the responses to send back
// to the same user. A nil slice means the event was ignored.
func (r *Router) Dispatch(ctx context.Context, ev models.Event) []models.Response {
	log := slog.With("event_id", uuid.NewString()[:8], "user_id", ev.UserID, "kind", ev.Kind)
	metrics.EventsTotal.WithLabelValues(string(ev.Kind)).Inc()

	if ev.Kind == models.EventCallback {
		return r.handleCallback(ctx, log, ev)
	}

	text := strings.TrimSpace(ev.Payload)

	// Navigation cancels any in-flight workflow before anything else: the
	// user asked to leave, so partial data is discarded, never committed.
	switch text {
	case "/start":
		r.engine.Abort(ev.UserID)
		return r.handleStart(ctx, log, ev)
	case "/help", "❓ Помощь":
		r.engine.Abort(ev.UserID)
		return []models.Response{{Text: helpText, Keyboard: mainMenu}}
	case "🔙 Главное меню":
		if r.engine.Abort(ev.UserID) {
			log.Debug("session aborted by menu navigation")
		}
		return []models.Response{{Text: "Главное меню:", Keyboard: mainMenu}}
	}

	// A live session captures all remaining text, on- or off-script.
	if outcome, handled := r.engine.Handle(ctx, ev.UserID, text); handled {
		return r.fromOutcome(outcome)
	}

	return r.handleMenu(ctx, log, ev.UserID, text)
}

const welcomeText = `👋 Привет, %s!

Я многофункциональный бот-помощник. Я помогу тебе:
✅ Отслеживать задачи
🥗 Вести дневник питания
💪 Отслеживать привычки
📝 Делать заметки

Используй кнопки меню для навигации!`

const helpText = `📚 Доступные функции:

📋 Задачи - управление списком дел
🍽 Дневник питания - учет калорий и БЖУ
💪 Привычки - отслеживание полезных привычек
📝 Заметки - создание и хранение заметок
📊 Статистика - просмотр статистики

Для навигации используйте кнопки меню!`

func (r *Router) handleStart(ctx context.Context, log *slog.Logger, ev models.Event) []models.Response {
	user := &models.User{
		ID:        ev.UserID,
		Username:  ev.Username,
		FirstName: ev.FirstName,
	}
	if err := r.store.CreateUser(ctx, user); err != nil {
		log.Error("user registration failed", "error", err)
		metrics.StoreErrors.Inc()
		return []models.Response{{Text: storeFailureText}}
	}

	log.Info("user registered", "username", ev.Username)
	return []models.Response{{
		Text:     fmt.Sprintf(welcomeText, ev.FirstName),
		Keyboard: mainMenu,
	}}
}

func (r *Router) handleMenu(ctx context.Context, log *slog.Logger, userID int64, text string) []models.Response {
	switch text {
	// Submenu navigation.
	case "📋 Задачи":
		return []models.Response{{Text: "Меню управления задачами:", Keyboard: tasksMenu}}
	case "🍽 Дневник питания":
		return []models.Response{{Text: "Меню дневника питания:", Keyboard: foodMenu}}
	case "💪 Привычки":
		return []models.Response{{Text: "Меню привычек:", Keyboard: habitsMenu}}
	case "📝 Заметки":
		return []models.Response{{Text: "Меню заметок:", Keyboard: notesMenu}}

	// Workflow starts.
	case "➕ Добавить задачу":
		return r.startWorkflow(log, userID, models.WorkflowAddTask, 0)
	case "✅ Завершить задачу":
		return r.startWorkflow(log, userID, models.WorkflowCompleteTask, 0)
	case "❌ Удалить задачу":
		return r.startWorkflow(log, userID, models.WorkflowDeleteTask, 0)
	case "➕ Записать прием пищи":
		return r.startWorkflow(log, userID, models.WorkflowLogMeal, workflow.StepMealType)
	case "➕ Добавить привычку":
		return r.startWorkflow(log, userID, models.WorkflowAddHabit, 0)
	case "➕ Создать заметку":
		return r.startWorkflow(log, userID, models.WorkflowAddNote, 0)
	case "🔍 Просмотреть заметку":
		return r.startWorkflow(log, userID, models.WorkflowViewNote, 0)

	// List and summary views.
	case "📋 Мои задачи":
		return r.listTasks(ctx, log, userID)
	case "📊 Сегодняшнее питание":
		return r.listTodayFood(ctx, log, userID)
	case "📋 Мои привычки":
		return r.listHabits(ctx, log, userID)
	case "✅ Отметить выполнение":
		return r.habitPicker(ctx, log, userID)
	case "📋 Мои заметки":
		return r.listNotes(ctx, log, userID)
	case "📊 Статистика":
		return r.showStats(ctx, log, userID)
	}

	// Meal shortcut buttons pre-seed the meal type and skip its step.
	if meal, ok := workflow.MealForLabel(text); ok {
		return r.startWorkflow(log, userID, models.WorkflowLogMeal, workflow.StepFoodName,
			session.Field{Name: workflow.FieldMealType, Value: meal})
	}

	log.Debug("unhandled text", "text", text)
	return nil
}

func (r *Router) startWorkflow(log *slog.Logger, userID int64, id models.WorkflowID, step int, seed ...session.Field) []models.Response {
	outcome, err := r.engine.Start(userID, id, step, seed...)
	if err != nil {
		log.Error("workflow start failed", "workflow", id, "error", err)
		return []models.Response{{Text: storeFailureText}}
	}
	return []models.Response{{Text: outcome.Text, Keyboard: outcome.Keyboard}}
}

// fromOutcome turns an engine outcome into responses, attaching the domain
// submenu keyboard once a workflow finishes.
func (r *Router) fromOutcome(o engine.Outcome) []models.Response {
	resp := models.Response{Text: o.Text, Keyboard: o.Keyboard}
	if !o.Done {
		return []models.Response{resp}
	}

	switch o.Workflow {
	case models.WorkflowAddTask:
		resp.Keyboard = tasksMenu
	case models.WorkflowLogMeal:
		resp.Keyboard = foodMenu
	case models.WorkflowAddHabit:
		resp.Keyboard = habitsMenu
	case models.WorkflowAddNote:
		resp.Keyboard = notesMenu
	case models.WorkflowCompleteTask, models.WorkflowDeleteTask:
		return []models.Response{resp, {Text: "Меню задач:", Keyboard: tasksMenu}}
	case models.WorkflowViewNote:
		return []models.Response{resp, {Text: "Меню заметок:", Keyboard: notesMenu}}
	}
	return []models.Response{resp}
}

func (r *Router) handleCallback(ctx context.Context, log *slog.Logger, ev models.Event) []models.Response {
	data := strings.TrimSpace(ev.Payload)
	if !strings.HasPrefix(data, habitCallbackPrefix) {
		log.Debug("unhandled callback", "data", data)
		return nil
	}

	habitID, err := strconv.ParseInt(strings.TrimPrefix(data, habitCallbackPrefix), 10, 64)
	if err != nil {
		log.Warn("malformed habit callback", "data", data)
		return nil
	}

	today := time.Now().Format("2006-01-02")
	inserted, err := r.store.UpsertHabitLog(ctx, habitID, ev.UserID, today)
	if err != nil {
		log.Error("habit log upsert failed", "habit_id", habitID, "error", err)
		metrics.StoreErrors.Inc()
		return []models.Response{{Text: storeFailureText}}
	}

	// A repeat completion is a silent no-op: same acknowledgement, one row.
	log.Info("habit completed", "habit_id", habitID, "newly_logged", inserted)
	return []models.Response{{
		Text:  "Привычка отмечена как выполненная!",
		Toast: "✅ Отмечено!",
	}}
}

func (r *Router) listTasks(ctx context.Context, log *slog.Logger, userID int64) []models.Response {
	tasks, err := r.store.ListActiveTasks(ctx, userID)
	if err != nil {
		return r.storeFailed(log, "list tasks", err)
	}
	return []models.Response{{Text: renderTasks(tasks)}}
}

func (r *Router) listTodayFood(ctx context.Context, log *slog.Logger, userID int64) []models.Response {
	today := time.Now().Format("2006-01-02")
	entries, err := r.store.ListFoodEntries(ctx, userID, today)
	if err != nil {
		return r.storeFailed(log, "list food entries", err)
	}
	return []models.Response{{Text: renderFoodDay(today, entries)}}
}

func (r *Router) listHabits(ctx context.Context, log *slog.Logger, userID int64) []models.Response {
	habits, err := r.store.ListHabits(ctx, userID)
	if err != nil {
		return r.storeFailed(log, "list habits", err)
	}

	done, err := r.store.HabitsCompletedOn(ctx, userID, time.Now().Format("2006-01-02"))
	if err != nil {
		return r.storeFailed(log, "habit completions", err)
	}

	return []models.Response{{Text: renderHabits(habits, done)}}
}

// habitPicker offers the user's habits as an inline keyboard; choosing one
// comes back as a complete_habit_<id> callback.
func (r *Router) habitPicker(ctx context.Context, log *slog.Logger, userID int64) []models.Response {
	habits, err := r.store.ListHabits(ctx, userID)
	if err != nil {
		return r.storeFailed(log, "list habits", err)
	}
	if len(habits) == 0 {
		return []models.Response{{Text: "У вас нет привычек для отметки."}}
	}

	buttons := make([]models.InlineButton, len(habits))
	for i, h := range habits {
		buttons[i] = models.InlineButton{
			Label: h.Name,
			Data:  fmt.Sprintf("%s%d", habitCallbackPrefix, h.ID),
		}
	}

	return []models.Response{{Text: "Выберите привычку для отметки:", Inline: buttons}}
}

func (r *Router) listNotes(ctx context.Context, log *slog.Logger, userID int64) []models.Response {
	notes, err := r.store.ListNotes(ctx, userID)
	if err != nil {
		return r.storeFailed(log, "list notes", err)
	}
	return []models.Response{{Text: renderNotes(notes)}}
}

func (r *Router) showStats(ctx context.Context, log *slog.Logger, userID int64) []models.Response {
	stats, err := r.store.UserStats(ctx, userID)
	if err != nil {
		return r.storeFailed(log, "user stats", err)
	}
	return []models.Response{{Text: renderStats(stats)}}
}

func (r *Router) storeFailed(log *slog.Logger, op string, err error) []models.Response {
	log.Error("store read failed", "op", op, "error", err)
	metrics.StoreErrors.Inc()
	return []models.Response{{Text: storeFailureText}}
}
