package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
	"github.com/dmtrv/lifebot/internal/session"
	"github.com/dmtrv/lifebot/internal/storage"
	"github.com/dmtrv/lifebot/internal/storage/sqlite"
	"github.com/dmtrv/lifebot/internal/workflow"
)

func newTestEngine(t *testing.T) (*Engine, *session.Store, *sqlite.SQLiteStore) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "lifebot-engine-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sessions := session.NewStore()
	return New(sessions, store), sessions, store
}

// drive feeds a sequence of inputs and returns the final outcome.
func drive(t *testing.T, e *Engine, userID int64, inputs ...string) Outcome {
	t.Helper()

	var last Outcome
	for _, input := range inputs {
		outcome, handled := e.Handle(context.Background(), userID, input)
		if !handled {
			t.Fatalf("input %q was not handled; no session?", input)
		}
		last = outcome
	}
	return last
}

func TestHandleWithoutSession(t *testing.T) {
	e, _, _ := newTestEngine(t)

	if _, handled := e.Handle(context.Background(), 1, "hello"); handled {
		t.Error("no session: event must be left to the caller")
	}
}

func TestStartUnknownWorkflow(t *testing.T) {
	e, _, _ := newTestEngine(t)

	if _, err := e.Start(1, models.WorkflowID("bogus"), 0); err == nil {
		t.Error("expected error for unknown workflow")
	}
	if _, err := e.Start(1, models.WorkflowAddNote, 5); err == nil {
		t.Error("expected error for out-of-range start step")
	}
}

func TestAddTaskEndToEnd(t *testing.T) {
	e, sessions, store := newTestEngine(t)

	outcome, err := e.Start(1, models.WorkflowAddTask, 0)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if outcome.Text != "Введите название задачи:" {
		t.Errorf("unexpected first prompt: %q", outcome.Text)
	}

	final := drive(t, e, 1, "Buy milk", "-", "today", "🟡 Средний")

	if !final.Done {
		t.Fatal("expected terminal commit")
	}
	if final.Text != "✅ Задача успешно создана!" {
		t.Errorf("unexpected commit message: %q", final.Text)
	}
	if sessions.Get(1) != nil {
		t.Error("session must be cleared after commit")
	}

	tasks, err := store.ListActiveTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListActiveTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected exactly one task, got %d", len(tasks))
	}

	task := tasks[0]
	if task.Title != "Buy milk" {
		t.Errorf("title: got %q", task.Title)
	}
	if task.Description != "" {
		t.Errorf("description '-' must become none, got %q", task.Description)
	}
	if task.DueDate != time.Now().Format("2006-01-02") {
		t.Errorf("due date 'today' must become the current date, got %q", task.DueDate)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("priority: got %s", task.Priority)
	}
	if task.Status != models.TaskActive {
		t.Errorf("status: got %s", task.Status)
	}
}

func TestLogMealViaShortcut(t *testing.T) {
	e, sessions, store := newTestEngine(t)

	// The breakfast button seeds the meal type and skips its step.
	outcome, err := e.Start(2, models.WorkflowLogMeal, workflow.StepFoodName,
		session.Field{Name: workflow.FieldMealType, Value: models.MealBreakfast})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if outcome.Text != "Что вы съели?" {
		t.Errorf("expected the food-name prompt, got %q", outcome.Text)
	}

	final := drive(t, e, 2, "oatmeal", "300", "10", "5", "40")

	if !final.Done {
		t.Fatal("expected terminal commit")
	}
	if sessions.Get(2) != nil {
		t.Error("session must be cleared after commit")
	}

	entries, err := store.ListFoodEntries(context.Background(), 2, time.Now().Format("2006-01-02"))
	if err != nil {
		t.Fatalf("ListFoodEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.MealType != "завтрак" {
		t.Errorf("meal type: got %q", entry.MealType)
	}
	if entry.FoodName != "oatmeal" || entry.Calories != 300 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Proteins != 10.0 || entry.Fats != 5.0 || entry.Carbs != 40.0 {
		t.Errorf("unexpected macros: %+v", entry)
	}
}

func TestValidationFailureRepromptsSameStep(t *testing.T) {
	e, sessions, store := newTestEngine(t)

	if _, err := e.Start(3, models.WorkflowLogMeal, workflow.StepFoodName,
		session.Field{Name: workflow.FieldMealType, Value: models.MealLunch}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	drive(t, e, 3, "soup")
	before := sessions.Get(3)
	stepBefore := before.Step
	fieldsBefore := before.Data.Len()

	outcome := drive(t, e, 3, "abc")

	if outcome.Text != "Пожалуйста, введите число." {
		t.Errorf("expected the calories error, got %q", outcome.Text)
	}
	if outcome.Done {
		t.Error("validation failure must not commit")
	}

	after := sessions.Get(3)
	if after == nil {
		t.Fatal("session must survive a validation failure")
	}
	if after.Step != stepBefore {
		t.Errorf("step changed on failure: %d -> %d", stepBefore, after.Step)
	}
	if after.Data.Len() != fieldsBefore {
		t.Errorf("bag changed on failure: %d -> %d fields", fieldsBefore, after.Data.Len())
	}

	entries, err := store.ListFoodEntries(context.Background(), 3, time.Now().Format("2006-01-02"))
	if err != nil {
		t.Fatalf("ListFoodEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Error("no entry may be inserted before the flow completes")
	}

	// The same step accepts a corrected value.
	final := drive(t, e, 3, "250", "8", "3", "30")
	if !final.Done {
		t.Error("flow must complete after correction")
	}
}

func TestStartReplacesActiveSession(t *testing.T) {
	e, sessions, _ := newTestEngine(t)

	if _, err := e.Start(4, models.WorkflowAddTask, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	drive(t, e, 4, "half-entered task")

	// Starting another workflow mid-flow silently replaces the session.
	if _, err := e.Start(4, models.WorkflowAddNote, 0); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	sess := sessions.Get(4)
	if sess.Workflow != models.WorkflowAddNote {
		t.Errorf("expected replacement workflow, got %s", sess.Workflow)
	}
	if sess.Data.Len() != 0 {
		t.Error("old data bag must not merge into the new session")
	}
}

func TestCompleteTaskNotFound(t *testing.T) {
	e, sessions, _ := newTestEngine(t)

	if _, err := e.Start(5, models.WorkflowCompleteTask, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	outcome := drive(t, e, 5, "999")

	if !outcome.Done {
		t.Error("a not-found result still finishes the workflow")
	}
	if outcome.Text != "❌ Задача не найдена или уже завершена." {
		t.Errorf("unexpected message: %q", outcome.Text)
	}
	if sessions.Get(5) != nil {
		t.Error("session must be cleared after a not-found commit")
	}
}

func TestViewNoteOwnership(t *testing.T) {
	e, _, store := newTestEngine(t)

	note := &models.Note{UserID: 1, Title: "mine", Content: "private"}
	if err := store.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if _, err := e.Start(2, models.WorkflowViewNote, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	outcome := drive(t, e, 2, "1")

	if outcome.Text != "❌ Заметка не найдена." {
		t.Errorf("cross-user view must report not-found, got %q", outcome.Text)
	}
}

func TestAbort(t *testing.T) {
	e, sessions, _ := newTestEngine(t)

	if e.Abort(6) {
		t.Error("nothing to abort for a fresh user")
	}

	if _, err := e.Start(6, models.WorkflowAddHabit, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	drive(t, e, 6, "running")

	if !e.Abort(6) {
		t.Error("expected an active session to abort")
	}
	if sessions.Get(6) != nil {
		t.Error("session must be gone after abort")
	}
}

// failingStore wraps a real store but fails every insert, to exercise the
// commit-failure path.
type failingStore struct {
	storage.Store
}

var errStoreDown = errors.New("store down")

func (f *failingStore) CreateNote(ctx context.Context, note *models.Note) error {
	return errStoreDown
}

func TestCommitFailureKeepsSession(t *testing.T) {
	_, sessions, store := newTestEngine(t)
	e := New(sessions, &failingStore{Store: store})

	if _, err := e.Start(7, models.WorkflowAddNote, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	outcome := drive(t, e, 7, "title", "content")

	if outcome.Done {
		t.Error("a failed commit must not report completion")
	}
	if outcome.Text != "⚠️ Не удалось сохранить данные. Попробуйте ещё раз." {
		t.Errorf("unexpected failure message: %q", outcome.Text)
	}

	sess := sessions.Get(7)
	if sess == nil {
		t.Fatal("session must be preserved so the user can retry")
	}
	if sess.Workflow != models.WorkflowAddNote {
		t.Errorf("unexpected workflow: %s", sess.Workflow)
	}

	// Once the store recovers, retrying the terminal step commits.
	recovered := New(sessions, store)
	final := drive(t, recovered, 7, "content")
	if !final.Done {
		t.Error("retry after recovery must commit")
	}
	if sessions.Get(7) != nil {
		t.Error("session must be cleared after the successful retry")
	}
}
