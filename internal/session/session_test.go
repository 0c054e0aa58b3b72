package session

import (
	"sync"
	"testing"

	"github.com/dmtrv/lifebot/internal/models"
)

func TestBagKeepsInsertionOrder(t *testing.T) {
	bag := NewBag()
	bag.Set("title", "Buy milk")
	bag.Set("description", "")
	bag.Set("due_date", "2026-08-30")

	got := bag.Fields()
	want := []string{"title", "description", "due_date"}
	if len(got) != len(want) {
		t.Fatalf("fields: expected %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBagOverwriteKeepsOrder(t *testing.T) {
	bag := NewBag()
	bag.Set("calories", 100)
	bag.Set("proteins", 10.0)
	bag.Set("calories", 300)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", bag.Len())
	}
	if bag.Fields()[0] != "calories" {
		t.Errorf("expected calories first, got %q", bag.Fields()[0])
	}
	if bag.Int("calories") != 300 {
		t.Errorf("expected overwritten value 300, got %d", bag.Int("calories"))
	}
}

func TestBagTypedAccessors(t *testing.T) {
	bag := NewBag()
	bag.Set("name", "oatmeal")
	bag.Set("calories", 300)
	bag.Set("task_id", int64(7))
	bag.Set("proteins", 10.5)

	if bag.String("name") != "oatmeal" {
		t.Errorf("String: got %q", bag.String("name"))
	}
	if bag.Int("calories") != 300 {
		t.Errorf("Int: got %d", bag.Int("calories"))
	}
	if bag.Int64("task_id") != 7 {
		t.Errorf("Int64: got %d", bag.Int64("task_id"))
	}
	if bag.Float("proteins") != 10.5 {
		t.Errorf("Float: got %f", bag.Float("proteins"))
	}

	// Wrong type or missing field yields the zero value, not a panic.
	if bag.Int("name") != 0 {
		t.Errorf("expected 0 for mistyped access, got %d", bag.Int("name"))
	}
	if bag.String("missing") != "" {
		t.Errorf("expected empty string for missing field")
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	if store.Get(1) != nil {
		t.Fatal("expected no session for fresh store")
	}

	store.Start(1, models.WorkflowAddTask, 0)
	sess := store.Get(1)
	if sess == nil {
		t.Fatal("expected session after Start")
	}
	if sess.Workflow != models.WorkflowAddTask || sess.Step != 0 {
		t.Errorf("unexpected session: workflow=%s step=%d", sess.Workflow, sess.Step)
	}

	store.Advance(1, "title", "Buy milk")
	sess = store.Get(1)
	if sess.Step != 1 {
		t.Errorf("expected step 1 after Advance, got %d", sess.Step)
	}
	if sess.Data.String("title") != "Buy milk" {
		t.Errorf("expected merged field, got %q", sess.Data.String("title"))
	}

	store.Put(1, "description", "2%")
	sess = store.Get(1)
	if sess.Step != 1 {
		t.Errorf("Put must not advance: got step %d", sess.Step)
	}
	if sess.Data.String("description") != "2%" {
		t.Errorf("expected merged field from Put")
	}

	if !store.Clear(1) {
		t.Error("Clear should report an existing session")
	}
	if store.Get(1) != nil {
		t.Error("expected no session after Clear")
	}
	if store.Clear(1) {
		t.Error("second Clear should report nothing to remove")
	}
}

func TestStartReplacesExistingSession(t *testing.T) {
	store := NewStore()

	store.Start(1, models.WorkflowAddTask, 0)
	store.Advance(1, "title", "old data")

	store.Start(1, models.WorkflowAddNote, 0)

	sess := store.Get(1)
	if sess.Workflow != models.WorkflowAddNote {
		t.Errorf("expected replacement workflow, got %s", sess.Workflow)
	}
	if sess.Step != 0 {
		t.Errorf("expected fresh step 0, got %d", sess.Step)
	}
	if sess.Data.Len() != 0 {
		t.Errorf("old bag must not leak into the new session, got %d fields", sess.Data.Len())
	}
}

func TestStartWithSeed(t *testing.T) {
	store := NewStore()

	store.Start(2, models.WorkflowLogMeal, 1, Field{Name: "meal_type", Value: "завтрак"})

	sess := store.Get(2)
	if sess.Step != 1 {
		t.Errorf("expected start at step 1, got %d", sess.Step)
	}
	if sess.Data.String("meal_type") != "завтрак" {
		t.Errorf("expected seeded meal type, got %q", sess.Data.String("meal_type"))
	}
}

func TestStoreConcurrentUsers(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			store.Start(userID, models.WorkflowAddTask, 0)
			store.Advance(userID, "title", "task")
			if sess := store.Get(userID); sess == nil || sess.Step != 1 {
				t.Errorf("user %d: unexpected session state", userID)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("expected 50 sessions, got %d", store.Len())
	}
}
