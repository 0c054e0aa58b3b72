package workflow

import (
	"testing"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
)

func step(t *testing.T, id models.WorkflowID, index int) Step {
	t.Helper()
	wf, ok := Registry()[id]
	if !ok {
		t.Fatalf("workflow %q not registered", id)
	}
	if index >= len(wf.Steps) {
		t.Fatalf("workflow %q has no step %d", id, index)
	}
	return wf.Steps[index]
}

func TestRegistryCoversAllWorkflows(t *testing.T) {
	reg := Registry()

	want := []models.WorkflowID{
		models.WorkflowAddTask,
		models.WorkflowLogMeal,
		models.WorkflowAddHabit,
		models.WorkflowAddNote,
		models.WorkflowCompleteTask,
		models.WorkflowDeleteTask,
		models.WorkflowViewNote,
	}
	for _, id := range want {
		wf, ok := reg[id]
		if !ok {
			t.Errorf("missing workflow %q", id)
			continue
		}
		if wf.ID != id {
			t.Errorf("workflow %q registered under %q", wf.ID, id)
		}
		if wf.Commit == nil {
			t.Errorf("workflow %q has no commit", id)
		}
		for i, s := range wf.Steps {
			if s.Field == "" || s.Prompt == "" || s.Parse == nil {
				t.Errorf("workflow %q step %d is incomplete", id, i)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	wf := Registry()[models.WorkflowLogMeal]
	if wf.Terminal(0) {
		t.Error("first step must not be terminal")
	}
	if !wf.Terminal(len(wf.Steps) - 1) {
		t.Error("last step must be terminal")
	}
}

func TestParseDate(t *testing.T) {
	parse := step(t, models.WorkflowAddTask, 2).Parse
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"сегодня", today, false},
		{"today", today, false},
		{"Сегодня", today, false},
		{"завтра", tomorrow, false},
		{"tomorrow", tomorrow, false},
		{"2026-09-15", "2026-09-15", false},
		{"15.09.2026", "", true},
		{"yesterday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestParsePriorityDefaultsToMedium(t *testing.T) {
	parse := step(t, models.WorkflowAddTask, 3).Parse

	tests := []struct {
		input string
		want  models.TaskPriority
	}{
		{"🔴 Высокий", models.PriorityHigh},
		{"🟡 Средний", models.PriorityMedium},
		{"🟢 Низкий", models.PriorityLow},
		{"whatever", models.PriorityMedium},
		{"", models.PriorityMedium},
	}

	for _, tt := range tests {
		got, err := parse(tt.input)
		if err != nil {
			t.Fatalf("priority parse must not fail, got %v", err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %s, got %v", tt.input, tt.want, got)
		}
	}
}

func TestParseFrequencyDefaultsToDaily(t *testing.T) {
	parse := step(t, models.WorkflowAddHabit, 2).Parse

	got, err := parse("Еженедельно")
	if err != nil || got != models.FrequencyWeekly {
		t.Errorf("expected weekly, got %v (%v)", got, err)
	}

	got, err = parse("gibberish")
	if err != nil || got != models.FrequencyDaily {
		t.Errorf("expected daily fallback, got %v (%v)", got, err)
	}
}

func TestParseMealTypeIsStrict(t *testing.T) {
	parse := step(t, models.WorkflowLogMeal, StepMealType).Parse

	got, err := parse("🥗 Завтрак")
	if err != nil || got != models.MealBreakfast {
		t.Errorf("expected завтрак, got %v (%v)", got, err)
	}

	if _, err := parse("pizza"); err == nil {
		t.Error("expected error for unrecognized meal label")
	}
}

func TestParseCalories(t *testing.T) {
	parse := step(t, models.WorkflowLogMeal, 2).Parse

	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"300", 300, false},
		{"0", 0, false},
		{" 42 ", 42, false},
		{"abc", 0, true},
		{"12.5", 0, true},
		{"-100", 0, true},
	}

	for _, tt := range tests {
		got, err := parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %d, got %v", tt.input, tt.want, got)
		}
	}
}

func TestParseGrams(t *testing.T) {
	parse := step(t, models.WorkflowLogMeal, 3).Parse

	got, err := parse("10.5")
	if err != nil || got != 10.5 {
		t.Errorf("expected 10.5, got %v (%v)", got, err)
	}

	if _, err := parse("-1"); err == nil {
		t.Error("expected error for negative grams")
	}
	if _, err := parse("ten"); err == nil {
		t.Error("expected error for non-numeric grams")
	}
}

func TestParseTaskID(t *testing.T) {
	parse := step(t, models.WorkflowCompleteTask, 0).Parse

	got, err := parse("42")
	if err != nil || got != int64(42) {
		t.Errorf("expected int64 42, got %v (%v)", got, err)
	}

	if _, err := parse("forty-two"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestParseOptionalDash(t *testing.T) {
	parse := step(t, models.WorkflowAddTask, 1).Parse

	got, err := parse("-")
	if err != nil || got != "" {
		t.Errorf("expected empty value for '-', got %v (%v)", got, err)
	}

	got, err = parse("call the landlord")
	if err != nil || got != "call the landlord" {
		t.Errorf("expected passthrough, got %v (%v)", got, err)
	}
}

func TestMealForLabel(t *testing.T) {
	meal, ok := MealForLabel("🍝 Обед")
	if !ok || meal != models.MealLunch {
		t.Errorf("expected обед, got %q ok=%v", meal, ok)
	}

	if _, ok := MealForLabel("➕ Записать прием пищи"); ok {
		t.Error("generic add button is not a meal shortcut")
	}
}
