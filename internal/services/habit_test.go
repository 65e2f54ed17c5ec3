package services

import (
	"context"
	"testing"

	"github.com/yungbote/resilience-backend/internal/apperr"
)

func TestCreateHabitNameUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustHabit(t, "Exercise")
	_, err := f.habit.CreateHabit(ctx, CreateHabitRequest{Name: "Exercise"})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT for duplicate name, got %v", err)
	}

	if _, err := f.habit.CreateHabit(ctx, CreateHabitRequest{Name: "   "}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR for blank name, got %v", err)
	}
}

func TestHabitNameReusableAfterDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	habit := f.mustHabit(t, "Exercise")
	if err := f.deleter.DeleteHabit(ctx, habit.ID); err != nil {
		t.Fatalf("delete habit: %v", err)
	}
	f.mustHabit(t, "Exercise")
}

func TestUpdateHabitRenameConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustHabit(t, "Exercise")
	other := f.mustHabit(t, "Drink Water")

	name := "Exercise"
	_, err := f.habit.UpdateHabit(ctx, other.ID, UpdateHabitRequest{Name: &name})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT renaming onto taken name, got %v", err)
	}

	// Renaming to its own current name is a no-op, not a conflict.
	same := "Drink Water"
	if _, err := f.habit.UpdateHabit(ctx, other.ID, UpdateHabitRequest{Name: &same}); err != nil {
		t.Fatalf("self-rename: %v", err)
	}
}

func TestListHabitsOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustHabit(t, "Exercise")
	f.mustHabit(t, "Drink Water")
	f.mustHabit(t, "Connect with Nature")

	habits, err := f.habit.ListHabits(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("got %d habits, want 3", len(habits))
	}
	for i := 1; i < len(habits); i++ {
		if habits[i-1].Name > habits[i].Name {
			t.Fatalf("habits not sorted by name: %q before %q", habits[i-1].Name, habits[i].Name)
		}
	}
}
