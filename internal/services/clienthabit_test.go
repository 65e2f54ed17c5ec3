package services

import (
	"context"
	"testing"

	"github.com/yungbote/resilience-backend/internal/apperr"
)

func TestAssignHabitPairUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "assign@example.com")
	habit := f.mustHabit(t, "Exercise")
	f.mustAssign(t, client.ID, habit.ID, 0)

	_, err := f.clientHabit.AssignHabit(ctx, AssignHabitRequest{
		ClientID:     client.ID,
		HabitID:      habit.ID,
		DisplayOrder: 1,
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT for duplicate pair, got %v", err)
	}
}

func TestAssignHabitOrderUniquePerClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "order@example.com")
	other := f.mustClient(t, "other@example.com")
	h1 := f.mustHabit(t, "Exercise")
	h2 := f.mustHabit(t, "Drink Water")
	f.mustAssign(t, client.ID, h1.ID, 0)

	_, err := f.clientHabit.AssignHabit(ctx, AssignHabitRequest{
		ClientID:     client.ID,
		HabitID:      h2.ID,
		DisplayOrder: 0,
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT for duplicate order, got %v", err)
	}

	// Order uniqueness is scoped per client.
	f.mustAssign(t, other.ID, h1.ID, 0)
}

func TestAssignHabitUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "refs@example.com")
	habit := f.mustHabit(t, "Exercise")

	_, err := f.clientHabit.AssignHabit(ctx, AssignHabitRequest{
		ClientID: client.ID,
		HabitID:  client.ID, // not a habit id
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NOT_FOUND for unknown habit, got %v", err)
	}

	_, err = f.clientHabit.AssignHabit(ctx, AssignHabitRequest{
		ClientID: habit.ID, // not a client id
		HabitID:  habit.ID,
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NOT_FOUND for unknown client, got %v", err)
	}
}

func TestUpdateClientHabitOrderMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "move@example.com")
	h1 := f.mustHabit(t, "Exercise")
	h2 := f.mustHabit(t, "Drink Water")
	a1 := f.mustAssign(t, client.ID, h1.ID, 0)
	f.mustAssign(t, client.ID, h2.ID, 1)

	taken := 1
	_, err := f.clientHabit.UpdateClientHabit(ctx, a1.ID, UpdateClientHabitRequest{DisplayOrder: &taken})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT moving onto taken order, got %v", err)
	}

	free := 2
	updated, err := f.clientHabit.UpdateClientHabit(ctx, a1.ID, UpdateClientHabitRequest{DisplayOrder: &free})
	if err != nil {
		t.Fatalf("move order: %v", err)
	}
	if updated.DisplayOrder != 2 {
		t.Fatalf("display order = %d, want 2", updated.DisplayOrder)
	}
}

func TestAssignHabitSanitizesLabel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "label@example.com")
	habit := f.mustHabit(t, "Exercise")

	label := "<i>Morning</i> run"
	assignment, err := f.clientHabit.AssignHabit(ctx, AssignHabitRequest{
		ClientID:     client.ID,
		HabitID:      habit.ID,
		CustomLabel:  &label,
		DisplayOrder: 0,
	})
	if err != nil {
		t.Fatalf("assign habit: %v", err)
	}
	if assignment.CustomLabel == nil || *assignment.CustomLabel != "Morning run" {
		t.Fatalf("label = %v, want markup stripped", assignment.CustomLabel)
	}
}

func TestListByClientOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "listorder@example.com")
	h1 := f.mustHabit(t, "Exercise")
	h2 := f.mustHabit(t, "Drink Water")
	f.mustAssign(t, client.ID, h1.ID, 5)
	f.mustAssign(t, client.ID, h2.ID, 1)

	assignments, err := f.clientHabit.ListByClient(ctx, client.ID)
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("got %d assignments, want 2", len(assignments))
	}
	if assignments[0].DisplayOrder != 1 || assignments[1].DisplayOrder != 5 {
		t.Fatalf("assignments not sorted by display order: %d, %d",
			assignments[0].DisplayOrder, assignments[1].DisplayOrder)
	}
}

func TestDeletedAssignmentStillResolvableForHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "audit@example.com")
	habit := f.mustHabit(t, "Exercise")
	assignment := f.mustAssign(t, client.ID, habit.ID, 0)
	assessment := f.mustAssessment(t, client.ID, week(t, "2026-08-03"))
	f.mustScore(t, assessment.ID, assignment.ID, 7)

	if err := f.deleter.DeleteClientHabit(ctx, assignment.ID); err != nil {
		t.Fatalf("delete assignment: %v", err)
	}

	if _, err := f.clientHabit.GetClientHabit(ctx, assignment.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NOT_FOUND from the scoped lookup, got %v", err)
	}

	got, err := f.clientHabit.GetClientHabitIncludingDeleted(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("unscoped lookup: %v", err)
	}
	if got.ClientID != client.ID {
		t.Fatalf("owner = %s, want %s", got.ClientID, client.ID)
	}

	history, err := f.clientHabit.ScoreHistory(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("got %d history rows, want 1", len(history))
	}
}
