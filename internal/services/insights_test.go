package services

import (
	"context"
	"testing"
)

func TestLatestInsightsNoHistory(t *testing.T) {
	f := newFixture(t)
	client := f.mustClient(t, "empty@example.com")

	got, err := f.insights.Latest(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("latest insights: %v", err)
	}
	if got.HasData {
		t.Fatalf("expected no data, got %+v", got)
	}
	if got.Score != nil || got.Delta != nil || got.AsOf != nil {
		t.Fatalf("empty insights should carry no values, got %+v", got)
	}
}

func TestLatestInsightsSingleWeek(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "single@example.com")
	habit := f.mustHabit(t, "Drink Water")
	assignment := f.mustAssign(t, client.ID, habit.ID, 0)
	assessment := f.mustAssessment(t, client.ID, week(t, "2026-08-03"))
	f.mustScore(t, assessment.ID, assignment.ID, 6)

	got, err := f.insights.Latest(ctx, client.ID)
	if err != nil {
		t.Fatalf("latest insights: %v", err)
	}
	if !got.HasData {
		t.Fatalf("expected data, got %+v", got)
	}
	if got.Score == nil || *got.Score != 6 {
		t.Fatalf("score = %v, want 6", got.Score)
	}
	if got.Delta != nil {
		t.Fatalf("delta = %v, want nil with a single week", *got.Delta)
	}
	if got.AsOf == nil || *got.AsOf != "2026-08-03" {
		t.Fatalf("as_of = %v, want 2026-08-03", got.AsOf)
	}
}

func TestLatestInsightsDelta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "delta@example.com")
	habit := f.mustHabit(t, "Exercise")
	assignment := f.mustAssign(t, client.ID, habit.ID, 0)

	prev := f.mustAssessment(t, client.ID, week(t, "2026-07-27"))
	f.mustScore(t, prev.ID, assignment.ID, 4)
	latest := f.mustAssessment(t, client.ID, week(t, "2026-08-03"))
	f.mustScore(t, latest.ID, assignment.ID, 7)

	got, err := f.insights.Latest(ctx, client.ID)
	if err != nil {
		t.Fatalf("latest insights: %v", err)
	}
	if got.Score == nil || *got.Score != 7 {
		t.Fatalf("score = %v, want 7", got.Score)
	}
	if got.Delta == nil || *got.Delta != 3 {
		t.Fatalf("delta = %v, want 3", got.Delta)
	}
	if got.AsOf == nil || *got.AsOf != "2026-08-03" {
		t.Fatalf("as_of = %v, want the latest week", got.AsOf)
	}
}

func TestLatestInsightsUnscoredLatestWeek(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "nilweek@example.com")
	habit := f.mustHabit(t, "Exercise")
	assignment := f.mustAssign(t, client.ID, habit.ID, 0)

	prev := f.mustAssessment(t, client.ID, week(t, "2026-07-27"))
	f.mustScore(t, prev.ID, assignment.ID, 4)
	f.mustAssessment(t, client.ID, week(t, "2026-08-03"))

	got, err := f.insights.Latest(ctx, client.ID)
	if err != nil {
		t.Fatalf("latest insights: %v", err)
	}
	if !got.HasData {
		t.Fatalf("expected data, got %+v", got)
	}
	// The latest week exists but has no scores: no score, no delta.
	if got.Score != nil {
		t.Fatalf("score = %v, want nil", *got.Score)
	}
	if got.Delta != nil {
		t.Fatalf("delta = %v, want nil", *got.Delta)
	}
}

func TestLatestInsightsIgnoresDeletedAssessments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "ignore@example.com")
	habit := f.mustHabit(t, "Exercise")
	assignment := f.mustAssign(t, client.ID, habit.ID, 0)

	prev := f.mustAssessment(t, client.ID, week(t, "2026-07-27"))
	f.mustScore(t, prev.ID, assignment.ID, 4)
	latest := f.mustAssessment(t, client.ID, week(t, "2026-08-03"))
	f.mustScore(t, latest.ID, assignment.ID, 9)

	if err := f.deleter.DeleteAssessment(ctx, latest.ID); err != nil {
		t.Fatalf("delete assessment: %v", err)
	}

	got, err := f.insights.Latest(ctx, client.ID)
	if err != nil {
		t.Fatalf("latest insights: %v", err)
	}
	if got.Score == nil || *got.Score != 4 {
		t.Fatalf("score = %v, want the surviving week's 4", got.Score)
	}
	if got.AsOf == nil || *got.AsOf != "2026-07-27" {
		t.Fatalf("as_of = %v, want 2026-07-27", got.AsOf)
	}
}

func TestLatestInsightsRefreshAfterNewAssessment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := f.mustClient(t, "fresh@example.com")
	habit := f.mustHabit(t, "Exercise")
	assignment := f.mustAssign(t, client.ID, habit.ID, 0)

	scored := f.mustAssessment(t, client.ID, week(t, "2026-08-03"))
	f.mustScore(t, scored.ID, assignment.ID, 6)

	// Prime the cache with the scored week.
	got, err := f.insights.Latest(ctx, client.ID)
	if err != nil {
		t.Fatalf("latest insights: %v", err)
	}
	if got.AsOf == nil || *got.AsOf != "2026-08-03" {
		t.Fatalf("as_of = %v, want 2026-08-03", got.AsOf)
	}

	// A newly created assessment must supersede the cached week even
	// before any score lands on it.
	f.mustAssessment(t, client.ID, week(t, "2026-08-10"))

	got, err = f.insights.Latest(ctx, client.ID)
	if err != nil {
		t.Fatalf("latest insights after new assessment: %v", err)
	}
	if got.AsOf == nil || *got.AsOf != "2026-08-10" {
		t.Fatalf("as_of = %v, want the new week 2026-08-10", got.AsOf)
	}
	if got.Score != nil {
		t.Fatalf("score = %v, want nil for the unscored new week", *got.Score)
	}
	if got.Delta != nil {
		t.Fatalf("delta = %v, want nil for the unscored new week", *got.Delta)
	}
}
