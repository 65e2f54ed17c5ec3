package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{Validation("score", "score must be between 0 and 10"), KindValidation},
		{Auth("invalid credentials"), KindAuth},
		{NotFound("client"), KindNotFound},
		{Conflict("email", "email is already in use"), KindConflict},
		{Semantic("assessment is full"), KindSemantic},
		{Internal(errors.New("pg: connection refused")), KindInternal},
		{errors.New("plain"), KindInternal},
		{nil, KindInternal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("create assessment: %w", Conflict("week_start_date", "week taken"))
	if got := KindOf(err); got != KindConflict {
		t.Fatalf("KindOf(wrapped) = %s, want %s", got, KindConflict)
	}
}

func TestMessageOfHidesInternalDetail(t *testing.T) {
	err := Internal(errors.New("pg: password authentication failed for user"))
	if got := MessageOf(err); got != "internal error" {
		t.Fatalf("internal detail leaked: %q", got)
	}
	if got := MessageOf(errors.New("raw store error")); got != "internal error" {
		t.Fatalf("untyped error leaked: %q", got)
	}
	if got := MessageOf(NotFound("habit")); got != "habit not found" {
		t.Fatalf("MessageOf = %q, want %q", got, "habit not found")
	}
}

func TestErrorStringCarriesField(t *testing.T) {
	err := Validation("display_order", "display_order must be non-negative")
	want := "VALIDATION_ERROR: display_order must be non-negative (display_order)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
