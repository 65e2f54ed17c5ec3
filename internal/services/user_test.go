package services

import (
	"context"
	"testing"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/types"
)

func TestCreateClientNormalizesEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.user.CreateClient(ctx, CreateClientRequest{
		FirstName: "  Avery ",
		LastName:  "Stone",
		Email:     "  Avery.Stone@Example.COM ",
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if client.Email != "avery.stone@example.com" {
		t.Fatalf("email = %q, want lower-cased and trimmed", client.Email)
	}
	if client.FirstName != "Avery" {
		t.Fatalf("first name = %q, want trimmed", client.FirstName)
	}
	if client.Role != types.RoleClient {
		t.Fatalf("role = %q, want client", client.Role)
	}
}

func TestCreateClientEmailConflictCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustClient(t, "taken@example.com")
	_, err := f.user.CreateClient(ctx, CreateClientRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "TAKEN@example.com",
		Password:  "password123",
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestCreateClientRequiredFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []CreateClientRequest{
		{LastName: "Stone", Email: "a@example.com"},
		{FirstName: "Avery", Email: "a@example.com"},
		{FirstName: "Avery", LastName: "Stone"},
	}
	for i, req := range cases {
		if _, err := f.user.CreateClient(ctx, req); apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("case %d: expected VALIDATION_ERROR, got %v", i, err)
		}
	}
}

func TestUpdateClientEmailMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.mustClient(t, "a@example.com")
	f.mustClient(t, "b@example.com")

	newEmail := "b@example.com"
	_, err := f.user.UpdateClient(ctx, a.ID, UpdateClientRequest{Email: &newEmail})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT moving onto a taken email, got %v", err)
	}

	freeEmail := "c@example.com"
	updated, err := f.user.UpdateClient(ctx, a.ID, UpdateClientRequest{Email: &freeEmail})
	if err != nil {
		t.Fatalf("update email: %v", err)
	}
	if updated.Email != "c@example.com" {
		t.Fatalf("email = %q, want c@example.com", updated.Email)
	}
	if updated.Role != types.RoleClient {
		t.Fatalf("role changed on update: %q", updated.Role)
	}
}

func TestListClientsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustClient(t, "one@example.com")
	f.mustClient(t, "two@example.com")
	f.mustClient(t, "three@example.com")

	page, err := f.user.ListClients(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d clients, want 2", len(page))
	}
	rest, err := f.user.ListClients(ctx, 2, 2)
	if err != nil {
		t.Fatalf("list clients offset: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("got %d clients, want 1", len(rest))
	}

	if _, err := f.user.ListClients(ctx, -1, 0); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR for negative limit, got %v", err)
	}
}
