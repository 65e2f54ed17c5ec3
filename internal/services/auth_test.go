package services

import (
	"context"
	"testing"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/requestdata"
	"github.com/yungbote/resilience-backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, RegisterRequest{
		FirstName: "Robin",
		LastName:  "Hale",
		Email:     "Robin.Hale@Example.com",
		Password:  "password123",
		Role:      "counsellor",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != types.RoleCounsellor {
		t.Fatalf("role = %q, want counsellor", user.Role)
	}
	if user.Password == "password123" {
		t.Fatal("password stored in plaintext")
	}

	pair, err := f.auth.Login(ctx, "robin.hale@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("token pair incomplete: %+v", pair)
	}

	if _, err := f.auth.Login(ctx, "robin.hale@example.com", "wrong"); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected AUTH_ERROR for bad password, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "nobody@example.com", "password123"); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected AUTH_ERROR for unknown email, got %v", err)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterRequest{
		FirstName: "Robin",
		LastName:  "Hale",
		Email:     "robin@example.com",
		Password:  "password123",
		Role:      "admin",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSetContextFromTokenRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, RegisterRequest{
		FirstName: "Robin",
		LastName:  "Hale",
		Email:     "robin@example.com",
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := f.auth.Login(ctx, "robin@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authed, err := f.auth.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil {
		t.Fatal("no request data in context")
	}
	if rd.UserID != user.ID {
		t.Fatalf("user id = %s, want %s", rd.UserID, user.ID)
	}
	if rd.Role != types.RoleClient {
		t.Fatalf("role = %q, want client", rd.Role)
	}

	if _, err := f.auth.SetContextFromToken(ctx, "not-a-token"); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected AUTH_ERROR for garbage token, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Register(ctx, RegisterRequest{
		FirstName: "Robin",
		LastName:  "Hale",
		Email:     "robin@example.com",
		Password:  "password123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := f.auth.Login(ctx, "robin@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, err := f.auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// The old refresh token is dead after rotation.
	if _, err := f.auth.Refresh(ctx, pair.RefreshToken); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected AUTH_ERROR for spent token, got %v", err)
	}
}

func TestLogoutDropsRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Register(ctx, RegisterRequest{
		FirstName: "Robin",
		LastName:  "Hale",
		Email:     "robin@example.com",
		Password:  "password123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := f.auth.Login(ctx, "robin@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authed, err := f.auth.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	if err := f.auth.Logout(authed); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.auth.Refresh(ctx, pair.RefreshToken); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected AUTH_ERROR after logout, got %v", err)
	}
}

func TestRefreshTokenStoredHashed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Register(ctx, RegisterRequest{
		FirstName: "Robin",
		LastName:  "Hale",
		Email:     "hashed@example.com",
		Password:  "password123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := f.auth.Login(ctx, "hashed@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	var rows []types.UserToken
	if err := f.db.Find(&rows).Error; err != nil {
		t.Fatalf("load token rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d token rows, want 1", len(rows))
	}
	if rows[0].Token == pair.RefreshToken {
		t.Fatal("refresh token stored in plaintext")
	}

	// The plaintext token still resolves through its hash.
	if _, err := f.auth.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("refresh with plaintext token: %v", err)
	}
}
