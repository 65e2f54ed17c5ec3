package authz

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/resilience-backend/internal/types"
)

func TestEvaluate_Matrix(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	cases := []struct {
		name   string
		role   types.Role
		action Action
		owner  *uuid.UUID
		want   Decision
	}{
		{"counsellor read-own other", types.RoleCounsellor, ActionReadOwn, &other, Permit},
		{"counsellor read-any", types.RoleCounsellor, ActionReadAny, nil, Permit},
		{"counsellor write-own other", types.RoleCounsellor, ActionWriteOwn, &other, Permit},
		{"counsellor write-any", types.RoleCounsellor, ActionWriteAny, nil, Permit},
		{"counsellor admin", types.RoleCounsellor, ActionAdmin, nil, Permit},

		{"client read-own self", types.RoleClient, ActionReadOwn, &self, Permit},
		{"client write-own self", types.RoleClient, ActionWriteOwn, &self, Permit},
		{"client read-own other", types.RoleClient, ActionReadOwn, &other, Deny},
		{"client write-own other", types.RoleClient, ActionWriteOwn, &other, Deny},
		{"client read-own nil owner", types.RoleClient, ActionReadOwn, nil, Deny},
		{"client read-any", types.RoleClient, ActionReadAny, nil, Deny},
		{"client write-any", types.RoleClient, ActionWriteAny, &self, Deny},
		{"client admin", types.RoleClient, ActionAdmin, &self, Deny},

		{"unknown role denied", types.Role("intern"), ActionReadOwn, &self, Deny},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(Actor{ID: self, Role: tc.role}, tc.action, tc.owner)
			if got != tc.want {
				t.Fatalf("Evaluate(%s, %s) = %s, want %s", tc.role, tc.action, got, tc.want)
			}
		})
	}
}

func TestEvaluate_NilActorIDDenied(t *testing.T) {
	owner := uuid.Nil
	got := Evaluate(Actor{ID: uuid.Nil, Role: types.RoleClient}, ActionReadOwn, &owner)
	if got != Deny {
		t.Fatalf("zero-value actor must not match a zero-value owner, got %s", got)
	}
}
