package authz

import (
	"github.com/google/uuid"

	"github.com/yungbote/resilience-backend/internal/types"
)

// Action is the category of access being requested.
type Action string

const (
	ActionReadOwn  Action = "read-own"
	ActionReadAny  Action = "read-any"
	ActionWriteOwn Action = "write-own"
	ActionWriteAny Action = "write-any"
	ActionAdmin    Action = "admin"
)

type Decision string

const (
	Permit Decision = "permit"
	Deny   Decision = "deny"
)

type Actor struct {
	ID   uuid.UUID
	Role types.Role
}

// Evaluate decides whether actor may perform action on a resource
// owned by ownerID (nil for role-agnostic resources such as the
// master habit list). Counsellors are permitted everything. Clients
// are permitted only read-own and write-own, and only when they are
// the resource owner. Pure function: no I/O, never errors; callers
// map Deny to an authorization failure.
func Evaluate(actor Actor, action Action, ownerID *uuid.UUID) Decision {
	if actor.Role == types.RoleCounsellor {
		return Permit
	}
	if actor.Role != types.RoleClient {
		return Deny
	}
	switch action {
	case ActionReadOwn, ActionWriteOwn:
		if ownerID != nil && actor.ID != uuid.Nil && actor.ID == *ownerID {
			return Permit
		}
	}
	return Deny
}
