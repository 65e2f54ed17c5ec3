package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/normalization"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
	"github.com/yungbote/resilience-backend/internal/types"
)

type AssignHabitRequest struct {
	ClientID     uuid.UUID `json:"client_id"`
	HabitID      uuid.UUID `json:"habit_id"`
	CustomLabel  *string   `json:"custom_label"`
	DisplayOrder int       `json:"display_order"`
}

type UpdateClientHabitRequest struct {
	CustomLabel  *string `json:"custom_label"`
	DisplayOrder *int    `json:"display_order"`
}

// ClientHabitService manages habit assignments. The (client, habit)
// pair and the per-client display order are both unique among active
// assignments.
type ClientHabitService interface {
	AssignHabit(ctx context.Context, req AssignHabitRequest) (*types.ClientHabit, error)
	GetClientHabit(ctx context.Context, clientHabitID uuid.UUID) (*types.ClientHabit, error)
	GetClientHabitIncludingDeleted(ctx context.Context, clientHabitID uuid.UUID) (*types.ClientHabit, error)
	UpdateClientHabit(ctx context.Context, clientHabitID uuid.UUID, req UpdateClientHabitRequest) (*types.ClientHabit, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*types.ClientHabit, error)
	ScoreHistory(ctx context.Context, clientHabitID uuid.UUID) ([]*types.HabitScore, error)
}

type clientHabitService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	habitRepo       repos.HabitRepo
	clientHabitRepo repos.ClientHabitRepo
	scoreRepo       repos.HabitScoreRepo
}

func NewClientHabitService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	habitRepo repos.HabitRepo,
	clientHabitRepo repos.ClientHabitRepo,
	scoreRepo repos.HabitScoreRepo,
) ClientHabitService {
	return &clientHabitService{
		db:              db,
		log:             log.With("service", "ClientHabitService"),
		userRepo:        userRepo,
		habitRepo:       habitRepo,
		clientHabitRepo: clientHabitRepo,
		scoreRepo:       scoreRepo,
	}
}

func (cs *clientHabitService) AssignHabit(ctx context.Context, req AssignHabitRequest) (*types.ClientHabit, error) {
	if req.DisplayOrder < 0 {
		return nil, apperr.Validation("display_order", "display_order must be non-negative")
	}
	label := normalization.StripMarkupPtr(req.CustomLabel)
	if err := checkFreeText("custom_label", label); err != nil {
		return nil, err
	}

	assignment := &types.ClientHabit{
		ID:           uuid.New(),
		ClientID:     req.ClientID,
		HabitID:      req.HabitID,
		CustomLabel:  label,
		DisplayOrder: req.DisplayOrder,
	}

	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := cs.userRepo.GetByID(ctx, tx, req.ClientID)
		if err != nil {
			return err
		}
		if client == nil || client.Role != types.RoleClient {
			return apperr.NotFound("client")
		}
		habit, err := cs.habitRepo.GetByID(ctx, tx, req.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return apperr.NotFound("habit")
		}

		paired, err := cs.clientHabitRepo.PairExists(ctx, tx, req.ClientID, req.HabitID)
		if err != nil {
			return err
		}
		if paired {
			return apperr.Conflict("habit_id", "habit is already assigned to this client")
		}
		taken, err := cs.clientHabitRepo.OrderTaken(ctx, tx, req.ClientID, req.DisplayOrder, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("display_order", "display_order %d is already in use for this client", req.DisplayOrder)
		}

		return cs.clientHabitRepo.Create(ctx, tx, assignment)
	})
	if err != nil {
		return nil, err
	}

	cs.log.Info("habit assigned",
		"client_habit_id", assignment.ID.String(),
		"client_id", assignment.ClientID.String())
	return assignment, nil
}

func (cs *clientHabitService) GetClientHabit(ctx context.Context, clientHabitID uuid.UUID) (*types.ClientHabit, error) {
	assignment, err := cs.clientHabitRepo.GetByID(ctx, nil, clientHabitID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperr.NotFound("client habit")
	}
	return assignment, nil
}

// GetClientHabitIncludingDeleted resolves an assignment whether or
// not it has been unassigned. Score history stays readable after
// unassignment and its owner still has to be identified.
func (cs *clientHabitService) GetClientHabitIncludingDeleted(ctx context.Context, clientHabitID uuid.UUID) (*types.ClientHabit, error) {
	assignment, err := cs.clientHabitRepo.GetByIDUnscoped(ctx, nil, clientHabitID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperr.NotFound("client habit")
	}
	return assignment, nil
}

func (cs *clientHabitService) UpdateClientHabit(ctx context.Context, clientHabitID uuid.UUID, req UpdateClientHabitRequest) (*types.ClientHabit, error) {
	var assignment *types.ClientHabit
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.clientHabitRepo.GetByID(ctx, tx, clientHabitID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("client habit")
		}

		if req.CustomLabel != nil {
			label := normalization.StripMarkupPtr(req.CustomLabel)
			if err := checkFreeText("custom_label", label); err != nil {
				return err
			}
			existing.CustomLabel = label
		}
		if req.DisplayOrder != nil {
			order := *req.DisplayOrder
			if order < 0 {
				return apperr.Validation("display_order", "display_order must be non-negative")
			}
			if order != existing.DisplayOrder {
				taken, err := cs.clientHabitRepo.OrderTaken(ctx, tx, existing.ClientID, order, existing.ID)
				if err != nil {
					return err
				}
				if taken {
					return apperr.Conflict("display_order", "display_order %d is already in use for this client", order)
				}
				existing.DisplayOrder = order
			}
		}

		if err := cs.clientHabitRepo.Update(ctx, tx, existing); err != nil {
			return err
		}
		assignment = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (cs *clientHabitService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*types.ClientHabit, error) {
	return cs.clientHabitRepo.ListByClientID(ctx, nil, clientID)
}

// ScoreHistory returns every active score recorded against the
// assignment across all weeks, oldest week first. The assignment may
// itself be soft-deleted; its history stays readable.
func (cs *clientHabitService) ScoreHistory(ctx context.Context, clientHabitID uuid.UUID) ([]*types.HabitScore, error) {
	return cs.scoreRepo.ListByClientHabitID(ctx, nil, clientHabitID)
}
