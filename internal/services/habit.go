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

type CreateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateHabitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// HabitService manages the shared master list of habits. Name
// uniqueness is scoped to active habits, so a deleted habit's name can
// be reused.
type HabitService interface {
	CreateHabit(ctx context.Context, req CreateHabitRequest) (*types.Habit, error)
	GetHabit(ctx context.Context, habitID uuid.UUID) (*types.Habit, error)
	UpdateHabit(ctx context.Context, habitID uuid.UUID, req UpdateHabitRequest) (*types.Habit, error)
	ListHabits(ctx context.Context, limit, offset int) ([]*types.Habit, error)
}

type habitService struct {
	db        *gorm.DB
	log       *logger.Logger
	habitRepo repos.HabitRepo
}

func NewHabitService(db *gorm.DB, log *logger.Logger, habitRepo repos.HabitRepo) HabitService {
	return &habitService{
		db:        db,
		log:       log.With("service", "HabitService"),
		habitRepo: habitRepo,
	}
}

func (hs *habitService) CreateHabit(ctx context.Context, req CreateHabitRequest) (*types.Habit, error) {
	name := normalization.TrimInputString(req.Name)
	if name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	habit := &types.Habit{
		ID:          uuid.New(),
		Name:        name,
		Description: normalization.StripMarkup(req.Description),
	}

	err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := hs.habitRepo.NameTaken(ctx, tx, name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("name", "habit %q already exists", name)
		}
		return hs.habitRepo.Create(ctx, tx, habit)
	})
	if err != nil {
		return nil, err
	}

	hs.log.Info("habit created", "habit_id", habit.ID.String(), "name", habit.Name)
	return habit, nil
}

func (hs *habitService) GetHabit(ctx context.Context, habitID uuid.UUID) (*types.Habit, error) {
	habit, err := hs.habitRepo.GetByID(ctx, nil, habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, apperr.NotFound("habit")
	}
	return habit, nil
}

func (hs *habitService) UpdateHabit(ctx context.Context, habitID uuid.UUID, req UpdateHabitRequest) (*types.Habit, error) {
	var habit *types.Habit
	err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := hs.habitRepo.GetByID(ctx, tx, habitID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("habit")
		}

		if req.Name != nil {
			name := normalization.TrimInputString(*req.Name)
			if name == "" {
				return apperr.Validation("name", "name cannot be empty")
			}
			if name != existing.Name {
				taken, err := hs.habitRepo.NameTaken(ctx, tx, name, existing.ID)
				if err != nil {
					return err
				}
				if taken {
					return apperr.Conflict("name", "habit %q already exists", name)
				}
				existing.Name = name
			}
		}
		if req.Description != nil {
			existing.Description = normalization.StripMarkup(*req.Description)
		}

		if err := hs.habitRepo.Update(ctx, tx, existing); err != nil {
			return err
		}
		habit = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (hs *habitService) ListHabits(ctx context.Context, limit, offset int) ([]*types.Habit, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return hs.habitRepo.List(ctx, nil, limit, offset)
}
