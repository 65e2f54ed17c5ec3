package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
	"github.com/yungbote/resilience-backend/internal/types"
)

// SoftDeleteService walks the ownership edges explicitly when an
// entity is deleted, inside one transaction per call:
//
//	Client -> ClientHabit
//	Client -> WeeklyAssessment -> HabitScore
//
// The ClientHabit -> HabitScore edge is deliberately NOT cascaded:
// historical scores stay as an audit trail, the assignment only
// becomes ineligible for new scores. Deleting a score recomputes the
// parent aggregate in the same transaction. Nothing is ever
// physically erased and there is no resurrection.
type SoftDeleteService interface {
	DeleteClient(ctx context.Context, clientID uuid.UUID) error
	DeleteHabit(ctx context.Context, habitID uuid.UUID) error
	DeleteClientHabit(ctx context.Context, clientHabitID uuid.UUID) error
	DeleteAssessment(ctx context.Context, assessmentID uuid.UUID) error
	DeleteScore(ctx context.Context, scoreID uuid.UUID) error
}

type softDeleteService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	habitRepo       repos.HabitRepo
	clientHabitRepo repos.ClientHabitRepo
	assessmentRepo  repos.AssessmentRepo
	scoreRepo       repos.HabitScoreRepo
	wellbeing       WellbeingService
	insights        InsightsService
}

func NewSoftDeleteService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	habitRepo repos.HabitRepo,
	clientHabitRepo repos.ClientHabitRepo,
	assessmentRepo repos.AssessmentRepo,
	scoreRepo repos.HabitScoreRepo,
	wellbeing WellbeingService,
	insights InsightsService,
) SoftDeleteService {
	return &softDeleteService{
		db:              db,
		log:             log.With("service", "SoftDeleteService"),
		userRepo:        userRepo,
		habitRepo:       habitRepo,
		clientHabitRepo: clientHabitRepo,
		assessmentRepo:  assessmentRepo,
		scoreRepo:       scoreRepo,
		wellbeing:       wellbeing,
		insights:        insights,
	}
}

func (ds *softDeleteService) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ds.userRepo.GetByID(ctx, tx, clientID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("load client: %w", err))
		}
		if user == nil {
			return ds.alreadyGoneOrMissing(ctx, tx, &types.User{}, clientID, "client")
		}
		if user.Role != types.RoleClient {
			return apperr.Semantic("user is not a client")
		}

		assessmentIDs, err := ds.assessmentRepo.GetIDsByClientID(ctx, tx, clientID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("collect assessments: %w", err))
		}
		if err := ds.scoreRepo.SoftDeleteByAssessmentIDs(ctx, tx, assessmentIDs); err != nil {
			return apperr.Internal(fmt.Errorf("cascade scores: %w", err))
		}
		if err := ds.assessmentRepo.SoftDeleteByIDs(ctx, tx, assessmentIDs); err != nil {
			return apperr.Internal(fmt.Errorf("cascade assessments: %w", err))
		}
		if err := ds.clientHabitRepo.SoftDeleteByClientID(ctx, tx, clientID); err != nil {
			return apperr.Internal(fmt.Errorf("cascade client habits: %w", err))
		}
		if err := ds.userRepo.SoftDeleteByID(ctx, tx, clientID); err != nil {
			return apperr.Internal(fmt.Errorf("delete client: %w", err))
		}
		return nil
	})
	if errors.Is(err, errAlreadyDeleted) {
		return nil
	}
	if err != nil {
		return err
	}
	ds.insights.Invalidate(ctx, clientID)
	ds.log.Info("Client soft-deleted with cascade", "client_id", clientID)
	return nil
}

func (ds *softDeleteService) DeleteHabit(ctx context.Context, habitID uuid.UUID) error {
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		habit, err := ds.habitRepo.GetByID(ctx, tx, habitID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("load habit: %w", err))
		}
		if habit == nil {
			return ds.alreadyGoneOrMissing(ctx, tx, &types.Habit{}, habitID, "habit")
		}

		// Habits are a shared master list, not owned by any client:
		// deletion is refused while assignments reference it instead
		// of cascading.
		refs, err := ds.clientHabitRepo.CountActiveByHabitID(ctx, tx, habitID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("count habit references: %w", err))
		}
		if refs > 0 {
			return apperr.Semantic("habit is assigned to %d client(s) and cannot be deleted", refs)
		}
		if err := ds.habitRepo.SoftDeleteByID(ctx, tx, habitID); err != nil {
			return apperr.Internal(fmt.Errorf("delete habit: %w", err))
		}
		return nil
	})
	if errors.Is(err, errAlreadyDeleted) {
		return nil
	}
	return err
}

func (ds *softDeleteService) DeleteClientHabit(ctx context.Context, clientHabitID uuid.UUID) error {
	var clientID uuid.UUID
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clientHabit, err := ds.clientHabitRepo.GetByID(ctx, tx, clientHabitID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("load client habit: %w", err))
		}
		if clientHabit == nil {
			return ds.alreadyGoneOrMissing(ctx, tx, &types.ClientHabit{}, clientHabitID, "client habit")
		}
		clientID = clientHabit.ClientID

		// Historical scores survive on purpose; the assignment just
		// stops accepting new ones.
		if err := ds.clientHabitRepo.SoftDeleteByID(ctx, tx, clientHabitID); err != nil {
			return apperr.Internal(fmt.Errorf("delete client habit: %w", err))
		}
		return nil
	})
	if errors.Is(err, errAlreadyDeleted) {
		return nil
	}
	if err != nil {
		return err
	}
	ds.log.Info("Client habit unassigned", "client_id", clientID, "client_habit_id", clientHabitID)
	return nil
}

func (ds *softDeleteService) DeleteAssessment(ctx context.Context, assessmentID uuid.UUID) error {
	var clientID uuid.UUID
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := ds.assessmentRepo.GetByID(ctx, tx, assessmentID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("load assessment: %w", err))
		}
		if assessment == nil {
			return ds.alreadyGoneOrMissing(ctx, tx, &types.WeeklyAssessment{}, assessmentID, "assessment")
		}
		clientID = assessment.ClientID

		// No recompute here: the aggregate dies with its assessment.
		if err := ds.scoreRepo.SoftDeleteByAssessmentIDs(ctx, tx, []uuid.UUID{assessmentID}); err != nil {
			return apperr.Internal(fmt.Errorf("cascade scores: %w", err))
		}
		if err := ds.assessmentRepo.SoftDeleteByID(ctx, tx, assessmentID); err != nil {
			return apperr.Internal(fmt.Errorf("delete assessment: %w", err))
		}
		return nil
	})
	if errors.Is(err, errAlreadyDeleted) {
		return nil
	}
	if err != nil {
		return err
	}
	ds.insights.Invalidate(ctx, clientID)
	return nil
}

func (ds *softDeleteService) DeleteScore(ctx context.Context, scoreID uuid.UUID) error {
	var clientID uuid.UUID
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		score, err := ds.scoreRepo.GetByID(ctx, tx, scoreID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("load score: %w", err))
		}
		if score == nil {
			return ds.alreadyGoneOrMissing(ctx, tx, &types.HabitScore{}, scoreID, "score")
		}
		assessment, err := ds.assessmentRepo.GetByID(ctx, tx, score.AssessmentID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("load parent assessment: %w", err))
		}
		if assessment != nil {
			clientID = assessment.ClientID
		}

		if err := ds.scoreRepo.SoftDeleteByID(ctx, tx, scoreID); err != nil {
			return apperr.Internal(fmt.Errorf("delete score: %w", err))
		}
		if err := ds.wellbeing.Recompute(ctx, tx, score.AssessmentID); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if errors.Is(err, errAlreadyDeleted) {
		return nil
	}
	if err != nil {
		return err
	}
	if clientID != uuid.Nil {
		ds.insights.Invalidate(ctx, clientID)
	}
	return nil
}

// errAlreadyDeleted marks the idempotent case internally. Callers
// convert it to a successful no-op right after the transaction.
var errAlreadyDeleted = fmt.Errorf("already deleted")

// alreadyGoneOrMissing distinguishes "was deleted before" (a
// successful no-op) from "never existed" (NOT_FOUND).
func (ds *softDeleteService) alreadyGoneOrMissing(ctx context.Context, tx *gorm.DB, model interface{}, id uuid.UUID, resource string) error {
	var count int64
	err := tx.WithContext(ctx).
		Unscoped().
		Model(model).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Count(&count).Error
	if err != nil {
		return apperr.Internal(fmt.Errorf("check deleted state: %w", err))
	}
	if count > 0 {
		return errAlreadyDeleted
	}
	return apperr.NotFound(resource)
}
