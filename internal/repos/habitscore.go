package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/types"
)

type HabitScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, score *types.HabitScore) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.HabitScore, error)
	ListByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.HabitScore, error)
	ListByClientHabitID(ctx context.Context, tx *gorm.DB, clientHabitID uuid.UUID) ([]*types.HabitScore, error)
	CountActiveByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int64, error)
	PairExists(ctx context.Context, tx *gorm.DB, assessmentID, clientHabitID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, score *types.HabitScore) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SoftDeleteByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) error
}

type habitScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitScoreRepo(db *gorm.DB, baseLog *logger.Logger) HabitScoreRepo {
	return &habitScoreRepo{db: db, log: baseLog.With("repo", "HabitScoreRepo")}
}

func (sr *habitScoreRepo) Create(ctx context.Context, tx *gorm.DB, score *types.HabitScore) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Create(score).Error
}

func (sr *habitScoreRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.HabitScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var score types.HabitScore
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (sr *habitScoreRepo) ListByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.HabitScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.HabitScore
	err := transaction.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *habitScoreRepo) ListByClientHabitID(ctx context.Context, tx *gorm.DB, clientHabitID uuid.UUID) ([]*types.HabitScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.HabitScore
	err := transaction.WithContext(ctx).
		Joins("JOIN weekly_assessment ON weekly_assessment.id = habit_score.assessment_id").
		Where("habit_score.client_habit_id = ?", clientHabitID).
		Order("weekly_assessment.week_start_date ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *habitScoreRepo) CountActiveByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.HabitScore{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (sr *habitScoreRepo) PairExists(ctx context.Context, tx *gorm.DB, assessmentID, clientHabitID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.HabitScore{}).
		Where("assessment_id = ? AND client_habit_id = ?", assessmentID, clientHabitID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (sr *habitScoreRepo) Update(ctx context.Context, tx *gorm.DB, score *types.HabitScore) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Save(score).Error
}

func (sr *habitScoreRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.HabitScore{}).Error
}

func (sr *habitScoreRepo) SoftDeleteByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(assessmentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("assessment_id IN ?", assessmentIDs).
		Delete(&types.HabitScore{}).Error
}
