package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/types"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *types.WeeklyAssessment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.WeeklyAssessment, error)
	WeekTaken(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, weekStart datatypes.Date, excludeID uuid.UUID) (bool, error)
	ListByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, from, to *time.Time, limit, offset int) ([]*types.WeeklyAssessment, error)
	LatestTwoByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.WeeklyAssessment, error)
	GetIDsByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]uuid.UUID, error)
	UpdateComment(ctx context.Context, tx *gorm.DB, id uuid.UUID, comment *string) error
	UpdateWellbeingScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score *float64) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (ar *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessment *types.WeeklyAssessment) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Create(assessment).Error
}

func (ar *assessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.WeeklyAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var assessment types.WeeklyAssessment
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (ar *assessmentRepo) WeekTaken(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, weekStart datatypes.Date, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	query := transaction.WithContext(ctx).
		Model(&types.WeeklyAssessment{}).
		Where("client_id = ? AND week_start_date = ?", clientID, weekStart)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *assessmentRepo) ListByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, from, to *time.Time, limit, offset int) ([]*types.WeeklyAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	query := transaction.WithContext(ctx).
		Where("client_id = ?", clientID)
	if from != nil {
		query = query.Where("week_start_date >= ?", datatypes.Date(*from))
	}
	if to != nil {
		query = query.Where("week_start_date <= ?", datatypes.Date(*to))
	}
	var results []*types.WeeklyAssessment
	err := query.
		Order("week_start_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assessmentRepo) LatestTwoByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.WeeklyAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.WeeklyAssessment
	err := transaction.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("week_start_date DESC, submitted_at DESC").
		Limit(2).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assessmentRepo) GetIDsByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var ids []uuid.UUID
	err := transaction.WithContext(ctx).
		Model(&types.WeeklyAssessment{}).
		Where("client_id = ?", clientID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (ar *assessmentRepo) UpdateComment(ctx context.Context, tx *gorm.DB, id uuid.UUID, comment *string) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.WeeklyAssessment{}).
		Where("id = ?", id).
		Update("overall_comment", comment).Error
}

func (ar *assessmentRepo) UpdateWellbeingScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score *float64) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.WeeklyAssessment{}).
		Where("id = ?", id).
		Update("wellbeing_score", score).Error
}

func (ar *assessmentRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.WeeklyAssessment{}).Error
}

func (ar *assessmentRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.WeeklyAssessment{}).Error
}
