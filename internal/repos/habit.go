package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/types"
)

type HabitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, habit *types.Habit) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Habit, error)
	NameTaken(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Habit, error)
	Update(ctx context.Context, tx *gorm.DB, habit *types.Habit) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type habitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitRepo(db *gorm.DB, baseLog *logger.Logger) HabitRepo {
	return &habitRepo{db: db, log: baseLog.With("repo", "HabitRepo")}
}

func (hr *habitRepo) Create(ctx context.Context, tx *gorm.DB, habit *types.Habit) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).Create(habit).Error
}

func (hr *habitRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var habit types.Habit
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (hr *habitRepo) NameTaken(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var count int64
	query := transaction.WithContext(ctx).
		Model(&types.Habit{}).
		Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (hr *habitRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var results []*types.Habit
	err := transaction.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (hr *habitRepo) Update(ctx context.Context, tx *gorm.DB, habit *types.Habit) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).Save(habit).Error
}

func (hr *habitRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Habit{}).Error
}
