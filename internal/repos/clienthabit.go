package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/types"
)

type ClientHabitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, clientHabit *types.ClientHabit) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ClientHabit, error)
	GetByIDUnscoped(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ClientHabit, error)
	ListByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.ClientHabit, error)
	PairExists(ctx context.Context, tx *gorm.DB, clientID, habitID uuid.UUID) (bool, error)
	OrderTaken(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, displayOrder int, excludeID uuid.UUID) (bool, error)
	CountActiveByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, clientHabit *types.ClientHabit) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SoftDeleteByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) error
}

type clientHabitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientHabitRepo(db *gorm.DB, baseLog *logger.Logger) ClientHabitRepo {
	return &clientHabitRepo{db: db, log: baseLog.With("repo", "ClientHabitRepo")}
}

func (cr *clientHabitRepo) Create(ctx context.Context, tx *gorm.DB, clientHabit *types.ClientHabit) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(clientHabit).Error
}

func (cr *clientHabitRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ClientHabit, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var clientHabit types.ClientHabit
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&clientHabit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clientHabit, nil
}

func (cr *clientHabitRepo) GetByIDUnscoped(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ClientHabit, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var clientHabit types.ClientHabit
	err := transaction.WithContext(ctx).
		Unscoped().
		Where("id = ?", id).
		First(&clientHabit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clientHabit, nil
}

func (cr *clientHabitRepo) ListByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.ClientHabit, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.ClientHabit
	err := transaction.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("display_order ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *clientHabitRepo) PairExists(ctx context.Context, tx *gorm.DB, clientID, habitID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.ClientHabit{}).
		Where("client_id = ? AND habit_id = ?", clientID, habitID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *clientHabitRepo) OrderTaken(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, displayOrder int, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	query := transaction.WithContext(ctx).
		Model(&types.ClientHabit{}).
		Where("client_id = ? AND display_order = ?", clientID, displayOrder)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *clientHabitRepo) CountActiveByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.ClientHabit{}).
		Where("habit_id = ?", habitID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (cr *clientHabitRepo) Update(ctx context.Context, tx *gorm.DB, clientHabit *types.ClientHabit) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(clientHabit).Error
}

func (cr *clientHabitRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.ClientHabit{}).Error
}

func (cr *clientHabitRepo) SoftDeleteByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&types.ClientHabit{}).Error
}
