package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

// weightLogRepository implements repository.WeightLogRepository.
type weightLogRepository struct {
	db *DB
}

// NewWeightLogRepository creates a new weight log repository backed by Postgres.
func NewWeightLogRepository(db *DB) repository.WeightLogRepository {
	return &weightLogRepository{db: db}
}

func (r *weightLogRepository) Create(ctx context.Context, log *domain.WeightLog) (uint, error) {
	if log.UserID == 0 {
		return 0, errors.New("user ID is required")
	}
	if log.LoggedAt.IsZero() {
		log.LoggedAt = time.Now().UTC()
	}
	if err := r.db.handle(ctx).Create(log).Error; err != nil {
		return 0, err
	}
	return log.ID, nil
}

func (r *weightLogRepository) GetByID(ctx context.Context, id uint) (*domain.WeightLog, error) {
	var log domain.WeightLog
	if err := r.db.handle(ctx).First(&log, "weight_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &log, nil
}

func (r *weightLogRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.WeightLog, error) {
	var logs []domain.WeightLog
	err := r.db.handle(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *weightLogRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.handle(ctx).Model(&domain.WeightLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
