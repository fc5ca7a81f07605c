package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

// recordRepository implements repository.RecordRepository.
type recordRepository struct {
	db *DB
}

// NewRecordRepository creates a new personal record repository backed by Postgres.
func NewRecordRepository(db *DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *domain.PersonalRecord) (uint, error) {
	if record.UserID == 0 || record.ExerciseID == 0 {
		return 0, errors.New("user ID and exercise ID are required")
	}
	if record.AchievedAt.IsZero() {
		record.AchievedAt = time.Now().UTC()
	}
	if err := r.db.handle(ctx).Create(record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func (r *recordRepository) GetByID(ctx context.Context, prID, userID uint) (*domain.PersonalRecord, error) {
	var record domain.PersonalRecord
	err := r.db.handle(ctx).
		Where("pr_id = ? AND user_id = ?", prID, userID).
		First(&record).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &record, nil
}

// BestForReps finds the heaviest record for the exact rep count. Rep
// counts never compete across values: a record at 8 reps is invisible
// to a candidate at 10 reps.
func (r *recordRepository) BestForReps(ctx context.Context, userID, exerciseID uint, reps int) (*domain.PersonalRecord, error) {
	var record domain.PersonalRecord
	err := r.db.handle(ctx).
		Where("user_id = ? AND exercise_id = ? AND reps = ?", userID, exerciseID, reps).
		Order("weight DESC").
		First(&record).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &record, nil
}

func (r *recordRepository) ListByExercise(ctx context.Context, userID, exerciseID uint) ([]domain.PersonalRecord, error) {
	var records []domain.PersonalRecord
	err := r.db.handle(ctx).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Order("weight DESC, reps DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]domain.PersonalRecord, error) {
	var records []domain.PersonalRecord
	err := r.db.handle(ctx).
		Where("user_id = ?", userID).
		Order("achieved_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, prID uint) error {
	res := r.db.handle(ctx).Delete(&domain.PersonalRecord{}, "pr_id = ?", prID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *recordRepository) DeleteByExercise(ctx context.Context, exerciseID uint) error {
	return r.db.handle(ctx).
		Delete(&domain.PersonalRecord{}, "exercise_id = ?", exerciseID).Error
}
