package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

// workoutLogRepository implements repository.WorkoutLogRepository.
type workoutLogRepository struct {
	db *DB
}

// NewWorkoutLogRepository creates a new workout log repository backed by Postgres.
func NewWorkoutLogRepository(db *DB) repository.WorkoutLogRepository {
	return &workoutLogRepository{db: db}
}

func (r *workoutLogRepository) CreateLog(ctx context.Context, log *domain.WorkoutLog) (uint, error) {
	if log.UserID == 0 || log.WorkoutID == 0 {
		return 0, errors.New("user ID and workout ID are required")
	}
	if log.CompletedAt.IsZero() {
		log.CompletedAt = time.Now().UTC()
	}
	if err := r.db.handle(ctx).Create(log).Error; err != nil {
		return 0, err
	}
	return log.ID, nil
}

func (r *workoutLogRepository) GetLog(ctx context.Context, logID, userID uint) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.db.handle(ctx).
		Where("log_id = ? AND user_id = ?", logID, userID).
		First(&log).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &log, nil
}

func (r *workoutLogRepository) ListLogs(ctx context.Context, userID uint, limit, offset int) ([]domain.WorkoutLog, error) {
	var logs []domain.WorkoutLog
	err := r.db.handle(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *workoutLogRepository) CountLogs(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.handle(ctx).Model(&domain.WorkoutLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *workoutLogRepository) CountLogsSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.handle(ctx).Model(&domain.WorkoutLog{}).
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *workoutLogRepository) DeleteLog(ctx context.Context, logID uint) error {
	res := r.db.handle(ctx).Delete(&domain.WorkoutLog{}, "log_id = ?", logID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutLogRepository) CreateExerciseLog(ctx context.Context, el *domain.ExerciseLog) (uint, error) {
	if el.LogID == 0 || el.ExerciseID == 0 {
		return 0, errors.New("log ID and exercise ID are required")
	}
	if err := r.db.handle(ctx).Create(el).Error; err != nil {
		return 0, err
	}
	return el.ID, nil
}

// ListExerciseLogs returns sets in insertion order, which is the order
// they were submitted in. Callers rely on this for round-trip views.
func (r *workoutLogRepository) ListExerciseLogs(ctx context.Context, logID uint) ([]domain.ExerciseLog, error) {
	var rows []domain.ExerciseLog
	err := r.db.handle(ctx).
		Where("log_id = ?", logID).
		Order("exercise_log_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *workoutLogRepository) DeleteExerciseLogs(ctx context.Context, logID uint) error {
	return r.db.handle(ctx).
		Delete(&domain.ExerciseLog{}, "log_id = ?", logID).Error
}

func (r *workoutLogRepository) DeleteExerciseLogsByExercise(ctx context.Context, exerciseID uint) error {
	return r.db.handle(ctx).
		Delete(&domain.ExerciseLog{}, "exercise_id = ?", exerciseID).Error
}

func (r *workoutLogRepository) TotalVolume(ctx context.Context, logID uint) (float64, error) {
	var volume float64
	err := r.db.handle(ctx).Model(&domain.ExerciseLog{}).
		Select("COALESCE(SUM(weight * reps), 0)").
		Where("log_id = ?", logID).
		Scan(&volume).Error
	return volume, err
}

func (r *workoutLogRepository) TotalVolumeForUser(ctx context.Context, userID uint) (float64, error) {
	var volume float64
	err := r.db.handle(ctx).Model(&domain.ExerciseLog{}).
		Select("COALESCE(SUM(exercise_logs.weight * exercise_logs.reps), 0)").
		Joins("JOIN workout_logs ON workout_logs.log_id = exercise_logs.log_id").
		Where("workout_logs.user_id = ?", userID).
		Scan(&volume).Error
	return volume, err
}

func (r *workoutLogRepository) LatestExerciseLog(ctx context.Context, userID, exerciseID uint) (*domain.ExerciseLog, error) {
	var row domain.ExerciseLog
	err := r.db.handle(ctx).Model(&domain.ExerciseLog{}).
		Joins("JOIN workout_logs ON workout_logs.log_id = exercise_logs.log_id").
		Where("workout_logs.user_id = ? AND exercise_logs.exercise_id = ?", userID, exerciseID).
		Order("workout_logs.completed_at DESC, exercise_logs.exercise_log_id DESC").
		First(&row).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &row, nil
}
