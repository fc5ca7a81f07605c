package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

// planRepository implements repository.PlanRepository for the whole plan
// aggregate: plans, workouts and workout exercises.
type planRepository struct {
	db *DB
}

// NewPlanRepository creates a new plan repository backed by Postgres.
func NewPlanRepository(db *DB) repository.PlanRepository {
	return &planRepository{db: db}
}

// === Plans ===

func (r *planRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (uint, error) {
	if plan.Name == "" {
		return 0, errors.New("plan name is required")
	}
	plan.CreatedAt = time.Now().UTC()
	if err := r.db.handle(ctx).Create(plan).Error; err != nil {
		return 0, err
	}
	return plan.ID, nil
}

func (r *planRepository) GetByID(ctx context.Context, id uint) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	if err := r.db.handle(ctx).First(&plan, "plan_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &plan, nil
}

func (r *planRepository) ListByUser(ctx context.Context, userID uint) ([]domain.WorkoutPlan, error) {
	var plans []domain.WorkoutPlan
	err := r.db.handle(ctx).
		Where("user_id = ? AND is_template = ?", userID, false).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) ListTemplates(ctx context.Context) ([]domain.WorkoutPlan, error) {
	var plans []domain.WorkoutPlan
	err := r.db.handle(ctx).
		Where("is_template = ?", true).
		Order("name ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == 0 {
		return errors.New("plan ID is required for update")
	}
	res := r.db.handle(ctx).Model(&domain.WorkoutPlan{}).
		Where("plan_id = ?", plan.ID).
		Updates(map[string]interface{}{
			"name":        plan.Name,
			"description": plan.Description,
			"frequency":   plan.Frequency,
			"goal":        plan.Goal,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.handle(ctx).Delete(&domain.WorkoutPlan{}, "plan_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// === Workouts ===

func (r *planRepository) CreateWorkout(ctx context.Context, workout *domain.Workout) (uint, error) {
	if workout.Name == "" || workout.PlanID == 0 {
		return 0, errors.New("workout name and plan ID are required")
	}
	if err := r.db.handle(ctx).Create(workout).Error; err != nil {
		return 0, err
	}
	return workout.ID, nil
}

func (r *planRepository) GetWorkout(ctx context.Context, id uint) (*domain.Workout, error) {
	var workout domain.Workout
	if err := r.db.handle(ctx).First(&workout, "workout_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &workout, nil
}

func (r *planRepository) ListWorkouts(ctx context.Context, planID uint) ([]domain.Workout, error) {
	var workouts []domain.Workout
	err := r.db.handle(ctx).
		Where("plan_id = ?", planID).
		Order("day_of_week ASC").
		Find(&workouts).Error
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *planRepository) UpdateWorkout(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == 0 {
		return errors.New("workout ID is required for update")
	}
	res := r.db.handle(ctx).Model(&domain.Workout{}).
		Where("workout_id = ?", workout.ID).
		Updates(map[string]interface{}{
			"name":        workout.Name,
			"description": workout.Description,
			"day_of_week": workout.DayOfWeek,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *planRepository) DeleteWorkout(ctx context.Context, id uint) error {
	res := r.db.handle(ctx).Delete(&domain.Workout{}, "workout_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *planRepository) FindWorkoutForDay(ctx context.Context, planID uint, dayOfWeek int) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.handle(ctx).
		Where("plan_id = ? AND day_of_week = ?", planID, dayOfWeek).
		First(&workout).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &workout, nil
}

// === Workout exercises ===

func (r *planRepository) CreateWorkoutExercise(ctx context.Context, we *domain.WorkoutExercise) (uint, error) {
	if we.WorkoutID == 0 || we.ExerciseID == 0 {
		return 0, errors.New("workout ID and exercise ID are required")
	}
	if err := r.db.handle(ctx).Create(we).Error; err != nil {
		return 0, err
	}
	return we.ID, nil
}

func (r *planRepository) ListWorkoutExercises(ctx context.Context, workoutID uint) ([]domain.WorkoutExercise, error) {
	var rows []domain.WorkoutExercise
	err := r.db.handle(ctx).
		Where("workout_id = ?", workoutID).
		Order("order_num ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *planRepository) UpdateWorkoutExercise(ctx context.Context, we *domain.WorkoutExercise) error {
	if we.ID == 0 {
		return errors.New("workout exercise ID is required for update")
	}
	res := r.db.handle(ctx).Model(&domain.WorkoutExercise{}).
		Where("workout_exercise_id = ?", we.ID).
		Updates(map[string]interface{}{
			"exercise_id": we.ExerciseID,
			"sets":        we.Sets,
			"reps":        we.Reps,
			"rest_period": we.RestPeriod,
			"notes":       we.Notes,
			"order_num":   we.OrderNum,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *planRepository) DeleteWorkoutExercise(ctx context.Context, id uint) error {
	return r.db.handle(ctx).
		Delete(&domain.WorkoutExercise{}, "workout_exercise_id = ?", id).Error
}

func (r *planRepository) DeleteWorkoutExercises(ctx context.Context, workoutID uint) error {
	return r.db.handle(ctx).
		Delete(&domain.WorkoutExercise{}, "workout_id = ?", workoutID).Error
}
