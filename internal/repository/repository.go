package repository

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"time"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxManager runs a function inside a storage transaction. If fn returns
// an error the transaction rolls back, otherwise it commits. Re-entrant
// calls join the outer transaction instead of opening a nested one.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateWeight(ctx context.Context, userID uint, weight float64) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
}

// WeightLogRepository stores body-weight measurements.
type WeightLogRepository interface {
	Create(ctx context.Context, log *domain.WeightLog) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.WeightLog, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.WeightLog, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// CategoryRepository defines the interface for exercise categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.ExerciseCategory) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.ExerciseCategory, error)
	List(ctx context.Context) ([]domain.ExerciseCategory, error)
	Update(ctx context.Context, category *domain.ExerciseCategory) error
	Delete(ctx context.Context, id uint) error
	// CountExercises reports how many exercises reference the category,
	// checked before delete since no DB-level restrict is assumed.
	CountExercises(ctx context.Context, categoryID uint) (int64, error)
}

// ExerciseRepository defines the interface for the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Exercise, error)
	List(ctx context.Context, categoryID *uint) ([]domain.Exercise, error)
	Search(ctx context.Context, query string, categoryID *uint) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id uint) error
	// CountWorkoutUsage reports how many workout prescriptions reference
	// the exercise; a referenced exercise cannot be deleted.
	CountWorkoutUsage(ctx context.Context, exerciseID uint) (int64, error)
}

// PlanRepository covers the plan aggregate: the plan row, its workouts
// and their exercise prescriptions.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.WorkoutPlan, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.WorkoutPlan, error)
	ListTemplates(ctx context.Context) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id uint) error

	CreateWorkout(ctx context.Context, workout *domain.Workout) (uint, error)
	GetWorkout(ctx context.Context, id uint) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, planID uint) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, workout *domain.Workout) error
	DeleteWorkout(ctx context.Context, id uint) error
	FindWorkoutForDay(ctx context.Context, planID uint, dayOfWeek int) (*domain.Workout, error)

	CreateWorkoutExercise(ctx context.Context, we *domain.WorkoutExercise) (uint, error)
	ListWorkoutExercises(ctx context.Context, workoutID uint) ([]domain.WorkoutExercise, error)
	UpdateWorkoutExercise(ctx context.Context, we *domain.WorkoutExercise) error
	DeleteWorkoutExercise(ctx context.Context, id uint) error
	DeleteWorkoutExercises(ctx context.Context, workoutID uint) error
}

// WorkoutLogRepository covers completed-session records: log headers and
// their per-set exercise logs.
type WorkoutLogRepository interface {
	CreateLog(ctx context.Context, log *domain.WorkoutLog) (uint, error)
	// GetLog returns the log only when it belongs to userID.
	GetLog(ctx context.Context, logID, userID uint) (*domain.WorkoutLog, error)
	ListLogs(ctx context.Context, userID uint, limit, offset int) ([]domain.WorkoutLog, error)
	CountLogs(ctx context.Context, userID uint) (int64, error)
	CountLogsSince(ctx context.Context, userID uint, since time.Time) (int64, error)
	DeleteLog(ctx context.Context, logID uint) error

	CreateExerciseLog(ctx context.Context, el *domain.ExerciseLog) (uint, error)
	// ListExerciseLogs returns sets in insertion order (submission order).
	ListExerciseLogs(ctx context.Context, logID uint) ([]domain.ExerciseLog, error)
	DeleteExerciseLogs(ctx context.Context, logID uint) error
	DeleteExerciseLogsByExercise(ctx context.Context, exerciseID uint) error
	// TotalVolume sums weight*reps over the sets of one log.
	TotalVolume(ctx context.Context, logID uint) (float64, error)
	// TotalVolumeForUser sums weight*reps over all of a user's sets.
	TotalVolumeForUser(ctx context.Context, userID uint) (float64, error)
	// LatestExerciseLog returns the most recently completed set of the
	// exercise across all of the user's logs.
	LatestExerciseLog(ctx context.Context, userID, exerciseID uint) (*domain.ExerciseLog, error)
}

// RecordRepository stores personal records. Rows are additive; dominated
// records stay in place and reads derive the current best.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.PersonalRecord) (uint, error)
	GetByID(ctx context.Context, prID, userID uint) (*domain.PersonalRecord, error)
	// BestForReps returns the heaviest record for the exact rep count, or
	// ErrNotFound when the user has none for that (exercise, reps) pair.
	BestForReps(ctx context.Context, userID, exerciseID uint, reps int) (*domain.PersonalRecord, error)
	ListByExercise(ctx context.Context, userID, exerciseID uint) ([]domain.PersonalRecord, error)
	ListRecent(ctx context.Context, userID uint, limit int) ([]domain.PersonalRecord, error)
	Delete(ctx context.Context, prID uint) error
	DeleteByExercise(ctx context.Context, exerciseID uint) error
}

// BjjRepository stores grappling sessions.
type BjjRepository interface {
	Create(ctx context.Context, session *domain.BjjSession) (uint, error)
	// GetByID returns the session only when it belongs to userID.
	GetByID(ctx context.Context, sessionID, userID uint) (*domain.BjjSession, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.BjjSession, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountSince(ctx context.Context, userID uint, since time.Time) (int64, error)
	Update(ctx context.Context, session *domain.BjjSession) error
	Delete(ctx context.Context, sessionID uint) error
}
