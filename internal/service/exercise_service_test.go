package service_test

import (
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExerciseService(t *testing.T, db *postgres.DB) service.ExerciseService {
	t.Helper()
	return service.NewExerciseService(
		postgres.NewExerciseRepository(db),
		postgres.NewCategoryRepository(db),
		postgres.NewRecordRepository(db),
		postgres.NewWorkoutLogRepository(db),
		db,
	)
}

func TestExerciseLibraryCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	library := newExerciseService(t, db)

	category, err := library.CreateCategory(ctx, service.CategoryInput{Name: "Strength"})
	require.NoError(t, err)

	exercise, err := library.CreateExercise(ctx, service.ExerciseInput{
		Name:        "Overhead Press",
		CategoryID:  category.ID,
		MuscleGroup: "Shoulders",
		IsCompound:  true,
	})
	require.NoError(t, err)
	assert.NotZero(t, exercise.ID)

	// Unknown category is rejected up front.
	_, err = library.CreateExercise(ctx, service.ExerciseInput{
		Name: "Ghost Lift", CategoryID: 9999,
	})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	updated, err := library.UpdateExercise(ctx, exercise.ID, service.ExerciseInput{
		Name:       "Standing Press",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Standing Press", updated.Name)

	listed, err := library.ListExercises(ctx, &category.ID, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestDeleteExerciseRefusedWhileInUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "planner")
	bench := seedExercise(t, db, "Bench Press")
	library := newExerciseService(t, db)
	workouts := newWorkoutService(t, db)

	_, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{
			Name: "Day A",
			Exercises: []service.WorkoutExerciseInput{
				{ExerciseID: bench.ID, Sets: 3, Reps: intPtr(8)},
			},
		}},
	})
	require.NoError(t, err)

	err = library.DeleteExercise(ctx, bench.ID)
	assert.ErrorIs(t, err, service.ErrExerciseInUse)

	// Still present.
	_, err = library.GetExercise(ctx, bench.ID)
	assert.NoError(t, err)
}

func TestDeleteExerciseCascadesHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	library := newExerciseService(t, db)
	records := newRecordService(t, db)

	_, err := records.AddRecord(ctx, user.ID, service.AddRecordInput{
		ExerciseID: bench.ID, Weight: 100, Reps: 5,
	})
	require.NoError(t, err)

	require.NoError(t, library.DeleteExercise(ctx, bench.ID))

	_, err = library.GetExercise(ctx, bench.ID)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
	history, err := postgres.NewRecordRepository(db).ListByExercise(ctx, user.ID, bench.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteCategoryRefusedWhileNonEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	library := newExerciseService(t, db)

	category, err := library.CreateCategory(ctx, service.CategoryInput{Name: "Strength"})
	require.NoError(t, err)
	exercise, err := library.CreateExercise(ctx, service.ExerciseInput{
		Name: "Squat", CategoryID: category.ID,
	})
	require.NoError(t, err)

	err = library.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, service.ErrCategoryInUse)

	require.NoError(t, library.DeleteExercise(ctx, exercise.ID))
	require.NoError(t, library.DeleteCategory(ctx, category.ID))

	err = library.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}
