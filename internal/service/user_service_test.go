package service_test

import (
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, db *postgres.DB) service.UserService {
	t.Helper()
	return service.NewUserService(
		postgres.NewUserRepository(db),
		postgres.NewWeightLogRepository(db),
		postgres.NewWorkoutLogRepository(db),
		postgres.NewRecordRepository(db),
		postgres.NewBjjRepository(db),
		db,
	)
}

func TestAddWeightLogSyncsProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "member")
	users := newUserService(t, db)

	_, err := users.AddWeightLog(ctx, user.ID, service.WeightLogInput{Weight: 0})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	log, err := users.AddWeightLog(ctx, user.ID, service.WeightLogInput{Weight: 82.5})
	require.NoError(t, err)
	assert.NotZero(t, log.ID)

	// The measurement and the profile weight move together.
	fresh, err := postgres.NewUserRepository(db).GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.Weight)
	assert.Equal(t, 82.5, *fresh.Weight)

	history, err := users.GetWeightHistory(ctx, user.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, history.Total)
}

func TestProfileAggregatesRecentActivity(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "member")
	bench := seedExercise(t, db, "Bench Press")
	users := newUserService(t, db)
	records := newRecordService(t, db)
	workouts := newWorkoutService(t, db)

	_, err := records.AddRecord(ctx, user.ID, service.AddRecordInput{
		ExerciseID: bench.ID, Weight: 100, Reps: 5,
	})
	require.NoError(t, err)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{Name: "Day A"}},
	})
	require.NoError(t, err)
	_, err = workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: plan.Workouts[0].Workout.ID,
		Exercises: []service.LoggedExerciseInput{
			{ExerciseID: bench.ID, Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(90)},
			}},
		},
	})
	require.NoError(t, err)

	_, err = users.LogBjjSession(ctx, user.ID, service.BjjSessionInput{Duration: 60})
	require.NoError(t, err)

	profile, err := users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.User.ID)
	require.Len(t, profile.RecentRecords, 1)
	assert.EqualValues(t, 1, profile.Stats.TotalWorkouts)
	assert.EqualValues(t, 1, profile.Stats.WorkoutsLast30Days)
	assert.EqualValues(t, 1, profile.Stats.TotalBjjSessions)
	assert.Equal(t, float64(450), profile.Stats.TotalVolume)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "member")
	users := newUserService(t, db)

	updated, err := users.UpdateProfile(ctx, user.ID, service.ProfileInput{
		Email:  "new@example.com",
		Weight: floatPtr(80),
		Goal:   "cutting",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "cutting", updated.Goal)

	_, err = users.UpdateProfile(ctx, 9999, service.ProfileInput{Email: "x@example.com"})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestBjjSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "member")
	other := seedUser(t, db, "other")
	users := newUserService(t, db)

	_, err := users.LogBjjSession(ctx, user.ID, service.BjjSessionInput{Duration: 0})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	session, err := users.LogBjjSession(ctx, user.ID, service.BjjSessionInput{
		Duration:            90,
		TechniquesPracticed: "armbar, triangle",
		Rating:              intPtr(4),
	})
	require.NoError(t, err)

	updated, err := users.UpdateBjjSession(ctx, user.ID, session.ID, service.BjjSessionInput{
		Duration: 75,
		Notes:    "light rolling",
	})
	require.NoError(t, err)
	assert.Equal(t, 75, updated.Duration)

	// Sessions are private to their owner.
	_, err = users.UpdateBjjSession(ctx, other.ID, session.ID, service.BjjSessionInput{Duration: 10})
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	err = users.DeleteBjjSession(ctx, other.ID, session.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	require.NoError(t, users.DeleteBjjSession(ctx, user.ID, session.ID))
	sessions, err := users.GetBjjSessions(ctx, user.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, sessions.Total)
}
