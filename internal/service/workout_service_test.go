package service_test

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkoutService(t *testing.T, db *postgres.DB) service.WorkoutService {
	t.Helper()
	recordRepo := postgres.NewRecordRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	return service.NewWorkoutService(
		postgres.NewPlanRepository(db),
		postgres.NewWorkoutLogRepository(db),
		recordRepo,
		exerciseRepo,
		service.NewRecordService(recordRepo, exerciseRepo),
		db,
	)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestCreatePlanAssignsDenseOrderNumbers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "planner")
	bench := seedExercise(t, db, "Bench Press")
	squat := seedExercise(t, db, "Squat")
	row := seedExercise(t, db, "Barbell Row")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name:      "Push Pull",
		Frequency: "3x/week",
		Workouts: []service.WorkoutInput{{
			Name:      "Day A",
			DayOfWeek: intPtr(1),
			Exercises: []service.WorkoutExerciseInput{
				{ExerciseID: squat.ID, Sets: 5, Reps: intPtr(5)},
				{ExerciseID: bench.ID, Sets: 3, Reps: intPtr(8)},
				{ExerciseID: row.ID, Sets: 3, Reps: intPtr(10)},
			},
		}},
	})
	require.NoError(t, err)
	require.Len(t, plan.Workouts, 1)
	exercises := plan.Workouts[0].Exercises
	require.Len(t, exercises, 3)
	for i, we := range exercises {
		assert.Equal(t, i+1, we.OrderNum)
	}
	assert.Equal(t, squat.ID, exercises[0].ExerciseID)
	assert.Equal(t, "Squat", exercises[0].Name)
}

func TestUpdatePlanReconcilesTree(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "planner")
	bench := seedExercise(t, db, "Bench Press")
	squat := seedExercise(t, db, "Squat")
	curl := seedExercise(t, db, "Curl")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name:      "Original",
		Frequency: "2x/week",
		Workouts: []service.WorkoutInput{
			{
				Name:      "Day A",
				DayOfWeek: intPtr(1),
				Exercises: []service.WorkoutExerciseInput{
					{ExerciseID: squat.ID, Sets: 5, Reps: intPtr(5)},
					{ExerciseID: bench.ID, Sets: 3, Reps: intPtr(8)},
				},
			},
			{Name: "Day B", DayOfWeek: intPtr(4)},
		},
	})
	require.NoError(t, err)
	dayA := plan.Workouts[0]
	require.Equal(t, "Day A", dayA.Workout.Name)
	keptID := dayA.Exercises[1].ID // bench row survives the update

	// Resubmit: Day B is gone, Day A keeps bench (reordered first),
	// drops squat and gains curl.
	updated, err := workouts.UpdatePlan(ctx, user.ID, plan.Plan.ID, service.PlanInput{
		Name:      "Reworked",
		Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{
			WorkoutID: &dayA.Workout.ID,
			Name:      "Day A+",
			DayOfWeek: intPtr(2),
			Exercises: []service.WorkoutExerciseInput{
				{WorkoutExerciseID: &keptID, ExerciseID: bench.ID, Sets: 4, Reps: intPtr(6)},
				{ExerciseID: curl.ID, Sets: 3, Reps: intPtr(12)},
			},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Reworked", updated.Plan.Name)
	require.Len(t, updated.Workouts, 1)
	workout := updated.Workouts[0]
	assert.Equal(t, dayA.Workout.ID, workout.Workout.ID)
	assert.Equal(t, "Day A+", workout.Workout.Name)

	require.Len(t, workout.Exercises, 2)
	// The surviving row kept its id but was renumbered.
	assert.Equal(t, keptID, workout.Exercises[0].ID)
	assert.Equal(t, 1, workout.Exercises[0].OrderNum)
	assert.Equal(t, 4, workout.Exercises[0].Sets)
	assert.Equal(t, curl.ID, workout.Exercises[1].ExerciseID)
	assert.Equal(t, 2, workout.Exercises[1].OrderNum)
}

func TestUpdatePlanOwnershipAndTemplates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "planner")
	other := seedUser(t, db, "other")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Mine", Frequency: "3x/week",
	})
	require.NoError(t, err)

	input := service.PlanInput{Name: "Hijacked", Frequency: "1x/week"}
	_, err = workouts.UpdatePlan(ctx, other.ID, plan.Plan.ID, input)
	assert.ErrorIs(t, err, service.ErrPlanNotFound)

	// Templates are read-only for everyone.
	planRepo := postgres.NewPlanRepository(db)
	templateID, err := planRepo.Create(ctx, &domain.WorkoutPlan{
		UserID: user.ID, Name: "Starting Strength", Frequency: "3x/week", IsTemplate: true,
	})
	require.NoError(t, err)
	_, err = workouts.UpdatePlan(ctx, user.ID, templateID, input)
	assert.ErrorIs(t, err, service.ErrPlanIsTemplate)
	err = workouts.DeletePlan(ctx, user.ID, templateID)
	assert.ErrorIs(t, err, service.ErrPlanNotFound)
}

func TestCopyTemplateClonesTree(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	admin := seedUser(t, db, "admin")
	user := seedUser(t, db, "member")
	bench := seedExercise(t, db, "Bench Press")
	workouts := newWorkoutService(t, db)
	planRepo := postgres.NewPlanRepository(db)

	templateID, err := planRepo.Create(ctx, &domain.WorkoutPlan{
		UserID: admin.ID, Name: "Beginner", Frequency: "3x/week", IsTemplate: true,
	})
	require.NoError(t, err)
	workoutID, err := planRepo.CreateWorkout(ctx, &domain.Workout{
		PlanID: templateID, Name: "Full Body", DayOfWeek: intPtr(1),
	})
	require.NoError(t, err)
	_, err = planRepo.CreateWorkoutExercise(ctx, &domain.WorkoutExercise{
		WorkoutID: workoutID, ExerciseID: bench.ID, Sets: 3, Reps: intPtr(5), OrderNum: 1,
	})
	require.NoError(t, err)

	copied, err := workouts.CopyTemplate(ctx, user.ID, templateID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, copied.Plan.UserID)
	assert.False(t, copied.Plan.IsTemplate)
	assert.NotEqual(t, templateID, copied.Plan.ID)
	require.Len(t, copied.Workouts, 1)
	require.Len(t, copied.Workouts[0].Exercises, 1)
	assert.Equal(t, bench.ID, copied.Workouts[0].Exercises[0].ExerciseID)

	// Copying a regular plan is not allowed.
	_, err = workouts.CopyTemplate(ctx, user.ID, copied.Plan.ID)
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestLogWorkoutRoundTripPreservesSubmissionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	squat := seedExercise(t, db, "Squat")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{Name: "Day A", DayOfWeek: intPtr(1)}},
	})
	require.NoError(t, err)
	workoutID := plan.Workouts[0].Workout.ID

	view, err := workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: workoutID,
		Duration:  intPtr(55),
		Exercises: []service.LoggedExerciseInput{
			{ExerciseID: squat.ID, Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(140)},
				{Reps: intPtr(5), Weight: floatPtr(145)},
			}},
			{ExerciseID: bench.ID, Sets: []service.SetInput{
				{Reps: intPtr(8), Weight: floatPtr(80)},
			}},
		},
	})
	require.NoError(t, err)

	require.Len(t, view.Exercises, 2)
	assert.Equal(t, squat.ID, view.Exercises[0].ExerciseID)
	assert.Equal(t, "Squat", view.Exercises[0].Name)
	assert.Equal(t, bench.ID, view.Exercises[1].ExerciseID)

	require.Len(t, view.Exercises[0].Sets, 2)
	assert.Equal(t, 1, view.Exercises[0].Sets[0].SetNumber)
	assert.Equal(t, 2, view.Exercises[0].Sets[1].SetNumber)
	assert.Equal(t, float64(145), *view.Exercises[0].Sets[1].Weight)

	// volume = 140*5 + 145*5 + 80*8
	assert.Equal(t, float64(2065), view.Volume)

	// The stored session reads back identically.
	fetched, err := workouts.GetLogDetails(ctx, user.ID, view.LogID)
	require.NoError(t, err)
	assert.Equal(t, view.Exercises, fetched.Exercises)
}

func TestLogWorkoutRecordsPersonalRecords(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{Name: "Day A"}},
	})
	require.NoError(t, err)
	workoutID := plan.Workouts[0].Workout.ID

	view, err := workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: workoutID,
		Exercises: []service.LoggedExerciseInput{
			{ExerciseID: bench.ID, Notes: "felt strong", Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(100), IsPR: true},
				// Same weight again in the same session is not a record.
				{Reps: intPtr(5), Weight: floatPtr(100), IsPR: true},
				// Heavier within the session supersedes the first.
				{Reps: intPtr(5), Weight: floatPtr(105), Notes: "grinder", IsPR: true},
			}},
		},
	})
	require.NoError(t, err)

	require.Len(t, view.NewRecords, 2)
	assert.Equal(t, float64(100), view.NewRecords[0].Weight)
	assert.Equal(t, float64(105), view.NewRecords[1].Weight)
	// Record notes come from the exercise entry, not the set.
	assert.Equal(t, "felt strong", view.NewRecords[1].Notes)

	// Both rows remain in history.
	recordRepo := postgres.NewRecordRepository(db)
	history, err := recordRepo.ListByExercise(ctx, user.ID, bench.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

// failingRecords delegates to a real evaluator but fails for one
// exercise, forcing an error after earlier writes in the same call.
type failingRecords struct {
	service.RecordService
	failFor uint
}

func (f failingRecords) Evaluate(ctx context.Context, userID, exerciseID uint, weight float64, reps int) (*service.RecordEvaluation, error) {
	if exerciseID == f.failFor {
		return nil, errors.New("record store unavailable")
	}
	return f.RecordService.Evaluate(ctx, userID, exerciseID, weight, reps)
}

func TestLogWorkoutRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	squat := seedExercise(t, db, "Squat")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{Name: "Day A"}},
	})
	require.NoError(t, err)
	workoutID := plan.Workouts[0].Workout.ID

	recordRepo := postgres.NewRecordRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	unstable := service.NewWorkoutService(
		postgres.NewPlanRepository(db),
		postgres.NewWorkoutLogRepository(db),
		recordRepo,
		exerciseRepo,
		failingRecords{service.NewRecordService(recordRepo, exerciseRepo), squat.ID},
		db,
	)

	// The second entry fails its PR check after the header and the
	// first exercise's sets were written.
	_, err = unstable.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: workoutID,
		Exercises: []service.LoggedExerciseInput{
			{ExerciseID: bench.ID, Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(100)},
			}},
			{ExerciseID: squat.ID, Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(225), IsPR: true},
			}},
		},
	})
	require.Error(t, err)

	// Nothing from the failed session survives.
	logs, err := workouts.GetLogs(ctx, user.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, logs.Total)
	assert.Empty(t, logs.Logs)
}

func TestLogWorkoutRejectsUnknownExercise(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{Name: "Day A"}},
	})
	require.NoError(t, err)
	workoutID := plan.Workouts[0].Workout.ID

	// A plain set against an unknown exercise is refused even though it
	// never reaches a PR check.
	_, err = workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: workoutID,
		Exercises: []service.LoggedExerciseInput{
			{ExerciseID: bench.ID, Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(100)},
			}},
			{ExerciseID: 424242, Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(100)},
			}},
		},
	})
	require.ErrorIs(t, err, service.ErrExerciseNotFound)

	logs, err := workouts.GetLogs(ctx, user.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, logs.Total)
	assert.Empty(t, logs.Logs)
}

func TestDeleteLogRemovesSets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	other := seedUser(t, db, "other")
	bench := seedExercise(t, db, "Bench Press")
	workouts := newWorkoutService(t, db)

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{Name: "Day A"}},
	})
	require.NoError(t, err)

	view, err := workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: plan.Workouts[0].Workout.ID,
		Exercises: []service.LoggedExerciseInput{
			{ExerciseID: bench.ID, Sets: []service.SetInput{
				{Reps: intPtr(5), Weight: floatPtr(100)},
			}},
		},
	})
	require.NoError(t, err)

	// Only the owner can delete.
	err = workouts.DeleteLog(ctx, other.ID, view.LogID)
	assert.ErrorIs(t, err, service.ErrLogNotFound)

	require.NoError(t, workouts.DeleteLog(ctx, user.ID, view.LogID))
	_, err = workouts.GetLogDetails(ctx, user.ID, view.LogID)
	assert.ErrorIs(t, err, service.ErrLogNotFound)
}

func TestTodaysWorkout(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	workouts := newWorkoutService(t, db)

	// No plan yet.
	today, err := workouts.TodaysWorkout(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "No active workout plan found", today.Message)

	isoDay := int(time.Now().Weekday())
	if isoDay == 0 {
		isoDay = 7
	}
	otherDay := isoDay%7 + 1

	plan, err := workouts.CreatePlan(ctx, user.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{
			Name:      "Rest Day Lifts",
			DayOfWeek: intPtr(otherDay),
		}},
	})
	require.NoError(t, err)

	// A plan exists but nothing is scheduled today.
	today, err = workouts.TodaysWorkout(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "No workout scheduled for today", today.Message)
	assert.Nil(t, today.Workout)

	// Schedule something for today and log a previous session so the
	// suggestion carries last performance.
	_, err = workouts.UpdatePlan(ctx, user.ID, plan.Plan.ID, service.PlanInput{
		Name: "Plan", Frequency: "2x/week",
		Workouts: []service.WorkoutInput{{
			Name:      "Today",
			DayOfWeek: intPtr(isoDay),
			Exercises: []service.WorkoutExerciseInput{
				{ExerciseID: bench.ID, Sets: 3, Reps: intPtr(8)},
			},
		}},
	})
	require.NoError(t, err)

	today, err = workouts.TodaysWorkout(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, today.Workout)
	require.Len(t, today.Exercises, 1)
	assert.Empty(t, today.Exercises[0].PreviousPerformance)

	_, err = workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: today.Workout.ID,
		Exercises: []service.LoggedExerciseInput{
			{ExerciseID: bench.ID, Sets: []service.SetInput{
				{Reps: intPtr(8), Weight: floatPtr(80)},
			}},
		},
	})
	require.NoError(t, err)

	today, err = workouts.TodaysWorkout(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, today.Exercises, 1)
	assert.Equal(t, "80 × 8", today.Exercises[0].PreviousPerformance)
}

func TestLogWorkoutValidatesInput(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	workouts := newWorkoutService(t, db)

	_, err := workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{
		WorkoutID: 1,
		Exercises: []service.LoggedExerciseInput{{ExerciseID: 1}},
	})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = workouts.LogWorkout(ctx, user.ID, service.LogWorkoutInput{WorkoutID: 4242})
	assert.ErrorIs(t, err, service.ErrWorkoutNotFound)
}
