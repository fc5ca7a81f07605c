package service_test

import (
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordService(t *testing.T, db *postgres.DB) service.RecordService {
	t.Helper()
	return service.NewRecordService(
		postgres.NewRecordRepository(db),
		postgres.NewExerciseRepository(db),
	)
}

func TestEvaluateFirstLiftIsARecord(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	records := newRecordService(t, db)

	eval, err := records.Evaluate(ctx, user.ID, bench.ID, 100, 5)
	require.NoError(t, err)
	assert.True(t, eval.IsNewRecord)
	assert.Nil(t, eval.Superseded)
}

func TestEvaluateStrictlyGreaterAtSameReps(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	records := newRecordService(t, db)

	_, err := records.AddRecord(ctx, user.ID, service.AddRecordInput{
		ExerciseID: bench.ID, Weight: 100, Reps: 5,
	})
	require.NoError(t, err)

	// Equal weight at the same rep count is not a new record.
	eval, err := records.Evaluate(ctx, user.ID, bench.ID, 100, 5)
	require.NoError(t, err)
	assert.False(t, eval.IsNewRecord)
	require.NotNil(t, eval.Superseded)
	assert.Equal(t, float64(100), eval.Superseded.Weight)

	// Lighter is not a record either.
	eval, err = records.Evaluate(ctx, user.ID, bench.ID, 95, 5)
	require.NoError(t, err)
	assert.False(t, eval.IsNewRecord)

	// Strictly heavier wins and names what it beats.
	eval, err = records.Evaluate(ctx, user.ID, bench.ID, 102.5, 5)
	require.NoError(t, err)
	assert.True(t, eval.IsNewRecord)
	require.NotNil(t, eval.Superseded)
	assert.Equal(t, float64(100), eval.Superseded.Weight)
}

func TestEvaluateRepCountsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	records := newRecordService(t, db)

	_, err := records.AddRecord(ctx, user.ID, service.AddRecordInput{
		ExerciseID: bench.ID, Weight: 120, Reps: 3,
	})
	require.NoError(t, err)

	// A lighter lift at a different rep count starts its own lineage.
	eval, err := records.Evaluate(ctx, user.ID, bench.ID, 100, 8)
	require.NoError(t, err)
	assert.True(t, eval.IsNewRecord)
	assert.Nil(t, eval.Superseded)
}

func TestAddRecordRejectsDominatedCandidate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	squat := seedExercise(t, db, "Squat")
	records := newRecordService(t, db)

	_, err := records.AddRecord(ctx, user.ID, service.AddRecordInput{
		ExerciseID: squat.ID, Weight: 140, Reps: 5,
	})
	require.NoError(t, err)

	_, err = records.AddRecord(ctx, user.ID, service.AddRecordInput{
		ExerciseID: squat.ID, Weight: 140, Reps: 5,
	})
	var notRecord *service.NotARecordError
	require.ErrorAs(t, err, &notRecord)
	assert.Equal(t, "Not a personal record. Current record is 140 lbs for 5 reps.", err.Error())
}

func TestRecordHistoryIsAdditive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	deadlift := seedExercise(t, db, "Deadlift")
	records := newRecordService(t, db)

	for _, weight := range []float64{150, 160, 170} {
		_, err := records.AddRecord(ctx, user.ID, service.AddRecordInput{
			ExerciseID: deadlift.ID, Weight: weight, Reps: 5,
		})
		require.NoError(t, err)
	}

	// Superseded rows stay; read-time ordering puts the best first.
	_, history, err := records.GetRecordsForExercise(ctx, user.ID, deadlift.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, float64(170), history[0].Weight)
}

func TestEvaluateValidationAndUnknownExercise(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "lifter")
	bench := seedExercise(t, db, "Bench Press")
	records := newRecordService(t, db)

	_, err := records.Evaluate(ctx, user.ID, bench.ID, 0, 5)
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = records.Evaluate(ctx, user.ID, bench.ID, 100, -1)
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = records.Evaluate(ctx, user.ID, 9999, 100, 5)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}

func TestRecordsAreScopedPerUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	bench := seedExercise(t, db, "Bench Press")
	records := newRecordService(t, db)

	_, err := records.AddRecord(ctx, alice.ID, service.AddRecordInput{
		ExerciseID: bench.ID, Weight: 200, Reps: 5,
	})
	require.NoError(t, err)

	// Bob's first lift at the same (exercise, reps) is still a record.
	eval, err := records.Evaluate(ctx, bob.ID, bench.ID, 60, 5)
	require.NoError(t, err)
	assert.True(t, eval.IsNewRecord)

	// Bob cannot delete Alice's record.
	_, aliceRecords, err := records.GetRecordsForExercise(ctx, alice.ID, bench.ID)
	require.NoError(t, err)
	require.Len(t, aliceRecords, 1)
	err = records.DeleteRecord(ctx, bob.ID, aliceRecords[0].ID)
	assert.ErrorIs(t, err, service.ErrRecordNotFound)
}
