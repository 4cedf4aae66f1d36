package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

var t0 = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *memStore, *timer.ManualClock, *test.Hook) {
	t.Helper()
	store := newMemStore()
	clock := timer.NewManualClock(t0)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	n := 0
	m := NewManager(store, store, store, store,
		WithClock(clock),
		WithLocation(time.UTC),
		WithLogger(logger),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("sess-%d", n)
		}),
	)
	return m, store, clock, hook
}

func twoByThree() models.Routine {
	return models.Routine{
		ID:   "r1",
		Name: "Push",
		Exercises: []models.RoutineExercise{
			{Name: "Bench", Exercise: models.BuiltinRef("bench_press"), Category: models.CategoryChest, Sets: 3, RepsMin: 10, RepsMax: 10},
			{Name: "Dip", Exercise: models.BuiltinRef("dip"), Category: models.CategoryChest, Sets: 3, RepsMin: 8, RepsMax: 12, OrderIndex: 1},
		},
	}
}

func done(reps int, weight float64) SetResult {
	return SetResult{ActualReps: reps, Weight: weight}
}

func TestManager_EndToEnd(t *testing.T) {
	ctx := context.Background()
	m, store, clock, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	assert.Equal(t, models.SessionInProgress, s.Status)
	assert.Equal(t, t0, store.touched["r1"])

	for ex := 0; ex < 2; ex++ {
		for set := 0; set < 3; set++ {
			clock.Advance(2 * time.Minute)
			s, err = m.CompleteSet(ctx, s.ID, ex, set, done(10, 20))
			require.NoError(t, err)
		}
	}
	assert.True(t, s.Exercises[0].IsCompleted)
	assert.True(t, s.Exercises[1].IsCompleted)
	assert.Equal(t, 1, s.CurrentExerciseIndex)

	clock.Advance(30 * time.Second)
	bw := 70.0
	rec, err := m.CompleteWorkout(ctx, s.ID, &bw)
	require.NoError(t, err)

	assert.Equal(t, models.RecordCompleted, rec.Status)
	assert.Equal(t, 100, rec.CompletionRate)
	require.NotNil(t, rec.TotalVolume)
	assert.Equal(t, 1200.0, *rec.TotalVolume)
	require.NotNil(t, rec.BodyWeight)
	assert.Equal(t, 70.0, *rec.BodyWeight)
	assert.Equal(t, 12, rec.DurationMinutes)
	assert.Equal(t, "2025-03-10", rec.Date)
	assert.Equal(t, 70.0, store.weights["u1"])

	active, err := m.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestManager_StartStopsPrevious(t *testing.T) {
	ctx := context.Background()
	m, store, clock, hook := newTestManager(t)

	first, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	_, err = m.CompleteSet(ctx, first.ID, 0, 0, done(10, 50))
	require.NoError(t, err)

	clock.Advance(5*time.Minute + 59*time.Second)
	second, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	active, err := m.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, models.RecordStopped, rec.Status)
	assert.Equal(t, 5, rec.DurationMinutes)
	assert.Equal(t, 500.0, rec.Volume())
	assert.Equal(t, 17, rec.CompletionRate) // round(100/6)
	assert.Nil(t, rec.BodyWeight)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestManager_RecommendedRoutineNotTouched(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	r := twoByThree()
	r.Recommended = true

	_, err := m.Start(context.Background(), "u1", r)
	require.NoError(t, err)
	assert.Empty(t, store.touched)
}

func TestManager_VolumeIgnoresIncompleteSets(t *testing.T) {
	ctx := context.Background()
	m, _, _, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	s, err = m.CompleteSet(ctx, s.ID, 0, 0, done(10, 100))
	require.NoError(t, err)
	s, err = m.CompleteSet(ctx, s.ID, 0, 1, done(8, 100))
	require.NoError(t, err)
	// Stale values stay on the set after uncompleting it.
	s, err = m.UncompleteSet(ctx, s.ID, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Exercises[0].Sets[1].ActualReps)

	rec, err := m.StopWorkout(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, rec.Volume())
	assert.Equal(t, 17, rec.CompletionRate)
}

func TestManager_UncompleteIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _, _, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	s, err = m.CompleteSet(ctx, s.ID, 1, 2, done(12, 0))
	require.NoError(t, err)

	once, err := m.UncompleteSet(ctx, s.ID, 1, 2)
	require.NoError(t, err)
	twice, err := m.UncompleteSet(ctx, s.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.False(t, twice.Exercises[1].Sets[2].IsCompleted)
	assert.Nil(t, twice.Exercises[1].Sets[2].CompletedAt)
}

func TestManager_CompletionRateWithoutSets(t *testing.T) {
	ctx := context.Background()
	m, _, _, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", models.Routine{Name: "Empty"})
	require.NoError(t, err)
	rec, err := m.CompleteWorkout(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CompletionRate)
	assert.Equal(t, 0.0, rec.Volume())
}

func TestCompletionRate(t *testing.T) {
	tests := []struct{ k, n, want int }{
		{0, 0, 0},
		{0, 6, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 6, 17},
		{6, 6, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionRate(tt.k, tt.n), "%d/%d", tt.k, tt.n)
	}
}

func TestManager_Errors(t *testing.T) {
	ctx := context.Background()
	m, store, _, _ := newTestManager(t)

	_, err := m.CompleteSet(ctx, "nope", 0, 0, done(1, 1))
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = m.StopWorkout(ctx, "nope")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = m.Start(ctx, "", twoByThree())
	assert.ErrorIs(t, err, ErrMissingUser)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)

	_, err = m.CompleteSet(ctx, "other", 0, 0, done(1, 1))
	assert.ErrorIs(t, err, ErrSessionMismatch)
	_, err = m.CompleteSet(ctx, s.ID, 0, 0, SetResult{Weight: 20})
	assert.ErrorIs(t, err, ErrEmptySetResult)
	for _, bad := range []SetResult{
		{ActualReps: -5, ActualDurationSeconds: 30, Weight: 20},
		{ActualReps: 8, ActualDurationSeconds: -1},
		{ActualReps: 8, Weight: -20},
	} {
		_, err = m.CompleteSet(ctx, s.ID, 0, 0, bad)
		assert.ErrorIs(t, err, ErrNegativeSetResult, "%+v", bad)
	}
	_, err = m.CompleteSet(ctx, s.ID, 2, 0, done(1, 1))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.CompleteSet(ctx, s.ID, 0, 3, done(1, 1))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.UncompleteSet(ctx, s.ID, -1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.UpdateExerciseDuration(ctx, s.ID, 0, -5)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	store.failSave = true
	_, err = m.CompleteSet(ctx, s.ID, 0, 0, done(10, 20))
	assert.ErrorIs(t, err, errStoreDown)

	store.failSave = false
	stored, err := m.Active(ctx)
	require.NoError(t, err)
	assert.False(t, stored.Exercises[0].Sets[0].IsCompleted)
}

func TestManager_RecordFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	m, store, _, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)

	store.failRec = true
	_, err = m.CompleteWorkout(ctx, s.ID, nil)
	assert.ErrorIs(t, err, errStoreDown)

	active, err := m.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, s.ID, active.ID)
}

func TestManager_FinishFailureWritesNoRecord(t *testing.T) {
	ctx := context.Background()
	m, store, _, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	_, err = m.CompleteSet(ctx, s.ID, 0, 0, done(10, 20))
	require.NoError(t, err)

	store.failClear = true
	_, err = m.CompleteWorkout(ctx, s.ID, nil)
	assert.ErrorIs(t, err, errStoreDown)
	_, err = m.Start(ctx, "u1", twoByThree())
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, store.records)

	active, err := m.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, s.ID, active.ID)

	store.failClear = false
	rec, err := m.CompleteWorkout(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 200.0, *rec.TotalVolume)
	assert.Len(t, store.records, 1)

	active, err = m.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestManager_BodyWeightBackfillFailure(t *testing.T) {
	ctx := context.Background()
	m, store, _, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)

	store.failProf = true
	bw := 81.5
	rec, err := m.CompleteWorkout(ctx, s.ID, &bw)
	assert.ErrorIs(t, err, errStoreDown)
	require.NotNil(t, rec)
	assert.Equal(t, 81.5, *rec.BodyWeight)
	assert.Len(t, store.records, 1)
}

func TestManager_ExerciseDuration(t *testing.T) {
	ctx := context.Background()
	m, _, _, _ := newTestManager(t)

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	s, err = m.UpdateExerciseDuration(ctx, s.ID, 1, 420)
	require.NoError(t, err)
	require.NotNil(t, s.Exercises[1].ExerciseDurationSeconds)
	assert.Equal(t, 420, *s.Exercises[1].ExerciseDurationSeconds)

	rec, err := m.CompleteWorkout(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 420, *rec.Exercises[1].ExerciseDurationSeconds)
}

func TestManager_RecordDateUsesStartInLocalZone(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	// 23:30 local on the 9th is already the 10th in UTC.
	loc := time.FixedZone("UTC-3", -3*60*60)
	clock := timer.NewManualClock(time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC))
	logger, _ := test.NewNullLogger()
	m := NewManager(store, store, store, nil, WithClock(clock), WithLocation(loc), WithLogger(logger))

	s, err := m.Start(ctx, "u1", twoByThree())
	require.NoError(t, err)
	clock.Advance(3 * time.Hour)

	bw := 70.0
	rec, err := m.CompleteWorkout(ctx, s.ID, &bw)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", rec.Date)
	assert.Equal(t, 180, rec.DurationMinutes)
}

func TestNextTimer(t *testing.T) {
	s := &models.WorkoutSession{Exercises: BuildExercises(twoByThree().Exercises)}

	s.Exercises[0].Sets[0].IsCompleted = true
	assert.Equal(t, timer.KindRest, NextTimer(s, 0, 0))

	s.Exercises[0].Sets[1].IsCompleted = true
	s.Exercises[0].Sets[2].IsCompleted = true
	assert.Equal(t, timer.KindExerciseRest, NextTimer(s, 0, 2))

	for i := range s.Exercises[1].Sets {
		s.Exercises[1].Sets[i].IsCompleted = true
	}
	assert.Equal(t, timer.KindNone, NextTimer(s, 1, 2))
	assert.Equal(t, timer.KindNone, NextTimer(s, 0, 2))
	assert.Equal(t, timer.KindNone, NextTimer(s, 5, 0))
}

func TestElapsedSurvivesReload(t *testing.T) {
	s := &models.WorkoutSession{StartTime: t0}
	assert.Equal(t, 95, Elapsed(s, t0.Add(95*time.Second+400*time.Millisecond)))
}
