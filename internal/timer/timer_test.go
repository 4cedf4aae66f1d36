package timer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var t0 = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func TestElapsedSeconds(t *testing.T) {
	assert.Equal(t, 0, ElapsedSeconds(t0, t0))
	assert.Equal(t, 1, ElapsedSeconds(t0, t0.Add(1999*time.Millisecond)))
	assert.Equal(t, 90, ElapsedSeconds(t0, t0.Add(90*time.Second)))
	assert.Equal(t, 0, ElapsedSeconds(t0, t0.Add(-5*time.Second)))
}

func TestStopwatch_PauseResume(t *testing.T) {
	clock := NewManualClock(t0)
	var sw Stopwatch

	sw.Start(clock.Now())
	clock.Advance(10 * time.Second)
	sw.Pause(clock.Now())
	require.True(t, sw.Paused())

	clock.Advance(50 * time.Second)
	assert.Equal(t, 10, sw.Elapsed(clock.Now()))

	sw.Resume(clock.Now())
	clock.Advance(5 * time.Second)
	assert.Equal(t, 15, sw.Elapsed(clock.Now()))
	assert.True(t, sw.Running())
}

func TestStopwatch_DoublePauseKeepsFrozenValue(t *testing.T) {
	clock := NewManualClock(t0)
	var sw Stopwatch
	sw.Start(clock.Now())
	clock.Advance(7 * time.Second)
	sw.Pause(clock.Now())
	clock.Advance(7 * time.Second)
	sw.Pause(clock.Now())
	assert.Equal(t, 7, sw.Elapsed(clock.Now()))
}

func TestStopwatch_StartedAt(t *testing.T) {
	sw := StartedAt(t0)
	assert.Equal(t, 3600, sw.Elapsed(t0.Add(time.Hour)))
	assert.Equal(t, 3600, sw.Stop(t0.Add(time.Hour)))
	assert.Equal(t, 0, sw.Elapsed(t0.Add(2*time.Hour)))
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestTimers_OnlyOneRuns(t *testing.T) {
	clock := NewManualClock(t0)
	var timers Timers

	timers.StartSet(1, 2, clock.Now())
	ex, set, ok := timers.SetPosition()
	require.True(t, ok)
	assert.Equal(t, 1, ex)
	assert.Equal(t, 2, set)

	clock.Advance(40 * time.Second)
	timers.StartRest(clock.Now())
	assert.Equal(t, KindRest, timers.Active())
	_, _, ok = timers.SetPosition()
	assert.False(t, ok)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 30, timers.Elapsed(clock.Now()))

	timers.StartExerciseRest(clock.Now())
	assert.Equal(t, KindExerciseRest, timers.Active())
	assert.Equal(t, 0, timers.Elapsed(clock.Now()))
}

func TestTimers_Take(t *testing.T) {
	clock := NewManualClock(t0)
	var timers Timers
	timers.StartRest(clock.Now())
	clock.Advance(95 * time.Second)

	assert.Nil(t, timers.Take(KindSet, clock.Now()))
	assert.Equal(t, KindRest, timers.Active())

	rest := timers.Take(KindRest, clock.Now())
	require.NotNil(t, rest)
	assert.Equal(t, 95, *rest)
	assert.Equal(t, KindNone, timers.Active())
}

func TestTick_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32
	done := make(chan error, 1)

	go func() {
		done <- Tick(ctx, 5*time.Millisecond, func(time.Time) {
			if ticks.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop")
	}
	assert.GreaterOrEqual(t, ticks.Load(), int32(3))
}

func TestLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	// 01:30 UTC is still the previous evening at UTC-3.
	late := time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", LocalDate(late, loc))
	assert.Equal(t, "2025-03-11", LocalDate(late, time.UTC))

	day, err := ParseDate("2025-03-10", loc)
	require.NoError(t, err)
	assert.True(t, day.Equal(StartOfDay(late, loc)))
}
