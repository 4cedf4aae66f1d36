package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

var t0 = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

type stubSource struct {
	session *models.WorkoutSession
	err     error
}

func (s stubSource) Active(context.Context) (*models.WorkoutSession, error) {
	return s.session, s.err
}

func openSets(n int) []models.SetRecord {
	sets := make([]models.SetRecord, n)
	for i := range sets {
		sets[i] = models.SetRecord{
			SetNumber: i + 1,
			Target:    models.SetTarget{Kind: models.TargetReps, RepsMin: 8, RepsMax: 12},
		}
	}
	return sets
}

func testSession() *models.WorkoutSession {
	return &models.WorkoutSession{
		ID:          "sess-1",
		RoutineName: "Push Day",
		StartTime:   t0,
		Exercises: []models.SessionExercise{
			{Name: "Bench Press", Sets: openSets(2)},
			{Name: "Dip", Sets: openSets(2)},
		},
	}
}

func press(m Model, r rune) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model), cmd
}

func TestView_TotalFromStoredStart(t *testing.T) {
	clock := timer.NewManualClock(t0.Add(65 * time.Second))
	m := New(context.Background(), testSession(), nil, clock)

	view := m.View()
	assert.Contains(t, view, "Push Day")
	assert.Contains(t, view, "1:05")
	assert.Contains(t, view, "Bench Press • set 1 of 2 • 8-12 reps")
	assert.NotContains(t, view, "rest 0:")
}

func TestRestTimer_PauseResume(t *testing.T) {
	clock := timer.NewManualClock(t0)
	m := New(context.Background(), testSession(), nil, clock)

	m, _ = press(m, 's')
	clock.Advance(10 * time.Second)
	m, _ = press(m, 'p')
	assert.Contains(t, m.View(), "rest (paused) 0:10")

	clock.Advance(50 * time.Second)
	m, _ = press(m, 'r')
	clock.Advance(5 * time.Second)
	assert.Contains(t, m.View(), "rest 0:15")

	m, _ = press(m, 'x')
	assert.Equal(t, timer.KindNone, m.rest.Active())
}

func TestRestTimer_ExerciseRestAfterLastSet(t *testing.T) {
	clock := timer.NewManualClock(t0)
	s := testSession()
	for i := range s.Exercises[0].Sets {
		at := t0.Add(time.Duration(i+1) * time.Minute)
		s.Exercises[0].Sets[i].IsCompleted = true
		s.Exercises[0].Sets[i].ActualReps = 10
		s.Exercises[0].Sets[i].CompletedAt = &at
	}
	m := New(context.Background(), s, nil, clock)

	m, _ = press(m, ' ')
	assert.Equal(t, timer.KindExerciseRest, m.rest.Active())
	assert.Contains(t, m.View(), "Dip • set 1 of 2")
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), testSession(), nil, timer.NewManualClock(t0))
	_, cmd := press(m, 'q')
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTick_SchedulesNextTick(t *testing.T) {
	m := New(context.Background(), testSession(), nil, timer.NewManualClock(t0))
	next, cmd := m.Update(tickMsg(t0))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, next.(Model).ticks)
}

func TestReload(t *testing.T) {
	clock := timer.NewManualClock(t0)
	s := testSession()

	t.Run("picks up changes", func(t *testing.T) {
		updated := testSession()
		updated.Exercises[0].Sets[0].IsCompleted = true
		updated.Exercises[0].Sets[0].ActualReps = 10
		updated.Exercises[0].Sets[0].Weight = 60

		m := New(context.Background(), s, stubSource{session: updated}, clock)
		msg := m.reloadCmd()()
		next, cmd := m.Update(msg)
		assert.Nil(t, cmd)
		assert.Contains(t, next.View(), "1/4 sets • 600kg")
	})

	t.Run("quits when the session ended", func(t *testing.T) {
		m := New(context.Background(), s, stubSource{}, clock)
		next, cmd := m.Update(m.reloadCmd()())
		require.NotNil(t, cmd)
		assert.True(t, next.(Model).Ended())
	})

	t.Run("keeps running on errors", func(t *testing.T) {
		m := New(context.Background(), s, stubSource{err: errors.New("db locked")}, clock)
		next, cmd := m.Update(m.reloadCmd()())
		assert.Nil(t, cmd)
		assert.False(t, next.(Model).Ended())
		assert.Contains(t, next.View(), "db locked")
	})
}
