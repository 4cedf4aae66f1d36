package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/liftlog/internal/models"
)

func TestBuildExercises_DefaultTarget(t *testing.T) {
	exs := BuildExercises([]models.RoutineExercise{{Name: "Mystery", Exercise: models.BuiltinRef("mystery")}})
	require.Len(t, exs, 1)
	require.Len(t, exs[0].Sets, DefaultSetCount)

	for i, set := range exs[0].Sets {
		assert.Equal(t, i+1, set.SetNumber)
		assert.Equal(t, models.TargetReps, set.Target.Kind)
		assert.Equal(t, 10, set.Target.RepsMin)
		assert.Equal(t, 12, set.Target.RepsMax)
		assert.False(t, set.IsCompleted)
		assert.Zero(t, set.ActualReps)
		assert.Zero(t, set.Weight)
	}
}

func TestBuildExercises_Targets(t *testing.T) {
	w := 60.0
	exs := BuildExercises([]models.RoutineExercise{
		{Name: "Plank", Sets: 2, DurationSeconds: 45, OrderIndex: 2},
		{Name: "Squat", Sets: 5, RepsMin: 5, RepsMax: 5, TargetWeight: &w, OrderIndex: 0},
		{Name: "Curl", Sets: 3, RepsMin: 8, RepsMax: 12, OrderIndex: 1},
		{Name: "Dip", RepsMax: 15, OrderIndex: 3},
	})
	require.Len(t, exs, 4)

	squat, curl, plank, dip := exs[0], exs[1], exs[2], exs[3]
	assert.Equal(t, "Squat", squat.Name)
	assert.Len(t, squat.Sets, 5)
	assert.True(t, squat.Sets[0].Target.IsFixed())
	assert.Equal(t, 5, squat.Sets[0].Target.Reps)
	require.NotNil(t, squat.TargetWeight)
	assert.Equal(t, 60.0, *squat.TargetWeight)

	w = 100
	assert.Equal(t, 60.0, *squat.TargetWeight, "target weight is copied")

	assert.Equal(t, "Curl", curl.Name)
	assert.False(t, curl.Sets[0].Target.IsFixed())
	assert.Equal(t, 8, curl.Sets[0].Target.RepsMin)
	assert.Equal(t, 12, curl.Sets[0].Target.RepsMax)

	assert.Equal(t, "Plank", plank.Name)
	assert.True(t, plank.Sets[0].Target.IsDuration())
	assert.Equal(t, 45, plank.Sets[0].Target.DurationSeconds)

	assert.Equal(t, "Dip", dip.Name)
	assert.Len(t, dip.Sets, DefaultSetCount)
	assert.Equal(t, 15, dip.Sets[0].Target.Reps)
}

func TestBuildExercises_Empty(t *testing.T) {
	assert.Empty(t, BuildExercises(nil))
}
