package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepRange(t *testing.T) {
	tests := []struct {
		in      string
		min     int
		max     int
		wantErr bool
	}{
		{"", 0, 0, false},
		{"10", 10, 10, false},
		{"8-12", 8, 12, false},
		{" 6 - 8 ", 6, 8, false},
		{"12-8", 0, 0, true},
		{"ten", 0, 0, true},
		{"8-", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lo, hi, err := ParseRepRange(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.min, lo)
			assert.Equal(t, tt.max, hi)
		})
	}
}

func TestRoutineExercise_Validate(t *testing.T) {
	ok := RoutineExercise{Name: "Squat", Sets: 3, RepsMin: 5, RepsMax: 5}
	assert.NoError(t, ok.Validate())

	both := RoutineExercise{Name: "Plank", Sets: 3, RepsMin: 5, DurationSeconds: 30}
	assert.Error(t, both.Validate())

	inverted := RoutineExercise{Name: "Curl", RepsMin: 12, RepsMax: 8}
	assert.Error(t, inverted.Validate())
}

func TestInferCategory(t *testing.T) {
	assert.Equal(t, CategoryChest, InferCategory("Incline Bench Press"))
	assert.Equal(t, CategoryLegs, InferCategory("Back Squat"))
	assert.Equal(t, CategoryCardio, InferCategory("Rowing Machine"))
	assert.Equal(t, CategoryBack, InferCategory("Barbell Row"))
	assert.Equal(t, CategoryCore, InferCategory("Plank"))
	assert.Equal(t, CategoryOther, InferCategory("Farmer Carry"))
}

func TestExerciseRef(t *testing.T) {
	b := BuiltinRef("squat")
	c := CustomRef("123", "Squat")
	assert.NotEqual(t, b.Key(), c.Key())
	assert.NoError(t, b.Validate())
	assert.NoError(t, c.Validate())
	assert.Error(t, ExerciseRef{Kind: ExerciseCustom, ID: "x"}.Validate())
	assert.Error(t, ExerciseRef{Kind: "other", ID: "x"}.Validate())
}
