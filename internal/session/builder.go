package session

import (
	"sort"

	"github.com/misterclayt0n/liftlog/internal/models"
)

const (
	DefaultSetCount = 3
	DefaultRepsMin  = 10
	DefaultRepsMax  = 12
)

// BuildExercises turns routine templates into fresh session exercises, ordered
// by OrderIndex, with every set incomplete and zeroed.
func BuildExercises(templates []models.RoutineExercise) []models.SessionExercise {
	ordered := make([]models.RoutineExercise, len(templates))
	copy(ordered, templates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	exercises := make([]models.SessionExercise, 0, len(ordered))
	for _, t := range ordered {
		setCount := t.Sets
		if setCount <= 0 {
			setCount = DefaultSetCount
		}

		target := buildTarget(t)
		sets := make([]models.SetRecord, setCount)
		for i := range sets {
			sets[i] = models.SetRecord{
				SetNumber: i + 1,
				Target:    target,
			}
		}

		exercises = append(exercises, models.SessionExercise{
			Exercise:     t.Exercise,
			Name:         t.Name,
			Category:     t.Category,
			TargetSets:   setCount,
			TargetWeight: copyFloat(t.TargetWeight),
			Sets:         sets,
		})
	}
	return exercises
}

func buildTarget(t models.RoutineExercise) models.SetTarget {
	switch {
	case t.DurationSeconds > 0:
		return models.SetTarget{Kind: models.TargetDuration, DurationSeconds: t.DurationSeconds}

	case t.RepsMin > 0 || t.RepsMax > 0:
		lo, hi := t.RepsMin, t.RepsMax
		if lo == 0 {
			lo = hi
		}
		if hi == 0 {
			hi = lo
		}
		target := models.SetTarget{Kind: models.TargetReps, RepsMin: lo, RepsMax: hi}
		if lo == hi {
			target.Reps = lo
		}
		return target

	default:
		return models.SetTarget{Kind: models.TargetReps, RepsMin: DefaultRepsMin, RepsMax: DefaultRepsMax}
	}
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
