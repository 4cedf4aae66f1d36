package stats_test

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/misterclayt0n/liftlog/internal/models"
)

// Wednesday; the week starts on Sunday 2025-03-09.
var now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func set(reps int, weight float64, done bool) models.SetRecord {
	return models.SetRecord{
		Target:      models.SetTarget{Kind: models.TargetReps, RepsMin: 8, RepsMax: 12},
		ActualReps:  reps,
		Weight:      weight,
		IsCompleted: done,
	}
}

func exercise(ref models.ExerciseRef, name string, cat models.Category, sets ...models.SetRecord) models.SessionExercise {
	for i := range sets {
		sets[i].SetNumber = i + 1
	}
	return models.SessionExercise{
		Exercise:   ref,
		Name:       name,
		Category:   cat,
		TargetSets: len(sets),
		Sets:       sets,
	}
}

func record(date string, status models.RecordStatus, exs ...models.SessionExercise) models.WorkoutRecord {
	var volume float64
	for _, ex := range exs {
		for _, s := range ex.Sets {
			if s.IsCompleted {
				volume += s.Weight * float64(s.ActualReps)
			}
		}
	}
	return models.WorkoutRecord{
		ID:              gofakeit.UUID(),
		UserID:          "u1",
		Date:            date,
		RoutineName:     gofakeit.BuzzWord(),
		Status:          status,
		Exercises:       exs,
		DurationMinutes: 45,
		TotalVolume:     &volume,
		Memo:            gofakeit.Sentence(6),
	}
}

// volumeRecord is a completed record whose only content is its volume.
func volumeRecord(date string, volume float64) models.WorkoutRecord {
	return record(date, models.RecordCompleted,
		exercise(models.BuiltinRef("bench_press"), "Bench Press", models.CategoryChest, set(1, volume, true)))
}

func withBodyWeight(r models.WorkoutRecord, kg float64) models.WorkoutRecord {
	r.BodyWeight = &kg
	return r
}
