package session

import (
	"math"
	"time"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

type Summary struct {
	TotalSets     int
	CompletedSets int
	// Volume is Σ weight × actual reps over completed sets only.
	Volume float64
}

func Summarize(exercises []models.SessionExercise) Summary {
	var sum Summary
	for _, ex := range exercises {
		for _, set := range ex.Sets {
			sum.TotalSets++
			if !set.IsCompleted {
				continue
			}
			sum.CompletedSets++
			sum.Volume += set.Weight * float64(set.ActualReps)
		}
	}
	return sum
}

// CompletionRate is round(100 × completed / total), or 0 without sets.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// DurationMinutes is the whole minutes of wall clock between start and now.
func DurationMinutes(start, now time.Time) int {
	return timer.ElapsedSeconds(start, now) / 60
}

// Elapsed returns the seconds the session has been running. It only depends on
// the stored start time, so it survives restarts.
func Elapsed(s *models.WorkoutSession, now time.Time) int {
	sw := timer.StartedAt(s.StartTime)
	return sw.Elapsed(now)
}

// NextTimer decides which rest timer follows the completion of the given set:
// a rest timer when a later set of the same exercise is still open, an
// exercise rest when the exercise is done and a later exercise still has open
// sets, nothing otherwise.
func NextTimer(s *models.WorkoutSession, exerciseIndex, setIndex int) timer.Kind {
	if exerciseIndex < 0 || exerciseIndex >= len(s.Exercises) {
		return timer.KindNone
	}
	ex := s.Exercises[exerciseIndex]
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return timer.KindNone
	}

	if !ex.AllSetsCompleted() {
		if setIndex < len(ex.Sets)-1 && !ex.Sets[setIndex+1].IsCompleted {
			return timer.KindRest
		}
		return timer.KindNone
	}

	for _, next := range s.Exercises[exerciseIndex+1:] {
		for _, set := range next.Sets {
			if !set.IsCompleted {
				return timer.KindExerciseRest
			}
		}
	}
	return timer.KindNone
}
