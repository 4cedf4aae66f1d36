package stats

import (
	"math"
	"sort"

	"github.com/misterclayt0n/liftlog/internal/models"
)

// ExerciseStat aggregates the completed sets of one exercise across all
// completed records.
type ExerciseStat struct {
	Key           string
	Name          string // Display name from the most recent record.
	Category      models.Category
	TotalSets     int
	TotalReps     int
	TotalVolume   float64
	AverageWeight float64 // Rounded to a whole number.
	MaxWeight     float64
	BestOneRM     float64 // Best Epley estimate over completed sets.
	Workouts      int     // Distinct dates.
	LastDate      string
}

type exerciseAcc struct {
	stat    ExerciseStat
	weights []float64
	dates   map[string]bool
}

// ExerciseStats groups completed sets by exercise reference, so a custom
// exercise never merges with a built-in one of the same name. Sorted by total
// volume, highest first.
func ExerciseStats(records []models.WorkoutRecord) []ExerciseStat {
	accs := make(map[string]*exerciseAcc)
	for _, r := range records {
		if !r.IsCompleted() {
			continue
		}
		for _, ex := range r.Exercises {
			key := ex.Exercise.Key()
			acc, ok := accs[key]
			if !ok {
				acc = &exerciseAcc{
					stat:  ExerciseStat{Key: key},
					dates: make(map[string]bool),
				}
				accs[key] = acc
			}

			touched := false
			for _, set := range ex.Sets {
				if !set.IsCompleted {
					continue
				}
				touched = true
				acc.stat.TotalSets++
				acc.stat.TotalReps += set.ActualReps
				acc.stat.TotalVolume += set.Weight * float64(set.ActualReps)
				if set.Weight > 0 {
					acc.weights = append(acc.weights, set.Weight)
				}
				acc.stat.BestOneRM = math.Max(acc.stat.BestOneRM, EpleyOneRM(set.Weight, set.ActualReps))
			}
			if !touched {
				continue
			}
			acc.dates[r.Date] = true
			if r.Date >= acc.stat.LastDate {
				acc.stat.LastDate = r.Date
				acc.stat.Name = ex.Name
				acc.stat.Category = ex.Category
			}
		}
	}

	out := make([]ExerciseStat, 0, len(accs))
	for _, acc := range accs {
		if acc.stat.TotalSets == 0 {
			continue
		}
		var sum float64
		for _, w := range acc.weights {
			sum += w
			acc.stat.MaxWeight = math.Max(acc.stat.MaxWeight, w)
		}
		if len(acc.weights) > 0 {
			acc.stat.AverageWeight = math.Round(sum / float64(len(acc.weights)))
		}
		acc.stat.Workouts = len(acc.dates)
		out = append(out, acc.stat)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalVolume != out[j].TotalVolume {
			return out[i].TotalVolume > out[j].TotalVolume
		}
		return out[i].Key < out[j].Key
	})
	return out
}

type CategoryShare struct {
	Category models.Category
	Sets     int
	Percent  float64
}

// CategoryDistribution counts completed sets per category, largest share first.
func CategoryDistribution(records []models.WorkoutRecord) []CategoryShare {
	counts := make(map[models.Category]int)
	total := 0
	for _, r := range records {
		if !r.IsCompleted() {
			continue
		}
		for _, ex := range r.Exercises {
			cat := ex.Category
			if cat == "" {
				cat = models.InferCategory(ex.Name)
			}
			for _, set := range ex.Sets {
				if set.IsCompleted {
					counts[cat]++
					total++
				}
			}
		}
	}

	out := make([]CategoryShare, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryShare{
			Category: cat,
			Sets:     n,
			Percent:  100 * float64(n) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sets != out[j].Sets {
			return out[i].Sets > out[j].Sets
		}
		return out[i].Category < out[j].Category
	})
	return out
}
