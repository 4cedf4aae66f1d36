package stats

import (
	"math"
	"time"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

type WeekTotals struct {
	Workouts        int
	Volume          float64
	DurationMinutes int
}

type WeekComparison struct {
	ThisWeekStart  time.Time
	Current        WeekTotals
	Previous       WeekTotals
	WorkoutsChange int
	VolumeChange   int
	DurationChange int
}

// WeekStart returns Sunday 00:00 local time of the week containing t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := timer.StartOfDay(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// PercentChange is round(100 × (current - previous) / previous). A previous
// value of zero yields 100 when there is new activity and 0 otherwise.
func PercentChange(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(100 * (current - previous) / previous))
}

// CompareWeeks sums completed records of the current calendar week and the 7
// days before it.
func CompareWeeks(records []models.WorkoutRecord, now time.Time, loc *time.Location) WeekComparison {
	thisWeek := WeekStart(now, loc)
	lastWeek := thisWeek.AddDate(0, 0, -7)
	nextWeek := thisWeek.AddDate(0, 0, 7)

	cmp := WeekComparison{ThisWeekStart: thisWeek}
	for _, r := range records {
		if !r.IsCompleted() {
			continue
		}
		d, err := timer.ParseDate(r.Date, loc)
		if err != nil {
			continue
		}

		var bucket *WeekTotals
		switch {
		case !d.Before(thisWeek) && d.Before(nextWeek):
			bucket = &cmp.Current
		case !d.Before(lastWeek) && d.Before(thisWeek):
			bucket = &cmp.Previous
		default:
			continue
		}
		bucket.Workouts++
		bucket.Volume += r.Volume()
		bucket.DurationMinutes += r.DurationMinutes
	}

	cmp.WorkoutsChange = PercentChange(float64(cmp.Current.Workouts), float64(cmp.Previous.Workouts))
	cmp.VolumeChange = PercentChange(cmp.Current.Volume, cmp.Previous.Volume)
	cmp.DurationChange = PercentChange(float64(cmp.Current.DurationMinutes), float64(cmp.Previous.DurationMinutes))
	return cmp
}
