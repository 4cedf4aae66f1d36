package stats

import (
	"time"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

// completedDates returns the set of local dates with at least one completed record.
func completedDates(records []models.WorkoutRecord) map[string]bool {
	dates := make(map[string]bool)
	for _, r := range records {
		if r.IsCompleted() {
			dates[r.Date] = true
		}
	}
	return dates
}

// Streak counts consecutive days with a completed workout, walking back from
// today. A day without a workout yet doesn't break yesterday's streak.
func Streak(records []models.WorkoutRecord, now time.Time, loc *time.Location) int {
	dates := completedDates(records)
	if len(dates) == 0 {
		return 0
	}

	day := timer.StartOfDay(now, loc)
	if !dates[timer.LocalDate(day, loc)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for dates[timer.LocalDate(day, loc)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WorkoutDays returns the days of the given month holding a completed record.
func WorkoutDays(records []models.WorkoutRecord, year int, month time.Month, loc *time.Location) map[int]bool {
	days := make(map[int]bool)
	for date := range completedDates(records) {
		d, err := timer.ParseDate(date, loc)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			days[d.Day()] = true
		}
	}
	return days
}

type Overview struct {
	Workouts     int
	Stopped      int
	TotalVolume  float64
	TotalMinutes int
	Streak       int
	LastWorkout  string
}

func Summarize(records []models.WorkoutRecord, now time.Time, loc *time.Location) Overview {
	o := Overview{Streak: Streak(records, now, loc)}
	for _, r := range records {
		if !r.IsCompleted() {
			o.Stopped++
			continue
		}
		o.Workouts++
		o.TotalVolume += r.Volume()
		o.TotalMinutes += r.DurationMinutes
		if r.Date > o.LastWorkout {
			o.LastWorkout = r.Date
		}
	}
	return o
}
