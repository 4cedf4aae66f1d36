package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (want day, week, month or year)", s)
	}
}

type Metric string

const (
	MetricVolume Metric = "volume"
	MetricWeight Metric = "weight"
)

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case MetricVolume, MetricWeight:
		return m, nil
	default:
		return "", fmt.Errorf("unknown trend %q (want volume or weight)", s)
	}
}

// TrendPoint is one bucket of a trend series. Count is the number of records
// that contributed; a point with Count 0 is an empty bucket kept for contiguity.
type TrendPoint struct {
	Start time.Time
	Label string
	Value float64
	Count int
}

func bucketStart(t time.Time, p Period, loc *time.Location) time.Time {
	day := timer.StartOfDay(t, loc)
	switch p {
	case PeriodWeek:
		return WeekStart(day, loc)
	case PeriodMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	case PeriodYear:
		return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

func shift(t time.Time, p Period, n int) time.Time {
	switch p {
	case PeriodWeek:
		return t.AddDate(0, 0, 7*n)
	case PeriodMonth:
		return t.AddDate(0, n, 0)
	case PeriodYear:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

func periodLabel(t time.Time, p Period) string {
	switch p {
	case PeriodMonth:
		return t.Format("Jan 2006")
	case PeriodYear:
		return t.Format("2006")
	default:
		return t.Format("Jan 2")
	}
}

type bucketAcc struct {
	start time.Time
	sum   float64
	count int
}

// Trend buckets completed records by period. Volume sums per bucket; weight
// averages the body weights recorded in it.
//
// With rangeN > 0 the series covers the rangeN buckets ending at now, empty
// ones included except for years. Without a range it spans the first to the
// last bucket holding data.
func Trend(records []models.WorkoutRecord, metric Metric, period Period, rangeN int, now time.Time, loc *time.Location) []TrendPoint {
	buckets := make(map[string]*bucketAcc)
	for _, r := range records {
		if !r.IsCompleted() {
			continue
		}
		value, ok := metricValue(r, metric)
		if !ok {
			continue
		}
		d, err := timer.ParseDate(r.Date, loc)
		if err != nil {
			continue
		}
		start := bucketStart(d, period, loc)
		key := start.Format(timer.DateLayout)
		acc, ok := buckets[key]
		if !ok {
			acc = &bucketAcc{start: start}
			buckets[key] = acc
		}
		acc.sum += value
		acc.count++
	}

	var first, last time.Time
	if rangeN > 0 {
		last = bucketStart(now, period, loc)
		first = shift(last, period, -(rangeN - 1))
	} else {
		if len(buckets) == 0 {
			return nil
		}
		for _, acc := range buckets {
			if first.IsZero() || acc.start.Before(first) {
				first = acc.start
			}
			if acc.start.After(last) {
				last = acc.start
			}
		}
	}

	if period == PeriodYear {
		return sparsePoints(buckets, first, last, metric, period)
	}

	var points []TrendPoint
	for b := first; !b.After(last); b = shift(b, period, 1) {
		point := TrendPoint{Start: b, Label: periodLabel(b, period)}
		if acc, ok := buckets[b.Format(timer.DateLayout)]; ok {
			point.Value = aggregate(acc, metric)
			point.Count = acc.count
		}
		points = append(points, point)
	}
	return points
}

func sparsePoints(buckets map[string]*bucketAcc, first, last time.Time, metric Metric, period Period) []TrendPoint {
	var points []TrendPoint
	for _, acc := range buckets {
		if acc.start.Before(first) || acc.start.After(last) {
			continue
		}
		points = append(points, TrendPoint{
			Start: acc.start,
			Label: periodLabel(acc.start, period),
			Value: aggregate(acc, metric),
			Count: acc.count,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Start.Before(points[j].Start) })
	return points
}

func metricValue(r models.WorkoutRecord, metric Metric) (float64, bool) {
	if metric == MetricWeight {
		if r.BodyWeight == nil || *r.BodyWeight <= 0 {
			return 0, false
		}
		return *r.BodyWeight, true
	}
	return r.Volume(), true
}

func aggregate(acc *bucketAcc, metric Metric) float64 {
	if metric == MetricWeight {
		return acc.sum / float64(acc.count)
	}
	return acc.sum
}
