package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type recordsRepo interface {
	GetAllRecords(ctx context.Context) ([]models.WorkoutRecord, error)
	GetRecordsByDateRange(ctx context.Context, from, to string) ([]models.WorkoutRecord, error)
}

// Service recomputes every statistic from the record store on each call.
type Service struct {
	repo  recordsRepo
	clock timer.Clock
	loc   *time.Location
}

func NewService(repo recordsRepo, clock timer.Clock, loc *time.Location) *Service {
	if clock == nil {
		clock = timer.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:  repo,
		clock: clock,
		loc:   loc,
	}
}

func (s *Service) all(ctx context.Context) ([]models.WorkoutRecord, error) {
	records, err := s.repo.GetAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *Service) Streak(ctx context.Context) (int, error) {
	records, err := s.all(ctx)
	if err != nil {
		return 0, err
	}
	return Streak(records, s.clock.Now(), s.loc), nil
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	records, err := s.all(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Summarize(records, s.clock.Now(), s.loc), nil
}

// Week only loads the two weeks it compares.
func (s *Service) Week(ctx context.Context) (WeekComparison, error) {
	now := s.clock.Now()
	start := WeekStart(now, s.loc)
	from := timer.LocalDate(start.AddDate(0, 0, -7), s.loc)
	to := timer.LocalDate(start.AddDate(0, 0, 6), s.loc)

	records, err := s.repo.GetRecordsByDateRange(ctx, from, to)
	if err != nil {
		return WeekComparison{}, fmt.Errorf("list records %s..%s: %w", from, to, err)
	}
	return CompareWeeks(records, now, s.loc), nil
}

func (s *Service) ExerciseStats(ctx context.Context) ([]ExerciseStat, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return ExerciseStats(records), nil
}

func (s *Service) Categories(ctx context.Context) ([]CategoryShare, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryDistribution(records), nil
}

func (s *Service) Trend(ctx context.Context, metric Metric, period Period, rangeN int) ([]TrendPoint, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return Trend(records, metric, period, rangeN, s.clock.Now(), s.loc), nil
}

func (s *Service) Insights(ctx context.Context) ([]Insight, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return Insights(records, s.clock.Now(), s.loc), nil
}

// Month reads the records of one calendar month once and returns them with the
// days that hold a completed workout.
func (s *Service) Month(ctx context.Context, year int, month time.Month) ([]models.WorkoutRecord, map[int]bool, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	from := timer.LocalDate(first, s.loc)
	to := timer.LocalDate(first.AddDate(0, 1, -1), s.loc)

	records, err := s.repo.GetRecordsByDateRange(ctx, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("list records %s..%s: %w", from, to, err)
	}
	return records, WorkoutDays(records, year, month, s.loc), nil
}
