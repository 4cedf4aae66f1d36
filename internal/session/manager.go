package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

// ActiveStore holds the single active-session slot. GetActiveSession returns
// nil, nil when the slot is empty.
type ActiveStore interface {
	GetActiveSession(ctx context.Context) (*models.WorkoutSession, error)
	SaveActiveSession(ctx context.Context, s *models.WorkoutSession) error
}

// RecordStore turns the active session into a permanent record. FinishSession
// must write the record and clear the active slot atomically.
type RecordStore interface {
	FinishSession(ctx context.Context, userID string, rec models.NewRecord) (*models.WorkoutRecord, error)
}

type RoutineStore interface {
	TouchRoutine(ctx context.Context, routineID string, at time.Time) error
}

type ProfileStore interface {
	SetBodyWeight(ctx context.Context, userID string, kg float64) error
}

// SetResult is what the user reports when finishing a set.
type SetResult struct {
	ActualReps            int
	ActualDurationSeconds int
	Weight                float64
	RestDurationSeconds   *int
	ElapsedTimeSeconds    *int
}

// Manager drives the lifecycle of the active workout session. It keeps no
// session in memory: every transition loads the slot, applies the change to a
// copy and persists it, so a failed write leaves the stored state untouched.
type Manager struct {
	active   ActiveStore
	records  RecordStore
	routines RoutineStore
	profiles ProfileStore

	clock timer.Clock
	loc   *time.Location
	log   logrus.FieldLogger
	newID func() string
}

type Option func(*Manager)

func WithClock(c timer.Clock) Option { return func(m *Manager) { m.clock = c } }

// WithLocation sets the zone used to derive record dates.
func WithLocation(loc *time.Location) Option { return func(m *Manager) { m.loc = loc } }

func WithLogger(l logrus.FieldLogger) Option { return func(m *Manager) { m.log = l } }

func WithIDGenerator(fn func() string) Option { return func(m *Manager) { m.newID = fn } }

// NewManager wires a manager. profiles may be nil, in which case body weight
// is never backfilled.
func NewManager(active ActiveStore, records RecordStore, routines RoutineStore, profiles ProfileStore, opts ...Option) *Manager {
	m := &Manager{
		active:   active,
		records:  records,
		routines: routines,
		profiles: profiles,
		clock:    timer.SystemClock{},
		loc:      time.Local,
		log:      logrus.StandardLogger(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active returns the active session, or nil when there is none.
func (m *Manager) Active(ctx context.Context) (*models.WorkoutSession, error) {
	s, err := m.active.GetActiveSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}
	return s, nil
}

// Start begins a session from a routine. An already active session is
// force-stopped first and persisted as a stopped record.
func (m *Manager) Start(ctx context.Context, userID string, routine models.Routine) (*models.WorkoutSession, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	existing, err := m.Active(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		m.log.WithFields(logrus.Fields{
			"session_id": existing.ID,
			"routine":    existing.RoutineName,
		}).Warn("stopping previous session before starting a new one")
		if _, err := m.finalize(ctx, existing, models.RecordStopped, nil); err != nil {
			return nil, fmt.Errorf("stop previous session: %w", err)
		}
	}

	now := m.clock.Now()
	if !routine.Recommended && routine.ID != "" {
		if err := m.routines.TouchRoutine(ctx, routine.ID, now); err != nil {
			return nil, fmt.Errorf("touch routine %q: %w", routine.Name, err)
		}
	}

	s := &models.WorkoutSession{
		ID:          m.newID(),
		UserID:      userID,
		RoutineID:   routine.ID,
		RoutineName: routine.Name,
		Status:      models.SessionInProgress,
		StartTime:   now,
		Exercises:   BuildExercises(routine.Exercises),
	}
	if err := m.active.SaveActiveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("save active session: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"routine":    s.RoutineName,
		"exercises":  len(s.Exercises),
	}).Info("session started")
	return s, nil
}

// CompleteSet marks a set done with the reported values. The set's exercise
// becomes the current one.
func (m *Manager) CompleteSet(ctx context.Context, sessionID string, exerciseIndex, setIndex int, res SetResult) (*models.WorkoutSession, error) {
	if res.ActualReps < 0 || res.ActualDurationSeconds < 0 || res.Weight < 0 {
		return nil, ErrNegativeSetResult
	}
	if res.ActualReps == 0 && res.ActualDurationSeconds == 0 {
		return nil, ErrEmptySetResult
	}

	s, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	set, ex, err := locate(s, exerciseIndex, setIndex)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	set.ActualReps = res.ActualReps
	set.ActualDurationSeconds = res.ActualDurationSeconds
	set.Weight = res.Weight
	set.IsCompleted = true
	set.CompletedAt = &now
	set.RestDurationSeconds = copyInt(res.RestDurationSeconds)
	set.ElapsedTimeSeconds = copyInt(res.ElapsedTimeSeconds)
	ex.IsCompleted = ex.AllSetsCompleted()
	s.CurrentExerciseIndex = exerciseIndex

	if err := m.active.SaveActiveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("save active session: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"exercise":   ex.Name,
		"set":        set.SetNumber,
		"reps":       set.ActualReps,
		"weight":     set.Weight,
	}).Debug("set completed")
	return s, nil
}

// UncompleteSet clears the completion flags of a set but keeps the values the
// user entered. Uncompleting an open set is a no-op.
func (m *Manager) UncompleteSet(ctx context.Context, sessionID string, exerciseIndex, setIndex int) (*models.WorkoutSession, error) {
	s, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	set, ex, err := locate(s, exerciseIndex, setIndex)
	if err != nil {
		return nil, err
	}
	if !set.IsCompleted {
		return s, nil
	}

	set.IsCompleted = false
	set.CompletedAt = nil
	ex.IsCompleted = false

	if err := m.active.SaveActiveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("save active session: %w", err)
	}
	return s, nil
}

// UpdateExerciseDuration sets the total time spent on one exercise.
func (m *Manager) UpdateExerciseDuration(ctx context.Context, sessionID string, exerciseIndex, seconds int) (*models.WorkoutSession, error) {
	if seconds < 0 {
		return nil, ErrInvalidDuration
	}

	s, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if exerciseIndex < 0 || exerciseIndex >= len(s.Exercises) {
		return nil, fmt.Errorf("%w: exercise %d", ErrIndexOutOfRange, exerciseIndex)
	}

	s.Exercises[exerciseIndex].ExerciseDurationSeconds = &seconds
	if err := m.active.SaveActiveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("save active session: %w", err)
	}
	return s, nil
}

// CompleteWorkout turns the session into a completed record and clears the
// slot. A positive bodyWeight is stored on the record and backfilled to the
// profile. When only the backfill fails, the record is returned together with
// the error.
func (m *Manager) CompleteWorkout(ctx context.Context, sessionID string, bodyWeight *float64) (*models.WorkoutRecord, error) {
	s, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bodyWeight != nil && *bodyWeight <= 0 {
		bodyWeight = nil
	}
	return m.finalize(ctx, s, models.RecordCompleted, bodyWeight)
}

// StopWorkout ends the session early and persists whatever was done as a
// stopped record.
func (m *Manager) StopWorkout(ctx context.Context, sessionID string) (*models.WorkoutRecord, error) {
	s, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return m.finalize(ctx, s, models.RecordStopped, nil)
}

func (m *Manager) finalize(ctx context.Context, s *models.WorkoutSession, status models.RecordStatus, bodyWeight *float64) (*models.WorkoutRecord, error) {
	now := m.clock.Now()
	sum := Summarize(s.Exercises)
	volume := sum.Volume

	rec, err := m.records.FinishSession(ctx, s.UserID, models.NewRecord{
		Date:            timer.LocalDate(s.StartTime, m.loc),
		RoutineID:       s.RoutineID,
		RoutineName:     s.RoutineName,
		Status:          status,
		Exercises:       cloneExercises(s.Exercises),
		DurationMinutes: DurationMinutes(s.StartTime, now),
		TotalVolume:     &volume,
		CompletionRate:  CompletionRate(sum.CompletedSets, sum.TotalSets),
		BodyWeight:      copyFloat(bodyWeight),
		StartTime:       s.StartTime,
	})
	if err != nil {
		return nil, fmt.Errorf("finish session: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"session_id":      s.ID,
		"record_id":       rec.ID,
		"status":          status,
		"completion_rate": rec.CompletionRate,
		"volume":          volume,
	}).Info("session finished")

	if bodyWeight != nil && m.profiles != nil {
		if err := m.profiles.SetBodyWeight(ctx, s.UserID, *bodyWeight); err != nil {
			return rec, fmt.Errorf("backfill body weight: %w", err)
		}
	}
	return rec, nil
}

func (m *Manager) load(ctx context.Context, sessionID string) (*models.WorkoutSession, error) {
	s, err := m.Active(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoActiveSession
	}
	if s.ID != sessionID {
		return nil, fmt.Errorf("%w: active is %s, got %s", ErrSessionMismatch, s.ID, sessionID)
	}
	return s, nil
}

func locate(s *models.WorkoutSession, exerciseIndex, setIndex int) (*models.SetRecord, *models.SessionExercise, error) {
	if exerciseIndex < 0 || exerciseIndex >= len(s.Exercises) {
		return nil, nil, fmt.Errorf("%w: exercise %d", ErrIndexOutOfRange, exerciseIndex)
	}
	ex := &s.Exercises[exerciseIndex]
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return nil, nil, fmt.Errorf("%w: set %d of %q", ErrIndexOutOfRange, setIndex, ex.Name)
	}
	return &ex.Sets[setIndex], ex, nil
}

func cloneExercises(in []models.SessionExercise) []models.SessionExercise {
	out := make([]models.SessionExercise, len(in))
	for i, ex := range in {
		ex.TargetWeight = copyFloat(ex.TargetWeight)
		ex.ExerciseDurationSeconds = copyInt(ex.ExerciseDurationSeconds)
		sets := make([]models.SetRecord, len(ex.Sets))
		for j, set := range ex.Sets {
			if set.CompletedAt != nil {
				at := *set.CompletedAt
				set.CompletedAt = &at
			}
			set.RestDurationSeconds = copyInt(set.RestDurationSeconds)
			set.ElapsedTimeSeconds = copyInt(set.ElapsedTimeSeconds)
			sets[j] = set
		}
		ex.Sets = sets
		out[i] = ex
	}
	return out
}
