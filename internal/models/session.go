package models

import "time"

type TargetKind string

const (
	TargetReps     TargetKind = "reps"
	TargetDuration TargetKind = "duration"
)

// SetTarget is what a set prescribes, copied from the routine when the session
// starts. Rep targets carry a range; Reps is also set when the range is a
// single number.
type SetTarget struct {
	Kind            TargetKind `json:"kind"`
	RepsMin         int        `json:"reps_min,omitempty"`
	RepsMax         int        `json:"reps_max,omitempty"`
	Reps            int        `json:"reps,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
}

func (t SetTarget) IsDuration() bool { return t.Kind == TargetDuration }

// IsFixed reports whether the rep target is a single number rather than a range.
func (t SetTarget) IsFixed() bool { return t.Kind == TargetReps && t.Reps > 0 }

type SetRecord struct {
	SetNumber             int        `json:"set_number"` // 1-based.
	Target                SetTarget  `json:"target"`
	ActualReps            int        `json:"actual_reps"`
	ActualDurationSeconds int        `json:"actual_duration_seconds"`
	Weight                float64    `json:"weight"`
	IsCompleted           bool       `json:"is_completed"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	RestDurationSeconds   *int       `json:"rest_duration_seconds,omitempty"` // Rest taken before this set.
	ElapsedTimeSeconds    *int       `json:"elapsed_time_seconds,omitempty"`  // Time spent on the set itself.
}

type SessionExercise struct {
	Exercise                ExerciseRef `json:"exercise"`
	Name                    string      `json:"name"`
	Category                Category    `json:"category"`
	TargetSets              int         `json:"target_sets"`
	TargetWeight            *float64    `json:"target_weight,omitempty"`
	Sets                    []SetRecord `json:"sets"`
	IsCompleted             bool        `json:"is_completed"`
	ExerciseDurationSeconds *int        `json:"exercise_duration_seconds,omitempty"`
}

// AllSetsCompleted is false for an exercise without sets.
func (e SessionExercise) AllSetsCompleted() bool {
	if len(e.Sets) == 0 {
		return false
	}
	for _, s := range e.Sets {
		if !s.IsCompleted {
			return false
		}
	}
	return true
}

type SessionStatus string

const SessionInProgress SessionStatus = "in_progress"

type WorkoutSession struct {
	ID                    string            `json:"id"`
	UserID                string            `json:"user_id"`
	RoutineID             string            `json:"routine_id,omitempty"`
	RoutineName           string            `json:"routine_name"`
	Status                SessionStatus     `json:"status"`
	StartTime             time.Time         `json:"start_time"`
	Exercises             []SessionExercise `json:"exercises"`
	CurrentExerciseIndex  int               `json:"current_exercise_index"` // Advisory only.
	TotalDurationSeconds  int               `json:"total_duration_seconds"`
	PausedDurationSeconds int               `json:"paused_duration_seconds"`
}

type RecordStatus string

const (
	RecordCompleted RecordStatus = "completed"
	RecordStopped   RecordStatus = "stopped"
)

// WorkoutRecord is the frozen result of a finished session. Only Memo may
// change after creation.
type WorkoutRecord struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Date            string            `json:"date"` // Local calendar date, YYYY-MM-DD.
	RoutineID       string            `json:"routine_id,omitempty"`
	RoutineName     string            `json:"routine_name"`
	Status          RecordStatus      `json:"status"`
	Exercises       []SessionExercise `json:"exercises"`
	DurationMinutes int               `json:"duration_minutes"`
	TotalVolume     *float64          `json:"total_volume,omitempty"`
	CompletionRate  int               `json:"completion_rate"`
	BodyWeight      *float64          `json:"body_weight,omitempty"`
	Memo            string            `json:"memo,omitempty"`
	StartTime       time.Time         `json:"start_time"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (r WorkoutRecord) IsCompleted() bool { return r.Status == RecordCompleted }

// Volume is TotalVolume or zero when the record carries none.
func (r WorkoutRecord) Volume() float64 {
	if r.TotalVolume == nil {
		return 0
	}
	return *r.TotalVolume
}

// NewRecord is everything the record store needs to create a record; the store
// assigns ID and CreatedAt.
type NewRecord struct {
	Date            string
	RoutineID       string
	RoutineName     string
	Status          RecordStatus
	Exercises       []SessionExercise
	DurationMinutes int
	TotalVolume     *float64
	CompletionRate  int
	BodyWeight      *float64
	Memo            string
	StartTime       time.Time
}

// RecordUpdate lists the mutable fields of a record.
type RecordUpdate struct {
	Memo *string
}

type Profile struct {
	UserID     string     `json:"user_id"`
	BodyWeight *float64   `json:"body_weight,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
