package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Routine struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Recommended bool              `json:"recommended"` // Read-only templates shipped with the app.
	CreatedAt   time.Time         `json:"created_at"`
	LastUsed    *time.Time        `json:"last_used,omitempty"`
	Exercises   []RoutineExercise `json:"exercises"`
}

// RoutineExercise is the prescription of one exercise inside a routine. A rep
// range and a fixed duration are mutually exclusive.
type RoutineExercise struct {
	ID              string      `json:"id"`
	Exercise        ExerciseRef `json:"exercise"`
	Name            string      `json:"name"`
	Category        Category    `json:"category"`
	Sets            int         `json:"sets"`
	RepsMin         int         `json:"reps_min,omitempty"`
	RepsMax         int         `json:"reps_max,omitempty"`
	DurationSeconds int         `json:"duration_seconds,omitempty"`
	TargetWeight    *float64    `json:"target_weight,omitempty"`
	OrderIndex      int         `json:"order_index"`
}

func (e RoutineExercise) Validate() error {
	if e.Sets < 0 {
		return fmt.Errorf("exercise %q: negative set count", e.Name)
	}
	if e.DurationSeconds < 0 || e.RepsMin < 0 || e.RepsMax < 0 {
		return fmt.Errorf("exercise %q: negative target", e.Name)
	}
	if e.DurationSeconds > 0 && (e.RepsMin > 0 || e.RepsMax > 0) {
		return fmt.Errorf("exercise %q: reps and duration are mutually exclusive", e.Name)
	}
	if e.RepsMin > 0 && e.RepsMax > 0 && e.RepsMin > e.RepsMax {
		return fmt.Errorf("exercise %q: reps min %d above max %d", e.Name, e.RepsMin, e.RepsMax)
	}
	return nil
}

// ParseRepRange accepts "10", "8-12" or an empty string.
func ParseRepRange(s string) (repsMin, repsMax int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}

	lo, hi, isRange := strings.Cut(s, "-")
	repsMin, err = strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reps %q", s)
	}
	if !isRange {
		return repsMin, repsMin, nil
	}
	repsMax, err = strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reps %q", s)
	}
	if repsMin > repsMax {
		return 0, 0, fmt.Errorf("invalid reps %q: min above max", s)
	}
	return repsMin, repsMax, nil
}

//
// For TOML parsing only
//

type RoutineTOML struct {
	Name        string                `toml:"name"`
	Description string                `toml:"description"`
	Exercises   []RoutineExerciseTOML `toml:"exercise"`
}

type RoutineExerciseTOML struct {
	Name     string   `toml:"name"`
	Sets     int      `toml:"sets"`
	Reps     string   `toml:"reps,omitempty"`
	Duration int      `toml:"duration,omitempty"` // Seconds.
	Weight   *float64 `toml:"weight,omitempty"`
}

type RoutineImport struct {
	Routines []RoutineTOML `toml:"routine"`
}
