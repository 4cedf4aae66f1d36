package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/misterclayt0n/liftlog/internal/models"
)

// ImportRoutines creates routines from TOML. The file holds either a single
// routine at the top level or a list of [[routine]] tables.
func (s *Storage) ImportRoutines(ctx context.Context, data []byte) ([]models.Routine, error) {
	return s.importRoutines(ctx, data, false)
}

func parseRoutines(data []byte) ([]models.RoutineTOML, error) {
	var imp models.RoutineImport
	if err := toml.Unmarshal(data, &imp); err != nil {
		return nil, fmt.Errorf("invalid TOML format: %w", err)
	}
	if len(imp.Routines) > 0 {
		return imp.Routines, nil
	}

	var one models.RoutineTOML
	if err := toml.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("invalid TOML format: %w", err)
	}
	if one.Name == "" {
		return nil, errors.New("no routine found (missing name)")
	}
	return []models.RoutineTOML{one}, nil
}

func (s *Storage) importRoutines(ctx context.Context, data []byte, recommended bool) ([]models.Routine, error) {
	defs, err := parseRoutines(data)
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var created []models.Routine
	for _, def := range defs {
		def.Name = strings.TrimSpace(def.Name)
		if def.Name == "" {
			return nil, errors.New("routine without a name")
		}

		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM routines WHERE name = ? COLLATE NOCASE)`, def.Name,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check routine existence: %w", err)
		}
		if exists {
			if recommended {
				continue
			}
			return nil, fmt.Errorf("%w: %q", ErrRoutineExists, def.Name)
		}

		r, err := s.createRoutine(ctx, tx, def, recommended)
		if err != nil {
			return nil, fmt.Errorf("routine %q: %w", def.Name, err)
		}
		created = append(created, *r)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit routines: %w", err)
	}
	return created, nil
}

func (s *Storage) createRoutine(ctx context.Context, tx *sql.Tx, def models.RoutineTOML, recommended bool) (*models.Routine, error) {
	r := &models.Routine{
		ID:          uuid.NewString(),
		Name:        def.Name,
		Description: def.Description,
		Recommended: recommended,
		CreatedAt:   s.now(),
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO routines (id, name, description, recommended, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Description, boolInt(recommended), formatTime(r.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}

	for i, exDef := range def.Exercises {
		ex, err := s.resolveTemplate(ctx, tx, exDef, recommended)
		if err != nil {
			return nil, err
		}
		ex.ID = uuid.NewString()
		ex.OrderIndex = i

		_, err = tx.ExecContext(ctx,
			`INSERT INTO routine_exercises
				(id, routine_id, exercise_kind, exercise_id, name, category, sets,
				 reps_min, reps_max, duration_seconds, target_weight, order_index)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ex.ID,
			r.ID,
			string(ex.Exercise.Kind),
			ex.Exercise.ID,
			ex.Name,
			string(ex.Category),
			ex.Sets,
			ex.RepsMin,
			ex.RepsMax,
			ex.DurationSeconds,
			nullFloat(ex.TargetWeight),
			ex.OrderIndex,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add exercise %q: %w", ex.Name, err)
		}
		r.Exercises = append(r.Exercises, ex)
	}
	return r, nil
}

// resolveTemplate turns one TOML exercise entry into a template, resolving its
// name against the library. Unknown names become custom exercises unless the
// routine is a built-in one.
func (s *Storage) resolveTemplate(ctx context.Context, tx *sql.Tx, def models.RoutineExerciseTOML, recommended bool) (models.RoutineExercise, error) {
	repsMin, repsMax, err := models.ParseRepRange(def.Reps)
	if err != nil {
		return models.RoutineExercise{}, fmt.Errorf("exercise %q: %w", def.Name, err)
	}

	lib, err := findExercise(ctx, tx, def.Name)
	switch {
	case errors.Is(err, ErrExerciseNotFound) && !recommended:
		lib, err = s.insertCustomExercise(ctx, tx, strings.TrimSpace(def.Name), models.InferCategory(def.Name))
		if err != nil {
			return models.RoutineExercise{}, err
		}
		s.log.WithField("exercise", lib.Name).Info("created custom exercise for routine")
	case err != nil:
		return models.RoutineExercise{}, err
	}

	ex := models.RoutineExercise{
		Exercise:        lib.Ref,
		Name:            lib.Name,
		Category:        lib.Category,
		Sets:            def.Sets,
		RepsMin:         repsMin,
		RepsMax:         repsMax,
		DurationSeconds: def.Duration,
		TargetWeight:    def.Weight,
	}
	if err := ex.Validate(); err != nil {
		return models.RoutineExercise{}, err
	}
	return ex, nil
}

// ListRoutines returns every routine, most recently used first.
func (s *Storage) ListRoutines(ctx context.Context) ([]models.Routine, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, description, recommended, last_used, created_at
		FROM routines
		ORDER BY last_used IS NULL, last_used DESC, recommended, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routines: %w", err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range routines {
		exs, err := s.routineExercises(ctx, routines[i].ID)
		if err != nil {
			return nil, err
		}
		routines[i].Exercises = exs
	}
	return routines, nil
}

// GetRoutine looks a routine up by id or by name.
func (s *Storage) GetRoutine(ctx context.Context, ref string) (*models.Routine, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, name, description, recommended, last_used, created_at
		FROM routines WHERE id = ? OR name = ? COLLATE NOCASE`,
		ref, ref,
	)
	r, err := scanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrRoutineNotFound, ref)
	}
	if err != nil {
		return nil, err
	}

	if r.Exercises, err = s.routineExercises(ctx, r.ID); err != nil {
		return nil, err
	}
	return &r, nil
}

// TouchRoutine marks a routine as used. Recommended routines are left alone.
func (s *Storage) TouchRoutine(ctx context.Context, routineID string, at time.Time) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE routines SET last_used = ? WHERE id = ? AND recommended = 0`,
		formatTime(at), routineID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch routine: %w", err)
	}
	return nil
}

func (s *Storage) DeleteRoutine(ctx context.Context, ref string) error {
	r, err := s.GetRoutine(ctx, ref)
	if err != nil {
		return err
	}
	if r.Recommended {
		return fmt.Errorf("%w: %q", ErrRoutineReadOnly, r.Name)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_exercises WHERE routine_id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to delete routine exercises: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	return tx.Commit()
}

func (s *Storage) routineExercises(ctx context.Context, routineID string) ([]models.RoutineExercise, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, exercise_kind, exercise_id, name, category, sets,
			reps_min, reps_max, duration_seconds, target_weight, order_index
		FROM routine_exercises
		WHERE routine_id = ?
		ORDER BY order_index`,
		routineID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query routine exercises: %w", err)
	}
	defer rows.Close()

	var out []models.RoutineExercise
	for rows.Next() {
		var (
			ex                    models.RoutineExercise
			kind, refID, category string
			targetWeight          sql.NullFloat64
		)
		err := rows.Scan(&ex.ID, &kind, &refID, &ex.Name, &category, &ex.Sets,
			&ex.RepsMin, &ex.RepsMax, &ex.DurationSeconds, &targetWeight, &ex.OrderIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to scan routine exercise: %w", err)
		}
		ex.Exercise = exerciseRef(models.ExerciseKind(kind), refID, ex.Name)
		ex.Category = models.Category(category)
		ex.TargetWeight = floatPtr(targetWeight)
		out = append(out, ex)
	}
	return out, rows.Err()
}

func scanRoutine(sc scanner) (models.Routine, error) {
	var (
		r           models.Routine
		recommended int
		lastUsed    sql.NullString
		createdAt   string
	)
	if err := sc.Scan(&r.ID, &r.Name, &r.Description, &recommended, &lastUsed, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan routine: %w", err)
	}
	r.Recommended = recommended != 0
	var err error
	if r.LastUsed, err = timePtr(lastUsed); err != nil {
		return r, fmt.Errorf("routine %s: %w", r.ID, err)
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return r, fmt.Errorf("routine %s: %w", r.ID, err)
	}
	return r, nil
}
