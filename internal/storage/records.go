package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

// CreateRecord writes a finished session with its exercises and sets in one
// transaction, so a partial record is never visible.
func (s *Storage) CreateRecord(ctx context.Context, userID string, rec models.NewRecord) (*models.WorkoutRecord, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	out, err := s.insertRecord(ctx, tx, userID, rec)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit record: %w", err)
	}

	s.log.WithField("record_id", out.ID).Debug("record created")
	return out, nil
}

// FinishSession writes the record of a finished session and clears the
// active-session slot in the same transaction. Either both happen or neither.
func (s *Storage) FinishSession(ctx context.Context, userID string, rec models.NewRecord) (*models.WorkoutRecord, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	out, err := s.insertRecord(ctx, tx, userID, rec)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM active_session WHERE slot = ?`, activeSlot); err != nil {
		return nil, fmt.Errorf("failed to clear active session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit record: %w", err)
	}

	s.log.WithField("record_id", out.ID).Debug("session finished")
	return out, nil
}

func (s *Storage) insertRecord(ctx context.Context, tx *sql.Tx, userID string, rec models.NewRecord) (*models.WorkoutRecord, error) {
	out := &models.WorkoutRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            rec.Date,
		RoutineID:       rec.RoutineID,
		RoutineName:     rec.RoutineName,
		Status:          rec.Status,
		Exercises:       rec.Exercises,
		DurationMinutes: rec.DurationMinutes,
		TotalVolume:     rec.TotalVolume,
		CompletionRate:  rec.CompletionRate,
		BodyWeight:      rec.BodyWeight,
		Memo:            rec.Memo,
		StartTime:       rec.StartTime,
		CreatedAt:       s.now(),
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO workout_records
			(id, user_id, date, routine_id, routine_name, status, duration_minutes,
			 total_volume, completion_rate, body_weight, memo, start_time, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		out.ID,
		out.UserID,
		out.Date,
		nullString(out.RoutineID),
		out.RoutineName,
		string(out.Status),
		out.DurationMinutes,
		nullFloat(out.TotalVolume),
		out.CompletionRate,
		nullFloat(out.BodyWeight),
		out.Memo,
		formatTime(out.StartTime),
		formatTime(out.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}

	for i, ex := range rec.Exercises {
		if err := insertRecordExercise(ctx, tx, out.ID, i, ex); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func insertRecordExercise(ctx context.Context, tx *sql.Tx, recordID string, position int, ex models.SessionExercise) error {
	exID := uuid.NewString()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO record_exercises
			(id, record_id, position, exercise_kind, exercise_id, name, category,
			 target_sets, target_weight, is_completed, exercise_duration_seconds)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exID,
		recordID,
		position,
		string(ex.Exercise.Kind),
		ex.Exercise.ID,
		ex.Name,
		string(ex.Category),
		ex.TargetSets,
		nullFloat(ex.TargetWeight),
		boolInt(ex.IsCompleted),
		nullInt(ex.ExerciseDurationSeconds),
	)
	if err != nil {
		return fmt.Errorf("failed to insert exercise %q: %w", ex.Name, err)
	}

	for _, set := range ex.Sets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO record_sets
				(id, record_exercise_id, set_number, target_kind, target_reps_min, target_reps_max,
				 target_reps, target_duration_seconds, actual_reps, actual_duration_seconds, weight,
				 is_completed, completed_at, rest_duration_seconds, elapsed_time_seconds)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			exID,
			set.SetNumber,
			string(set.Target.Kind),
			set.Target.RepsMin,
			set.Target.RepsMax,
			set.Target.Reps,
			set.Target.DurationSeconds,
			set.ActualReps,
			set.ActualDurationSeconds,
			set.Weight,
			boolInt(set.IsCompleted),
			nullTime(set.CompletedAt),
			nullInt(set.RestDurationSeconds),
			nullInt(set.ElapsedTimeSeconds),
		)
		if err != nil {
			return fmt.Errorf("failed to insert set %d of %q: %w", set.SetNumber, ex.Name, err)
		}
	}
	return nil
}

// GetAllRecords returns every record, most recent date first.
func (s *Storage) GetAllRecords(ctx context.Context) ([]models.WorkoutRecord, error) {
	return s.loadRecords(ctx, "", nil)
}

// GetRecordsByDateRange returns records whose date lies in [from, to]. Either
// bound may be empty.
func (s *Storage) GetRecordsByDateRange(ctx context.Context, from, to string) ([]models.WorkoutRecord, error) {
	var conds []string
	var args []any
	for _, b := range []struct {
		op, date string
	}{{">=", from}, {"<=", to}} {
		if b.date == "" {
			continue
		}
		if _, err := timer.ParseDate(b.date, nil); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", b.date, err)
		}
		conds = append(conds, "r.date "+b.op+" ?")
		args = append(args, b.date)
	}
	return s.loadRecords(ctx, strings.Join(conds, " AND "), args)
}

// GetRecordByID returns nil, nil when no record has the id.
func (s *Storage) GetRecordByID(ctx context.Context, id string) (*models.WorkoutRecord, error) {
	records, err := s.loadRecords(ctx, "r.id = ?", []any{id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// UpdateRecord applies the mutable fields of upd. Only the memo may change.
func (s *Storage) UpdateRecord(ctx context.Context, id string, upd models.RecordUpdate) (*models.WorkoutRecord, error) {
	if upd.Memo != nil {
		res, err := s.DB.ExecContext(ctx, `UPDATE workout_records SET memo = ? WHERE id = ?`, *upd.Memo, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update record: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
	}

	rec, err := s.GetRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return rec, nil
}

// DeleteRecord removes a record with its exercises and sets. Children are
// deleted explicitly as well, since remote connections may run without
// foreign key enforcement.
func (s *Storage) DeleteRecord(ctx context.Context, id string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM record_sets WHERE record_exercise_id IN
			(SELECT id FROM record_exercises WHERE record_id = ?)`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM record_exercises WHERE record_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete exercises: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM workout_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return tx.Commit()
}

// loadRecords reads records matching where (over alias r) with their children.
func (s *Storage) loadRecords(ctx context.Context, where string, args []any) ([]models.WorkoutRecord, error) {
	if where == "" {
		where = "1 = 1"
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.date, r.routine_id, r.routine_name, r.status, r.duration_minutes,
			r.total_volume, r.completion_rate, r.body_weight, r.memo, r.start_time, r.created_at
		FROM workout_records r
		WHERE `+where+`
		ORDER BY r.date DESC, r.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.WorkoutRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			r                    models.WorkoutRecord
			routineID            sql.NullString
			status               string
			volume, bodyWeight   sql.NullFloat64
			startTime, createdAt string
		)
		err := rows.Scan(
			&r.ID,
			&r.UserID,
			&r.Date,
			&routineID,
			&r.RoutineName,
			&status,
			&r.DurationMinutes,
			&volume,
			&r.CompletionRate,
			&bodyWeight,
			&r.Memo,
			&startTime,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.RoutineID = routineID.String
		r.Status = models.RecordStatus(status)
		r.TotalVolume = floatPtr(volume)
		r.BodyWeight = floatPtr(bodyWeight)
		if r.StartTime, err = parseTime(startTime); err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		r.Exercises = []models.SessionExercise{}

		index[r.ID] = len(records)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	if err := s.loadRecordChildren(ctx, where, args, records, index); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Storage) loadRecordChildren(ctx context.Context, where string, args []any, records []models.WorkoutRecord, index map[string]int) error {
	exRows, err := s.DB.QueryContext(ctx,
		`SELECT e.id, e.record_id, e.exercise_kind, e.exercise_id, e.name, e.category,
			e.target_sets, e.target_weight, e.is_completed, e.exercise_duration_seconds
		FROM record_exercises e
		JOIN workout_records r ON r.id = e.record_id
		WHERE `+where+`
		ORDER BY e.record_id, e.position`, args...)
	if err != nil {
		return fmt.Errorf("failed to query record exercises: %w", err)
	}
	defer exRows.Close()

	type exPos struct{ record, exercise int }
	exercises := make(map[string]exPos)
	for exRows.Next() {
		var (
			exID, recordID, kind, refID, category string
			ex                                    models.SessionExercise
			targetWeight                          sql.NullFloat64
			completed                             int
			duration                              sql.NullInt64
		)
		err := exRows.Scan(&exID, &recordID, &kind, &refID, &ex.Name, &category,
			&ex.TargetSets, &targetWeight, &completed, &duration)
		if err != nil {
			return fmt.Errorf("failed to scan record exercise: %w", err)
		}
		ex.Exercise = exerciseRef(models.ExerciseKind(kind), refID, ex.Name)
		ex.Category = models.Category(category)
		ex.TargetWeight = floatPtr(targetWeight)
		ex.IsCompleted = completed != 0
		ex.ExerciseDurationSeconds = intPtr(duration)
		ex.Sets = []models.SetRecord{}

		ri := index[recordID]
		exercises[exID] = exPos{ri, len(records[ri].Exercises)}
		records[ri].Exercises = append(records[ri].Exercises, ex)
	}
	if err := exRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate record exercises: %w", err)
	}

	setRows, err := s.DB.QueryContext(ctx,
		`SELECT st.record_exercise_id, st.set_number, st.target_kind, st.target_reps_min,
			st.target_reps_max, st.target_reps, st.target_duration_seconds, st.actual_reps,
			st.actual_duration_seconds, st.weight, st.is_completed, st.completed_at,
			st.rest_duration_seconds, st.elapsed_time_seconds
		FROM record_sets st
		JOIN record_exercises e ON e.id = st.record_exercise_id
		JOIN workout_records r ON r.id = e.record_id
		WHERE `+where+`
		ORDER BY st.record_exercise_id, st.set_number`, args...)
	if err != nil {
		return fmt.Errorf("failed to query record sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			exID, targetKind string
			set              models.SetRecord
			completed        int
			completedAt      sql.NullString
			rest, elapsed    sql.NullInt64
		)
		err := setRows.Scan(&exID, &set.SetNumber, &targetKind, &set.Target.RepsMin,
			&set.Target.RepsMax, &set.Target.Reps, &set.Target.DurationSeconds, &set.ActualReps,
			&set.ActualDurationSeconds, &set.Weight, &completed, &completedAt, &rest, &elapsed)
		if err != nil {
			return fmt.Errorf("failed to scan record set: %w", err)
		}
		set.Target.Kind = models.TargetKind(targetKind)
		set.IsCompleted = completed != 0
		if set.CompletedAt, err = timePtr(completedAt); err != nil {
			return fmt.Errorf("set %d: %w", set.SetNumber, err)
		}
		set.RestDurationSeconds = intPtr(rest)
		set.ElapsedTimeSeconds = intPtr(elapsed)

		pos, ok := exercises[exID]
		if !ok {
			continue
		}
		ex := &records[pos.record].Exercises[pos.exercise]
		ex.Sets = append(ex.Sets, set)
	}
	return setRows.Err()
}

func exerciseRef(kind models.ExerciseKind, id, name string) models.ExerciseRef {
	if kind == models.ExerciseCustom {
		return models.CustomRef(id, name)
	}
	return models.BuiltinRef(id)
}
