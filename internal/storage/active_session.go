package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/misterclayt0n/liftlog/internal/models"
)

const activeSlot = "current"

// GetActiveSession returns nil, nil when no session is in progress.
func (s *Storage) GetActiveSession(ctx context.Context) (*models.WorkoutSession, error) {
	var (
		sess      models.WorkoutSession
		routineID sql.NullString
		status    string
		startTime string
		exercises string
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, routine_id, routine_name, status, start_time,
			current_exercise_index, total_duration_seconds, paused_duration_seconds, exercises
		FROM active_session WHERE slot = ?`,
		activeSlot,
	).Scan(
		&sess.ID,
		&sess.UserID,
		&routineID,
		&sess.RoutineName,
		&status,
		&startTime,
		&sess.CurrentExerciseIndex,
		&sess.TotalDurationSeconds,
		&sess.PausedDurationSeconds,
		&exercises,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active session: %w", err)
	}

	if err := json.Unmarshal([]byte(exercises), &sess.Exercises); err != nil {
		return nil, fmt.Errorf("failed to decode session exercises: %w", err)
	}
	sess.RoutineID = routineID.String
	sess.Status = models.SessionStatus(status)
	if sess.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("active session %s: %w", sess.ID, err)
	}
	return &sess, nil
}

// SaveActiveSession replaces the slot with sess as a whole.
func (s *Storage) SaveActiveSession(ctx context.Context, sess *models.WorkoutSession) error {
	exercises, err := json.Marshal(sess.Exercises)
	if err != nil {
		return fmt.Errorf("failed to encode session exercises: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO active_session
			(slot, id, user_id, routine_id, routine_name, status, start_time,
			 current_exercise_index, total_duration_seconds, paused_duration_seconds, exercises)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slot) DO UPDATE SET
				id = excluded.id,
				user_id = excluded.user_id,
				routine_id = excluded.routine_id,
				routine_name = excluded.routine_name,
				status = excluded.status,
				start_time = excluded.start_time,
				current_exercise_index = excluded.current_exercise_index,
				total_duration_seconds = excluded.total_duration_seconds,
				paused_duration_seconds = excluded.paused_duration_seconds,
				exercises = excluded.exercises`,
		activeSlot,
		sess.ID,
		sess.UserID,
		nullString(sess.RoutineID),
		sess.RoutineName,
		string(sess.Status),
		formatTime(sess.StartTime),
		sess.CurrentExerciseIndex,
		sess.TotalDurationSeconds,
		sess.PausedDurationSeconds,
		string(exercises),
	)
	if err != nil {
		return fmt.Errorf("failed to save active session: %w", err)
	}
	return nil
}
