package session

import "errors"

var (
	ErrNoActiveSession   = errors.New("no active session")
	ErrSessionMismatch   = errors.New("session does not match the active session")
	ErrEmptySetResult    = errors.New("set needs positive reps or a positive duration")
	ErrNegativeSetResult = errors.New("set reps, duration and weight must not be negative")
	ErrIndexOutOfRange   = errors.New("exercise or set index out of range")
	ErrInvalidDuration   = errors.New("duration must not be negative")
	ErrMissingUser       = errors.New("session needs a user")
)
