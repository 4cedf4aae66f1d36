package timer

import "time"

type Kind int

const (
	KindNone Kind = iota
	KindSet
	KindRest
	KindExerciseRest
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindRest:
		return "rest"
	case KindExerciseRest:
		return "exercise rest"
	default:
		return "none"
	}
}

// Timers holds the ephemeral sub-timers of a live session: an active-set timer,
// a rest timer and an exercise-transition rest timer. At most one runs at a
// time; starting one stops whichever was running. Nothing here is persisted.
type Timers struct {
	kind          Kind
	watch         Stopwatch
	exerciseIndex int
	setIndex      int
}

// StartSet starts the active-set timer for the given set.
func (t *Timers) StartSet(exerciseIndex, setIndex int, now time.Time) {
	t.start(KindSet, now)
	t.exerciseIndex = exerciseIndex
	t.setIndex = setIndex
}

func (t *Timers) StartRest(now time.Time) { t.start(KindRest, now) }

func (t *Timers) StartExerciseRest(now time.Time) { t.start(KindExerciseRest, now) }

// Start starts a timer of the given kind. KindSet has no set position; use
// StartSet for that.
func (t *Timers) Start(kind Kind, now time.Time) {
	if kind == KindNone {
		t.Stop(now)
		return
	}
	t.start(kind, now)
}

func (t *Timers) start(kind Kind, now time.Time) {
	t.Stop(now)
	t.kind = kind
	t.watch.Start(now)
}

// Stop stops the running timer and returns its kind and elapsed seconds.
func (t *Timers) Stop(now time.Time) (Kind, int) {
	kind := t.kind
	elapsed := t.watch.Stop(now)
	*t = Timers{}
	return kind, elapsed
}

// Take stops the running timer if it is of the given kind and returns its
// elapsed seconds. It returns nil and leaves state alone otherwise.
func (t *Timers) Take(kind Kind, now time.Time) *int {
	if t.kind != kind || kind == KindNone {
		return nil
	}
	_, elapsed := t.Stop(now)
	return &elapsed
}

func (t *Timers) Pause(now time.Time) { t.watch.Pause(now) }

func (t *Timers) Resume(now time.Time) { t.watch.Resume(now) }

func (t *Timers) Active() Kind { return t.kind }

func (t *Timers) Paused() bool { return t.watch.Paused() }

func (t *Timers) Elapsed(now time.Time) int { return t.watch.Elapsed(now) }

// SetPosition returns the exercise and set index of the active-set timer.
func (t *Timers) SetPosition() (exerciseIndex, setIndex int, ok bool) {
	if t.kind != KindSet {
		return 0, 0, false
	}
	return t.exerciseIndex, t.setIndex, true
}
