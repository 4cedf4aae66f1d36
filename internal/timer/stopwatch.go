package timer

import "time"

// ElapsedSeconds is floor((now - start) / 1s), never negative.
func ElapsedSeconds(start, now time.Time) int {
	d := now.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Stopwatch counts up from a start instant. Elapsed time is always derived from
// the wall clock, so dropped or late ticks never skew it. Pausing freezes the
// value; resuming moves the start to now - elapsed.
type Stopwatch struct {
	start   time.Time
	running bool
	paused  bool
	frozen  int
}

// StartedAt returns a running stopwatch whose start lies in the past, e.g. a
// session start time reloaded from storage.
func StartedAt(start time.Time) Stopwatch {
	return Stopwatch{start: start, running: true}
}

func (s *Stopwatch) Start(now time.Time) {
	*s = Stopwatch{start: now, running: true}
}

func (s *Stopwatch) Pause(now time.Time) {
	if !s.running || s.paused {
		return
	}
	s.frozen = ElapsedSeconds(s.start, now)
	s.paused = true
}

func (s *Stopwatch) Resume(now time.Time) {
	if !s.running || !s.paused {
		return
	}
	s.start = now.Add(-time.Duration(s.frozen) * time.Second)
	s.paused = false
	s.frozen = 0
}

// Stop resets the stopwatch and returns the elapsed seconds at stop time.
func (s *Stopwatch) Stop(now time.Time) int {
	elapsed := s.Elapsed(now)
	*s = Stopwatch{}
	return elapsed
}

func (s *Stopwatch) Elapsed(now time.Time) int {
	switch {
	case !s.running:
		return 0
	case s.paused:
		return s.frozen
	default:
		return ElapsedSeconds(s.start, now)
	}
}

func (s *Stopwatch) Running() bool { return s.running && !s.paused }

func (s *Stopwatch) Paused() bool { return s.running && s.paused }
