package timer

import (
	"context"
	"time"
)

// TickInterval is the refresh cadence of every live timer display.
const TickInterval = time.Second

// Tick calls fn on every interval until ctx is done. Ticks are display
// refreshes only: callers derive elapsed time from stored start instants, so a
// delayed or dropped tick never changes a result.
func Tick(ctx context.Context, interval time.Duration, fn func(now time.Time)) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			fn(now)
		}
	}
}
