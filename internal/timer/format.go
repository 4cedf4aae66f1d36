package timer

import "fmt"

// FormatElapsed renders seconds as H:MM:SS when there is at least one hour and
// as M:SS otherwise. Every timer in the app uses this one convention.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
