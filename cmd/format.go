package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/session"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// table prints rows inside a box drawn with the given column widths. Cells are
// padded by rune count so coloured or accented text does not break alignment
// as long as colour is applied to the whole cell.
type table struct {
	indent string
	widths []int
}

func newTable(widths ...int) table {
	return table{indent: "   ", widths: widths}
}

func (t table) border(left, mid, right string) string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w)
	}
	return t.indent + left + strings.Join(parts, mid) + right
}

func (t table) row(cells ...string) string {
	var b strings.Builder
	b.WriteString(t.indent + "│")
	for i, w := range t.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if pad := w - utf8.RuneCountInString(stripANSI(cell)); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString("│")
	}
	return b.String()
}

func (t table) print(w io.Writer, header []string, rows [][]string) {
	fmt.Fprintln(w, t.border("┌", "┬", "┐"))
	fmt.Fprintln(w, t.row(header...))
	fmt.Fprintln(w, t.border("├", "┼", "┤"))
	for _, r := range rows {
		fmt.Fprintln(w, t.row(r...))
	}
	fmt.Fprintln(w, t.border("└", "┴", "┘"))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// centerText centers the given string in a field of the specified width.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s
}

// parsePosition turns a 1-based command line argument into an index.
func parsePosition(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("Invalid %s %q. Must be a positive integer", what, arg)
	}
	return n - 1, nil
}

func activeSession(ctx context.Context) (*models.WorkoutSession, error) {
	s, err := env.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, session.ErrNoActiveSession
	}
	return s, nil
}

func formatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + "kg"
}

func formatVolume(r models.WorkoutRecord) string {
	if r.TotalVolume == nil {
		return "-"
	}
	return formatWeight(*r.TotalVolume)
}

// formatTarget renders what a set prescribes: "10", "8-12" or "30s".
func formatTarget(t models.SetTarget) string {
	switch {
	case t.IsDuration():
		return fmt.Sprintf("%ds", t.DurationSeconds)
	case t.IsFixed():
		return strconv.Itoa(t.Reps)
	default:
		return fmt.Sprintf("%d-%d", t.RepsMin, t.RepsMax)
	}
}

// formatActual renders a set result, or "-" while the set is open.
func formatActual(s models.SetRecord) string {
	if !s.IsCompleted {
		return "-"
	}
	var out string
	if s.Target.IsDuration() {
		out = fmt.Sprintf("%ds", s.ActualDurationSeconds)
	} else {
		out = fmt.Sprintf("%d reps", s.ActualReps)
	}
	if s.Weight > 0 {
		out += " @ " + formatWeight(s.Weight)
	}
	return out
}

func formatChange(pct int) string {
	switch {
	case pct > 0:
		return green(fmt.Sprintf("+%d%%", pct))
	case pct < 0:
		return red(fmt.Sprintf("%d%%", pct))
	default:
		return "0%"
	}
}

func categoryName(c models.Category) string {
	if c == "" {
		return "-"
	}
	return strings.ReplaceAll(string(c), "_", " ")
}
