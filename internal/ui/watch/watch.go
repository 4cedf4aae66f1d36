// Package watch is the live terminal view of the active session: the total
// workout timer, the current exercise and an ephemeral rest timer.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/session"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

// reloadEvery is how many ticks pass between reads of the stored session, so
// sets completed from another terminal show up.
const reloadEvery = 5

// SessionSource returns the active session, or nil when there is none.
type SessionSource interface {
	Active(ctx context.Context) (*models.WorkoutSession, error)
}

type tickMsg time.Time

type sessionMsg struct {
	session *models.WorkoutSession
	err     error
}

type Model struct {
	ctx     context.Context
	source  SessionSource
	clock   timer.Clock
	session *models.WorkoutSession
	total   timer.Stopwatch
	rest    timer.Timers
	ticks   int
	width   int
	height  int
	ended   bool
	err     error
}

// New builds a view over s. The total timer is derived from the stored start
// time, so it picks up where it was after a restart.
func New(ctx context.Context, s *models.WorkoutSession, source SessionSource, clock timer.Clock) Model {
	if clock == nil {
		clock = timer.SystemClock{}
	}
	return Model{
		ctx:     ctx,
		source:  source,
		clock:   clock,
		session: s,
		total:   timer.StartedAt(s.StartTime),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(timer.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.source.Active(m.ctx)
		return sessionMsg{session: s, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		now := m.clock.Now()
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Rest):
			m.rest.Start(m.nextRestKind(), now)
		case key.Matches(msg, keys.Pause):
			m.rest.Pause(now)
		case key.Matches(msg, keys.Resume):
			m.rest.Resume(now)
		case key.Matches(msg, keys.Stop):
			m.rest.Stop(now)
		}
		return m, nil

	case tickMsg:
		m.ticks++
		if m.source != nil && m.ticks%reloadEvery == 0 {
			return m, tea.Batch(tickCmd(), m.reloadCmd())
		}
		return m, tickCmd()

	case sessionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.session == nil || msg.session.ID != m.session.ID {
			m.ended = true
			return m, tea.Quit
		}
		m.session = msg.session
		return m, nil
	}

	return m, nil
}

// nextRestKind follows the most recently completed set: exercise rest when
// it finished its exercise, plain rest otherwise.
func (m Model) nextRestKind() timer.Kind {
	var (
		last          time.Time
		exIdx, setIdx int
		found         bool
	)
	for i, ex := range m.session.Exercises {
		for j, s := range ex.Sets {
			if s.IsCompleted && s.CompletedAt != nil && !s.CompletedAt.Before(last) {
				last, exIdx, setIdx, found = *s.CompletedAt, i, j, true
			}
		}
	}
	if !found {
		return timer.KindRest
	}
	if kind := session.NextTimer(m.session, exIdx, setIdx); kind != timer.KindNone {
		return kind
	}
	return timer.KindRest
}

// current returns the first exercise with an open set and that set's index.
func (m Model) current() (int, int, bool) {
	for i, ex := range m.session.Exercises {
		for j, s := range ex.Sets {
			if !s.IsCompleted {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Ended reports whether the view quit because the session was finished
// elsewhere.
func (m Model) Ended() bool { return m.ended }

func (m Model) View() string {
	now := m.clock.Now()
	sum := session.Summarize(m.session.Exercises)

	lines := []string{
		titleStyle.Render(m.session.RoutineName),
		timerStyle.Render(timer.FormatElapsed(m.total.Elapsed(now))),
		statusStyle.Render(fmt.Sprintf("%d/%d sets • %.0fkg", sum.CompletedSets, sum.TotalSets, sum.Volume)),
	}

	if exIdx, setIdx, ok := m.current(); ok {
		ex := m.session.Exercises[exIdx]
		lines = append(lines, exerciseStyle.Render(fmt.Sprintf("%s • set %d of %d • %s",
			ex.Name, setIdx+1, len(ex.Sets), targetText(ex.Sets[setIdx].Target))))
	} else {
		lines = append(lines, exerciseStyle.Render("All sets done"))
	}

	if kind := m.rest.Active(); kind != timer.KindNone {
		label := kind.String()
		if m.rest.Paused() {
			label += " (paused)"
		}
		lines = append(lines, restStyle.Render(fmt.Sprintf("%s %s", label, timer.FormatElapsed(m.rest.Elapsed(now)))))
	}

	if m.err != nil {
		lines = append(lines, errorStyle.Render(m.err.Error()))
	}
	lines = append(lines, helpStyle.Render(helpText(m.rest.Active() != timer.KindNone)))

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width == 0 {
		return content
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func targetText(t models.SetTarget) string {
	switch {
	case t.IsDuration():
		return fmt.Sprintf("%ds", t.DurationSeconds)
	case t.IsFixed():
		return fmt.Sprintf("%d reps", t.Reps)
	default:
		return fmt.Sprintf("%d-%d reps", t.RepsMin, t.RepsMax)
	}
}

func helpText(resting bool) string {
	if !resting {
		return "s: start rest • q: quit"
	}
	return "p: pause • r: resume • x: stop • s: restart rest • q: quit"
}
