package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/session"
	"github.com/misterclayt0n/liftlog/internal/timer"
	"github.com/misterclayt0n/liftlog/internal/ui/watch"
)

var watchPlain bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of the current session with a rest timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := activeSession(ctx)
		if err != nil {
			return err
		}

		if watchPlain {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			return watchPlainText(ctx, cmd, s.StartTime)
		}

		model := watch.New(ctx, s, env.sessions, env.clock)
		final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if m, ok := final.(watch.Model); ok && m.Ended() {
			fmt.Fprintln(cmd.OutOrStdout(), "Session finished.")
		}
		return nil
	},
}

// watchPlainText prints the elapsed time once per tick, for terminals or pipes
// where the full screen view is not wanted.
func watchPlainText(ctx context.Context, cmd *cobra.Command, start time.Time) error {
	out := cmd.OutOrStdout()
	err := timer.Tick(ctx, timer.TickInterval, func(now time.Time) {
		fmt.Fprintf(out, "\r%s %s", cyan("Elapsed:"), timer.FormatElapsed(timer.ElapsedSeconds(start, now)))
	})
	fmt.Fprintln(out)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

var _ watch.SessionSource = (*session.Manager)(nil)

func init() {
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "Print the elapsed time line by line instead of the full screen view")
	rootCmd.AddCommand(watchCmd)
}
