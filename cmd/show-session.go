package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/session"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

var showSessionCmd = &cobra.Command{
	Use:   "show-session",
	Short: "Show current session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := activeSession(ctx)
		if err != nil {
			return err
		}

		records, err := env.store.GetAllRecords(ctx)
		if err != nil {
			return fmt.Errorf("Failed to load history: %w", err)
		}
		previous := previousPerformance(records)

		now := env.clock.Now()
		sum := session.Summarize(s.Exercises)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", green(s.RoutineName))
		fmt.Fprintf(out, "%s %s\n", cyan("Started:"), s.StartTime.In(env.loc).Format("Mon 02 Jan 15:04"))
		fmt.Fprintf(out, "%s %s\n", red("Duration:"), timer.FormatElapsed(session.Elapsed(s, now)))
		fmt.Fprintf(out, "%s %d/%d sets, %s\n\n", yellow("Progress:"),
			sum.CompletedSets, sum.TotalSets, formatWeight(sum.Volume))

		t := newTable(6, 12, 20, 20)
		for i, ex := range s.Exercises {
			printSessionExercise(out, t, i, ex, previous[ex.Exercise.Key()])
		}
		return nil
	},
}

func printSessionExercise(out io.Writer, t table, idx int, ex models.SessionExercise, prev *models.SessionExercise) {
	status := ""
	if ex.IsCompleted {
		status = green("✔")
	}
	fmt.Fprintf(out, "%d - %s %s %s\n", idx+1, cyan(ex.Name), faint("("+categoryName(ex.Category)+")"), status)
	if ex.TargetWeight != nil {
		fmt.Fprintf(out, "   %s %s\n", cyan("Target weight:"), formatWeight(*ex.TargetWeight))
	}
	if ex.ExerciseDurationSeconds != nil {
		fmt.Fprintf(out, "   %s %s\n", cyan("Time on exercise:"), timer.FormatElapsed(*ex.ExerciseDurationSeconds))
	}

	rows := make([][]string, 0, len(ex.Sets))
	for setIdx, set := range ex.Sets {
		prevSet := "First time"
		if prev != nil {
			prevSet = "N/A"
			if setIdx < len(prev.Sets) {
				prevSet = formatActual(prev.Sets[setIdx])
			}
		}

		current := formatActual(set)
		if set.IsCompleted {
			current = green(current)
		}
		rows = append(rows, []string{strconv.Itoa(setIdx + 1), formatTarget(set.Target), current, prevSet})
	}
	t.print(out, []string{"Set", "Target", "Current", "Prev Session"}, rows)
	fmt.Fprintln(out)
}

// previousPerformance maps an exercise reference key to its most recent
// appearance in history. records must be ordered newest first.
func previousPerformance(records []models.WorkoutRecord) map[string]*models.SessionExercise {
	prev := make(map[string]*models.SessionExercise)
	for i := range records {
		for j := range records[i].Exercises {
			ex := &records[i].Exercises[j]
			if _, seen := prev[ex.Exercise.Key()]; !seen {
				prev[ex.Exercise.Key()] = ex
			}
		}
	}
	return prev
}

func init() {
	rootCmd.AddCommand(showSessionCmd)
}
