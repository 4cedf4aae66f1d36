package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/timer"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Compare this week (from Sunday) with last week",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := env.stats.Week(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compare weeks: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n\n", cyan("Week of"), timer.LocalDate(w.ThisWeekStart, env.loc))
		newTable(12, 12, 12, 10).print(out,
			[]string{"", "This week", "Last week", "Change"},
			[][]string{
				{"Workouts", strconv.Itoa(w.Current.Workouts), strconv.Itoa(w.Previous.Workouts), formatChange(w.WorkoutsChange)},
				{"Volume", formatWeight(w.Current.Volume), formatWeight(w.Previous.Volume), formatChange(w.VolumeChange)},
				{"Minutes", strconv.Itoa(w.Current.DurationMinutes), strconv.Itoa(w.Previous.DurationMinutes), formatChange(w.DurationChange)},
			})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)
}
