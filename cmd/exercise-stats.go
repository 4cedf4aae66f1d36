package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/storage"
)

var (
	statsLimit    int
	statsExercise string
)

var exerciseStatsCmd = &cobra.Command{
	Use:   "exercise-stats",
	Short: "Show per-exercise totals, best weight and estimated 1RM",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		all, err := env.stats.ExerciseStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute exercise stats: %w", err)
		}

		// An exact library name selects that exercise only; anything else
		// matches by substring.
		var wantKey string
		if statsExercise != "" {
			ex, err := env.store.ResolveExercise(ctx, statsExercise)
			switch {
			case err == nil:
				wantKey = ex.Ref.Key()
			case !errors.Is(err, storage.ErrExerciseNotFound):
				return err
			}
		}

		rows := make([][]string, 0, len(all))
		for _, s := range all {
			switch {
			case wantKey != "":
				if s.Key != wantKey {
					continue
				}
			case statsExercise != "":
				if !strings.Contains(strings.ToLower(s.Name), strings.ToLower(statsExercise)) {
					continue
				}
			}
			if statsLimit > 0 && len(rows) == statsLimit {
				break
			}
			rows = append(rows, []string{
				s.Name,
				strconv.Itoa(s.Workouts),
				strconv.Itoa(s.TotalSets),
				strconv.Itoa(s.TotalReps),
				formatWeight(s.TotalVolume),
				formatWeight(s.MaxWeight),
				fmt.Sprintf("%.1fkg", s.BestOneRM),
				s.LastDate,
			})
		}

		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No completed sets yet.")
			return nil
		}
		newTable(24, 6, 6, 6, 11, 9, 9, 12).print(cmd.OutOrStdout(),
			[]string{"Exercise", "Days", "Sets", "Reps", "Volume", "Max", "Est 1RM", "Last"}, rows)
		return nil
	},
}

func init() {
	exerciseStatsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 0, "Show at most this many exercises")
	exerciseStatsCmd.Flags().StringVarP(&statsExercise, "exercise", "e", "", "Filter by exercise name")
	rootCmd.AddCommand(exerciseStatsCmd)
}
