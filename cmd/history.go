package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

var (
	filterFrom    string
	filterTo      string
	filterRoutine string
)

// historyCmd lists finished workouts, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display workout history, optionally filtered by date range and routine",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := normalizeDate(filterFrom)
		if err != nil {
			return err
		}
		to, err := normalizeDate(filterTo)
		if err != nil {
			return err
		}

		records, err := env.store.GetRecordsByDateRange(cmd.Context(), from, to)
		if err != nil {
			return fmt.Errorf("failed to retrieve records: %w", err)
		}

		// Case insensitive filtering by routine name.
		if filterRoutine != "" {
			var filtered []models.WorkoutRecord
			for _, r := range records {
				if strings.EqualFold(r.RoutineName, filterRoutine) {
					filtered = append(filtered, r)
				}
			}
			records = filtered
		}

		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No workouts found.")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			status := green("completed")
			if !r.IsCompleted() {
				status = yellow("stopped")
			}
			rows = append(rows, []string{
				r.Date,
				r.RoutineName,
				status,
				strconv.Itoa(r.DurationMinutes) + "m",
				formatVolume(r),
				strconv.Itoa(r.CompletionRate) + "%",
				shortID(r.ID),
			})
		}
		newTable(12, 22, 11, 6, 11, 6, 10).print(cmd.OutOrStdout(),
			[]string{"Date", "Routine", "Status", "Time", "Volume", "Done", "ID"}, rows)
		return nil
	},
}

// normalizeDate accepts YYYY-MM-DD or DD/MM/YY and returns YYYY-MM-DD.
func normalizeDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	d, err := timer.ParseDate(s, env.loc)
	if err != nil {
		d, err = time.ParseInLocation("02/01/06", s, env.loc)
	}
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: use YYYY-MM-DD or DD/MM/YY", s)
	}
	return d.Format(timer.DateLayout), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().StringVar(&filterFrom, "from", "", "First date to include")
	historyCmd.Flags().StringVar(&filterTo, "to", "", "Last date to include")
	historyCmd.Flags().StringVarP(&filterRoutine, "routine", "r", "", "Filter by routine name")
	rootCmd.AddCommand(historyCmd)
}
