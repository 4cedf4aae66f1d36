package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/storage"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

var showRecordCmd = &cobra.Command{
	Use:   "show-record [record-id]",
	Short: "Show every exercise and set of a finished workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := findRecord(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", green(rec.RoutineName), faint(rec.ID))
		fmt.Fprintf(out, "%s %s at %s\n", cyan("Date:"), rec.Date, rec.StartTime.In(env.loc).Format("15:04"))
		fmt.Fprintf(out, "%s %s\n", cyan("Status:"), rec.Status)
		fmt.Fprintf(out, "%s %d min\n", red("Duration:"), rec.DurationMinutes)
		fmt.Fprintf(out, "%s %s, %d%% of sets done\n", yellow("Volume:"), formatVolume(*rec), rec.CompletionRate)
		if rec.BodyWeight != nil {
			fmt.Fprintf(out, "%s %s\n", cyan("Body weight:"), formatWeight(*rec.BodyWeight))
		}
		if rec.Memo != "" {
			fmt.Fprintf(out, "%s %s\n", green("Memo:"), rec.Memo)
		}
		fmt.Fprintln(out)

		t := newTable(6, 12, 20, 10)
		for i, ex := range rec.Exercises {
			fmt.Fprintf(out, "%d - %s %s\n", i+1, cyan(ex.Name), faint("("+categoryName(ex.Category)+")"))
			rows := make([][]string, 0, len(ex.Sets))
			for _, set := range ex.Sets {
				rest := "-"
				if set.RestDurationSeconds != nil {
					rest = timer.FormatElapsed(*set.RestDurationSeconds)
				}
				rows = append(rows, []string{fmt.Sprint(set.SetNumber), formatTarget(set.Target), formatActual(set), rest})
			}
			t.print(out, []string{"Set", "Target", "Result", "Rest"}, rows)
			fmt.Fprintln(out)
		}
		return nil
	},
}

var memoCmd = &cobra.Command{
	Use:   "memo [record-id] [text...]",
	Short: "Set the memo of a finished workout (empty text clears it)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rec, err := findRecord(ctx, args[0])
		if err != nil {
			return err
		}

		memo := strings.Join(args[1:], " ")
		if _, err := env.store.UpdateRecord(ctx, rec.ID, models.RecordUpdate{Memo: &memo}); err != nil {
			return fmt.Errorf("Failed to update memo: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Memo updated for %s on %s\n", rec.RoutineName, rec.Date)
		return nil
	},
}

var deleteRecordCmd = &cobra.Command{
	Use:   "delete-record [record-id]",
	Short: "Delete a finished workout from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rec, err := findRecord(ctx, args[0])
		if err != nil {
			return err
		}
		if err := env.store.DeleteRecord(ctx, rec.ID); err != nil {
			return fmt.Errorf("Failed to delete record: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Deleted %s on %s\n", rec.RoutineName, rec.Date)
		return nil
	},
}

// findRecord resolves a full record id or an unambiguous prefix of one, as
// shown by history.
func findRecord(ctx context.Context, ref string) (*models.WorkoutRecord, error) {
	rec, err := env.store.GetRecordByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}

	all, err := env.store.GetAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	var matches []models.WorkoutRecord
	for _, r := range all {
		if strings.HasPrefix(r.ID, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", storage.ErrRecordNotFound, ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("record id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func init() {
	rootCmd.AddCommand(showRecordCmd)
	rootCmd.AddCommand(memoCmd)
	rootCmd.AddCommand(deleteRecordCmd)
}
