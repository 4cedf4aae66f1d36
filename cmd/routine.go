package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/storage"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

var importRoutineCmd = &cobra.Command{
	Use:   "import-routine [file]",
	Short: "Import one or more routines from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		routines, err := env.store.ImportRoutines(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("Failed to import routine: %w", err)
		}

		for _, r := range routines {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported routine %s with %d exercises\n", cyan(r.Name), len(r.Exercises))
		}
		return nil
	},
}

var listRoutinesCmd = &cobra.Command{
	Use:   "routines",
	Short: "List routines, most recently used first",
	RunE: func(cmd *cobra.Command, args []string) error {
		routines, err := env.store.ListRoutines(cmd.Context())
		if err != nil {
			return fmt.Errorf("Failed to list routines: %w", err)
		}
		if len(routines) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No routines yet. Import one with 'liftlog import-routine'.")
			return nil
		}

		rows := make([][]string, 0, len(routines))
		for _, r := range routines {
			name := r.Name
			if r.Recommended {
				name += " *"
			}
			lastUsed := "never"
			if r.LastUsed != nil {
				lastUsed = timer.LocalDate(*r.LastUsed, env.loc)
			}
			rows = append(rows, []string{name, strconv.Itoa(len(r.Exercises)), lastUsed})
		}

		newTable(28, 11, 12).print(cmd.OutOrStdout(), []string{"Routine", "Exercises", "Last used"}, rows)
		fmt.Fprintln(cmd.OutOrStdout(), faint("   * recommended (read-only)"))
		return nil
	},
}

var showRoutineCmd = &cobra.Command{
	Use:   "show-routine [name-or-id]",
	Short: "Show a routine and its exercise prescriptions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := env.store.GetRoutine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", green(r.Name))
		if r.Description != "" {
			fmt.Fprintf(out, "%s %s\n", cyan("Description:"), r.Description)
		}
		if r.Recommended {
			fmt.Fprintln(out, yellow("Recommended routine (read-only)"))
		}
		fmt.Fprintln(out)

		rows := make([][]string, 0, len(r.Exercises))
		for i, ex := range r.Exercises {
			weight := "-"
			if ex.TargetWeight != nil {
				weight = formatWeight(*ex.TargetWeight)
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				ex.Name,
				strconv.Itoa(ex.Sets),
				templateTarget(ex),
				weight,
			})
		}
		newTable(4, 26, 6, 10, 10).print(out, []string{"#", "Exercise", "Sets", "Target", "Weight"}, rows)
		return nil
	},
}

var deleteRoutineCmd = &cobra.Command{
	Use:   "delete-routine [name-or-id]",
	Short: "Delete a routine (recommended routines cannot be deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := env.store.DeleteRoutine(cmd.Context(), args[0])
		if errors.Is(err, storage.ErrRoutineReadOnly) {
			return fmt.Errorf("Cannot delete %q: recommended routines are read-only", args[0])
		}
		if err != nil {
			return fmt.Errorf("Failed to delete routine: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Deleted routine %s\n", args[0])
		return nil
	},
}

func templateTarget(ex models.RoutineExercise) string {
	switch {
	case ex.DurationSeconds > 0:
		return fmt.Sprintf("%ds", ex.DurationSeconds)
	case ex.RepsMin > 0 && ex.RepsMin == ex.RepsMax:
		return strconv.Itoa(ex.RepsMin)
	case ex.RepsMin > 0 || ex.RepsMax > 0:
		return fmt.Sprintf("%d-%d", ex.RepsMin, ex.RepsMax)
	default:
		return "-"
	}
}

func init() {
	rootCmd.AddCommand(importRoutineCmd)
	rootCmd.AddCommand(listRoutinesCmd)
	rootCmd.AddCommand(showRoutineCmd)
	rootCmd.AddCommand(deleteRoutineCmd)
}
