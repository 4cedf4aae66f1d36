package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/models"
)

var bodyWeight float64

var completeWorkoutCmd = &cobra.Command{
	Use:   "complete-workout",
	Short: "Finish the current session and save it to history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := activeSession(ctx)
		if err != nil {
			return err
		}

		var bw *float64
		if cmd.Flags().Changed("bodyweight") {
			bw = &bodyWeight
		}

		rec, err := env.sessions.CompleteWorkout(ctx, s.ID, bw)
		if rec == nil {
			return fmt.Errorf("Failed to save session: %w", err)
		}
		printFinished(cmd.OutOrStdout(), rec)
		if err != nil {
			return fmt.Errorf("Session saved but profile was not updated: %w", err)
		}
		return nil
	},
}

var stopWorkoutCmd = &cobra.Command{
	Use:   "stop-workout",
	Short: "End the current session early, keeping what was done as a stopped record",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := activeSession(ctx)
		if err != nil {
			return err
		}

		rec, err := env.sessions.StopWorkout(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("Failed to stop session: %w", err)
		}
		printFinished(cmd.OutOrStdout(), rec)
		return nil
	},
}

func printFinished(out io.Writer, rec *models.WorkoutRecord) {
	verb := "completed"
	if !rec.IsCompleted() {
		verb = "stopped"
	}
	fmt.Fprintf(out, "✅ Session %s and saved as %s\n", verb, faint(rec.ID))
	fmt.Fprintf(out, "   %s %d min\n", cyan("Duration:"), rec.DurationMinutes)
	fmt.Fprintf(out, "   %s %s\n", cyan("Volume:"), formatVolume(*rec))
	fmt.Fprintf(out, "   %s %d%%\n", cyan("Completion:"), rec.CompletionRate)
	if rec.BodyWeight != nil {
		fmt.Fprintf(out, "   %s %s\n", cyan("Body weight:"), formatWeight(*rec.BodyWeight))
	}
}

func init() {
	completeWorkoutCmd.Flags().Float64VarP(&bodyWeight, "bodyweight", "b", 0, "Body weight in kg, also stored on your profile")
	rootCmd.AddCommand(completeWorkoutCmd)
	rootCmd.AddCommand(stopWorkoutCmd)
}
