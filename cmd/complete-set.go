package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/session"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

var (
	setReps     int
	setDuration int
	setWeight   float64
	setRest     int
	setElapsed  int
)

var completeSetCmd = &cobra.Command{
	Use:   "complete-set [exercise-index] [set-index]",
	Short: "Mark a set of the current session as done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exIdx, err := parsePosition(args[0], "exercise index")
		if err != nil {
			return err
		}
		setIdx, err := parsePosition(args[1], "set index")
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := activeSession(ctx)
		if err != nil {
			return err
		}
		if exIdx >= len(s.Exercises) {
			return fmt.Errorf("Exercise index out of range")
		}

		res := session.SetResult{
			ActualReps:            setReps,
			ActualDurationSeconds: setDuration,
			Weight:                setWeight,
		}
		if tw := s.Exercises[exIdx].TargetWeight; tw != nil && !cmd.Flags().Changed("weight") {
			res.Weight = *tw
		}
		if cmd.Flags().Changed("rest") {
			res.RestDurationSeconds = &setRest
		}
		if cmd.Flags().Changed("elapsed") {
			res.ElapsedTimeSeconds = &setElapsed
		}

		s, err = env.sessions.CompleteSet(ctx, s.ID, exIdx, setIdx, res)
		if errors.Is(err, session.ErrEmptySetResult) {
			return fmt.Errorf("Nothing to record: pass --reps or --duration")
		}
		if errors.Is(err, session.ErrNegativeSetResult) {
			return fmt.Errorf("Reps, duration and weight must not be negative")
		}
		if err != nil {
			return fmt.Errorf("Failed to complete set: %w", err)
		}

		ex := s.Exercises[exIdx]
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ %s set %d: %s\n", cyan(ex.Name), setIdx+1, formatActual(ex.Sets[setIdx]))

		switch session.NextTimer(s, exIdx, setIdx) {
		case timer.KindRest:
			fmt.Fprintf(out, "%s rest before set %d\n", yellow("Next:"), setIdx+2)
		case timer.KindExerciseRest:
			fmt.Fprintf(out, "%s %s done, rest before the next exercise\n", yellow("Next:"), ex.Name)
		default:
			if sum := session.Summarize(s.Exercises); sum.CompletedSets == sum.TotalSets {
				fmt.Fprintf(out, "%s all sets done, run 'liftlog complete-workout'\n", green("Next:"))
			}
		}
		return nil
	},
}

var uncompleteSetCmd = &cobra.Command{
	Use:   "uncomplete-set [exercise-index] [set-index]",
	Short: "Reopen a completed set of the current session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exIdx, err := parsePosition(args[0], "exercise index")
		if err != nil {
			return err
		}
		setIdx, err := parsePosition(args[1], "set index")
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := activeSession(ctx)
		if err != nil {
			return err
		}
		s, err = env.sessions.UncompleteSet(ctx, s.ID, exIdx, setIdx)
		if err != nil {
			return fmt.Errorf("Failed to reopen set: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Reopened %s set %d\n", cyan(s.Exercises[exIdx].Name), setIdx+1)
		return nil
	},
}

var exerciseDurationCmd = &cobra.Command{
	Use:   "exercise-duration [exercise-index] [seconds]",
	Short: "Record the time spent on an exercise of the current session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exIdx, err := parsePosition(args[0], "exercise index")
		if err != nil {
			return err
		}
		seconds, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("Invalid seconds %q", args[1])
		}

		ctx := cmd.Context()
		s, err := activeSession(ctx)
		if err != nil {
			return err
		}
		s, err = env.sessions.UpdateExerciseDuration(ctx, s.ID, exIdx, seconds)
		if err != nil {
			return fmt.Errorf("Failed to update exercise duration: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %s\n", cyan(s.Exercises[exIdx].Name), timer.FormatElapsed(seconds))
		return nil
	},
}

func init() {
	completeSetCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "Number of reps performed")
	completeSetCmd.Flags().IntVarP(&setDuration, "duration", "d", 0, "Seconds held, for timed sets")
	completeSetCmd.Flags().Float64VarP(&setWeight, "weight", "w", 0, "Weight used in kg (defaults to the routine's target weight)")
	completeSetCmd.Flags().IntVar(&setRest, "rest", 0, "Seconds rested before the set")
	completeSetCmd.Flags().IntVar(&setElapsed, "elapsed", 0, "Seconds spent on the set")
	completeSetCmd.MarkFlagsOneRequired("reps", "duration")

	rootCmd.AddCommand(completeSetCmd)
	rootCmd.AddCommand(uncompleteSetCmd)
	rootCmd.AddCommand(exerciseDurationCmd)
}
