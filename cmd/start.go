package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var routineName string

var startCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Starts a new workout session from a routine",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		routine, err := env.store.GetRoutine(ctx, routineName)
		if err != nil {
			return fmt.Errorf("Failed to load routine: %w", err)
		}

		previous, err := env.sessions.Active(ctx)
		if err != nil {
			return err
		}

		s, err := env.sessions.Start(ctx, env.cfg.User.ID, *routine)
		if err != nil {
			return fmt.Errorf("Failed to start session: %w", err)
		}

		if previous != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s previous session %q was stopped and saved to history\n",
				yellow("Note:"), previous.RoutineName)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Started %s (%d exercises)\n", green(s.RoutineName), len(s.Exercises))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&routineName, "routine", "r", "", "Routine name/ID")
	startCmd.MarkFlagRequired("routine")
}
