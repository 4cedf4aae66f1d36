package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := env.store.GetProfile(cmd.Context(), env.cfg.User.ID)
		if err != nil {
			return fmt.Errorf("Failed to load profile: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", cyan("User:"), p.UserID)
		if p.BodyWeight == nil {
			fmt.Fprintf(out, "%s not set\n", cyan("Body weight:"))
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", cyan("Body weight:"), formatWeight(*p.BodyWeight))
		if p.UpdatedAt != nil {
			fmt.Fprintf(out, "%s %s\n", cyan("Updated:"), p.UpdatedAt.In(env.loc).Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var setWeightCmd = &cobra.Command{
	Use:   "set-weight [kg]",
	Short: "Set your current body weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := strconv.ParseFloat(args[0], 64)
		if err != nil || kg <= 0 {
			return fmt.Errorf("Invalid weight %q. Must be a positive number", args[0])
		}
		if err := env.store.SetBodyWeight(cmd.Context(), env.cfg.User.ID, kg); err != nil {
			return fmt.Errorf("Failed to set body weight: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Body weight set to %s\n", formatWeight(kg))
		return nil
	},
}

func init() {
	profileCmd.AddCommand(setWeightCmd)
	rootCmd.AddCommand(profileCmd)
}
