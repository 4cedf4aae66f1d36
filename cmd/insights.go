package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/stats"
)

var insightIcons = map[stats.InsightKind]string{
	stats.InsightCelebrate: "🎉",
	stats.InsightPraise:    "💪",
	stats.InsightNudge:     "👉",
	stats.InsightWarning:   "⚠️",
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show short observations about your recent training",
	RunE: func(cmd *cobra.Command, args []string) error {
		insights, err := env.stats.Insights(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute insights: %w", err)
		}
		if len(insights) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to report yet. Log a few workouts first.")
			return nil
		}
		for _, in := range insights {
			msg := in.Message
			if in.Kind == stats.InsightWarning {
				msg = yellow(msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", insightIcons[in.Kind], msg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
