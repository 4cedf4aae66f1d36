package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/timer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals: workouts, volume lifted, time trained, day streak, and sets per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		o, err := env.stats.Overview(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute overview: %w", err)
		}
		shares, err := env.stats.Categories(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute categories: %w", err)
		}

		out := cmd.OutOrStdout()
		printBoxedHeader(out, "STATUS")

		lastWorkout := "never"
		if o.LastWorkout != "" {
			lastWorkout = o.LastWorkout
		}
		printMetric(out, "Total volume lifted", formatWeight(o.TotalVolume))
		printMetric(out, "Completed workouts", o.Workouts)
		printMetric(out, "Stopped early", o.Stopped)
		printMetric(out, "Total time trained", timer.FormatElapsed(o.TotalMinutes*60))
		printMetric(out, "Day streak", fmt.Sprintf("%d days", o.Streak))
		printMetric(out, "Last workout", lastWorkout)
		fmt.Fprintln(out)

		if len(shares) == 0 {
			return nil
		}
		header := color.New(color.FgGreen, color.Bold).Sprintf("Sets per category:")
		fmt.Fprintln(out, header)
		for _, sh := range shares {
			fmt.Fprintf(out, "  • %s: %d sets (%.0f%%)\n",
				color.New(color.FgMagenta, color.Bold).Sprint(categoryName(sh.Category)), sh.Sets, sh.Percent)
		}
		fmt.Fprintln(out)
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the number of consecutive days with a completed workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		streak, err := env.stats.Streak(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute streak: %w", err)
		}
		switch streak {
		case 0:
			fmt.Fprintln(cmd.OutOrStdout(), "No active streak. Train today to start one.")
		case 1:
			fmt.Fprintf(cmd.OutOrStdout(), "🔥 %s\n", yellow("1 day streak"))
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "🔥 %s\n", yellow(fmt.Sprintf("%d day streak", streak)))
		}
		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(out io.Writer, title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Fprintln(out, cyanBold("╔"+border+"╗"))
	fmt.Fprintln(out, cyanBold("║"+padCenter(title, width)+"║"))
	fmt.Fprintln(out, cyanBold("╚"+border+"╝"))
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(out io.Writer, label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "  %s: %v\n", yellowBold(label), value)
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(streakCmd)
}
