package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/stats"
)

const trendBarWidth = 30

var (
	trendPeriod string
	trendRange  int
)

var trendCmd = &cobra.Command{
	Use:       "trend [volume|weight]",
	Short:     "Show training volume or body weight over time",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(stats.MetricVolume), string(stats.MetricWeight)},
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := stats.ParseMetric(args[0])
		if err != nil {
			return err
		}
		period, err := stats.ParsePeriod(trendPeriod)
		if err != nil {
			return err
		}
		if trendRange < 0 {
			return fmt.Errorf("invalid range %d", trendRange)
		}

		points, err := env.stats.Trend(cmd.Context(), metric, period, trendRange)
		if err != nil {
			return fmt.Errorf("failed to compute trend: %w", err)
		}
		if len(points) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No data yet.")
			return nil
		}
		printTrend(cmd.OutOrStdout(), points, metric)
		return nil
	},
}

func printTrend(out io.Writer, points []stats.TrendPoint, metric stats.Metric) {
	var peak float64
	labelWidth := 0
	for _, p := range points {
		if p.Value > peak {
			peak = p.Value
		}
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}

	for _, p := range points {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", int(p.Value/peak*trendBarWidth+0.5))
		}
		value := faint("-")
		if p.Count > 0 {
			if metric == stats.MetricWeight {
				value = fmt.Sprintf("%.1fkg", p.Value)
			} else {
				value = formatWeight(p.Value)
			}
		}
		fmt.Fprintf(out, "%-*s %s %s\n", labelWidth, p.Label, cyan(bar), value)
	}
}

func init() {
	trendCmd.Flags().StringVarP(&trendPeriod, "period", "p", string(stats.PeriodWeek), "Bucket size: day, week, month or year")
	trendCmd.Flags().IntVarP(&trendRange, "range", "n", 0, "Number of periods ending now (0 spans all data)")
	rootCmd.AddCommand(trendCmd)
}
