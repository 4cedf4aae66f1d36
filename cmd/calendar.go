package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/models"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

// details is a flag to enable verbose workout details.
var details bool

// calendarCmd prints the calendar grid.
// Days with a completed workout are printed with a color based on the routine
// name, and a legend is printed below the calendar.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of training days with a legend mapping colors to routines",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Determine month and year (default to current month/year).
		now := env.clock.Now().In(env.loc)
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		ctx := cmd.Context()
		records, trained, err := env.stats.Month(ctx, year, month)
		if err != nil {
			return fmt.Errorf("failed to get records: %w", err)
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, env.loc)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

		// Group completed records by day. Records come newest first, so the
		// last one appended per day is the earliest workout of that day.
		recordsByDay := make(map[int][]models.WorkoutRecord)
		var routines []string
		seen := make(map[string]bool)
		for _, r := range records {
			if !r.IsCompleted() {
				continue
			}
			d, err := timer.ParseDate(r.Date, env.loc)
			if err != nil {
				continue
			}
			recordsByDay[d.Day()] = append(recordsByDay[d.Day()], r)
			if !seen[r.RoutineName] {
				seen[r.RoutineName] = true
				routines = append(routines, r.RoutineName)
			}
		}
		sort.Strings(routines)

		// Define a fixed palette of colors.
		colorPalette := []color.Attribute{
			color.FgRed, color.FgGreen, color.FgYellow,
			color.FgBlue, color.FgMagenta, color.FgCyan,
		}
		routineColors := make(map[string]func(a ...interface{}) string)
		for i, name := range routines {
			routineColors[name] = color.New(colorPalette[i%len(colorPalette)]).SprintFunc()
		}

		out := cmd.OutOrStdout()
		header := fmt.Sprintf("%s %d", month.String(), year)
		fmt.Fprintln(out, centerText(header, 20))
		fmt.Fprintln(out, "Su Mo Tu We Th Fr Sa")

		// Determine weekday of first day (0 = Sunday).
		weekday := int(firstOfMonth.Weekday())
		for i := 0; i < weekday; i++ {
			fmt.Fprint(out, "   ")
		}

		for day := 1; day <= lastOfMonth.Day(); day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if trained[day] {
				colFunc := color.New(color.FgWhite).SprintFunc()
				if dayRecords := recordsByDay[day]; len(dayRecords) > 0 {
					colFunc = routineColors[dayRecords[len(dayRecords)-1].RoutineName]
				}
				dayStr = colFunc(dayStr)
			}
			fmt.Fprintf(out, "%s ", dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Fprintln(out)
			}
		}
		fmt.Fprint(out, "\n\n")

		if len(routines) > 0 {
			fmt.Fprintln(out, "Legend:")
			for _, name := range routines {
				fmt.Fprintf(out, "  %s: %s\n", routineColors[name]("██"), name)
			}
		}

		if details {
			fmt.Fprintln(out, "\nWorkout Details:")
			var days []int
			for d := range recordsByDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, env.loc)
				fmt.Fprintf(out, "\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, r := range recordsByDay[day] {
					fmt.Fprintf(out, "  %s at %s, %d min, %s\n",
						r.RoutineName, r.StartTime.In(env.loc).Format("15:04"), r.DurationMinutes, formatVolume(r))
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print additional workout details")
}
