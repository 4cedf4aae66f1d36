package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/models"
)

var listCustomOnly bool

var importExercisesCmd = &cobra.Command{
	Use:   "import-exercises [file]",
	Short: "Import custom exercises from TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		added, err := env.store.ImportExercises(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("Failed to import exercises: %w", err)
		}

		for _, ex := range added {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", cyan(ex.Name), faint("("+categoryName(ex.Category)+")"))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %d exercises\n", len(added))
		return nil
	},
}

var listExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercise library grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := env.store.ListExercises(cmd.Context())
		if err != nil {
			return fmt.Errorf("Failed to list exercises: %w", err)
		}

		out := cmd.OutOrStdout()
		var current models.Category
		shown := 0
		for _, ex := range exercises {
			if listCustomOnly && ex.Ref.Kind != models.ExerciseCustom {
				continue
			}
			if ex.Category != current || shown == 0 {
				current = ex.Category
				fmt.Fprintf(out, "\n%s\n", yellow(categoryName(current)))
			}
			name := ex.Name
			if ex.Ref.Kind == models.ExerciseCustom {
				name += " " + faint("(custom)")
			}
			fmt.Fprintf(out, "  %s\n", name)
			shown++
		}

		if shown == 0 {
			fmt.Fprintln(out, "No exercises found. Run 'liftlog init' to seed the catalog.")
		}
		return nil
	},
}

func init() {
	listExercisesCmd.Flags().BoolVar(&listCustomOnly, "custom", false, "Only list custom exercises")
	rootCmd.AddCommand(importExercisesCmd)
	rootCmd.AddCommand(listExercisesCmd)
}
