package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all the database data to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "liftlog_dump.toml" // Default filename.
		if len(args) == 1 {
			outputFile = args[0]
		}

		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("error creating %s: %w", outputFile, err)
		}
		if err := env.store.ExportDump(cmd.Context(), f); err != nil {
			f.Close()
			return fmt.Errorf("error exporting database: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("error writing %s: %w", outputFile, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Database exported successfully to %s\n", outputFile)
		return nil
	},
}

var importDumpCmd = &cobra.Command{
	Use:   "import-dump [dump-file]",
	Short: "Rebuild the entire database from the given TOML dump file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open dump: %w", err)
		}
		defer f.Close()

		if err := env.store.ImportDump(cmd.Context(), f); err != nil {
			return fmt.Errorf("Failed to build database: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Database built successfully from TOML dump.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importDumpCmd)
}
