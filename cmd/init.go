package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/config"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database, seed the exercise catalog and write a default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := env.store.SeedCatalog(cmd.Context()); err != nil {
			return fmt.Errorf("Failed to seed catalog: %w", err)
		}

		path := configPath
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := env.cfg.Write(path); err != nil {
				return fmt.Errorf("Failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote config to %s\n", path)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Database initialized and exercise catalog seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
