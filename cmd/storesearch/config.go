package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmcdole/storesearch/internal/adapter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		file := cfg.File()
		if file == "" {
			file = "(none, using defaults)"
		}
		fmt.Fprintf(out, "config file:   %s\n", file)
		fmt.Fprintf(out, "store url:     %s\n", cfg.Store.BaseURL)
		fmt.Fprintf(out, "country:       %s\n", valueOr(cfg.Store.Country, "(store default)"))
		fmt.Fprintf(out, "rate limit:    %d/min\n", cfg.Store.RequestsPerMinute)
		fmt.Fprintf(out, "history:       %t (%s)\n", cfg.History.Enabled, cfg.History.Path)
		fmt.Fprintf(out, "log file:      %s\n", cfg.Logging.File)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Args:  cobra.NoArgs,
	// The file may not exist yet, so skip loading it
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := cfgFile
		if path == "" {
			path = adapter.DefaultConfigFile()
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := adapter.SaveConfig(adapter.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
