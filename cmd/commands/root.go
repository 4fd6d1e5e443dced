package commands

// Root command for the chart CLI.
// Loads layered config and starts logging before any subcommand runs.

import (
	"fmt"

	"nexachart/internal/infra/config"
	logging "nexachart/internal/infra/log"

	"github.com/spf13/cobra"
)

// cfg is populated by the root PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nexachart",
	Short: "Render time-series charts to PNG and publish them to Telegram",
	Long: `nexachart draws a single time series as a line or bar chart with gridlines,
axis labels and a nearest-point tooltip, and writes it as a PNG. It can
re-render whenever the series file changes and post the result to a chat.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if err := logging.Init(cfg.App.LogDir, cfg.App.LogLevel); err != nil {
			return fmt.Errorf("failed to init logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(hoverCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(recordCmd)
}
