package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"LaunchTracker/internal/config"
	"LaunchTracker/internal/logging"
)

// cli carries state shared by all subcommands once the root has loaded it.
type cli struct {
	configPath string
	rosterPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "launchtracker",
		Short: "Track new real estate launches by UAE developers",
		Long: `launchtracker reads a developer roster, searches a news feed for each
developer's recent launch announcements and renders the results grouped by tier.

Run "serve" for the dashboard or "scan" for a one-off collection.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				c.cfg = config.LoadFile(c.configPath)
			} else {
				c.cfg = config.Load()
			}
			if c.rosterPath != "" {
				c.cfg.Roster.Path = c.rosterPath
			}
			if c.logLevel != "" {
				c.cfg.Logging.Level = c.logLevel
			}
			c.logger = logging.NewWriter(cmd.ErrOrStderr(), c.cfg.Logging.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML config file (or set LAUNCH_TRACKER_CONFIG)")
	root.PersistentFlags().StringVar(&c.rosterPath, "roster", "", "Developer roster CSV (overrides config)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newScanCmd(c),
		newServeCmd(c),
		newParseXMLCmd(c),
	)
	return root
}
