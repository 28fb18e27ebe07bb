package main

import (
	"github.com/spf13/cobra"

	"LaunchTracker/internal/app"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the launch dashboard and refresh it on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			application, err := app.New(c.cfg, c.logger, nil)
			if err != nil {
				return err
			}
			return application.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
