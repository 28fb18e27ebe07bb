package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"LaunchTracker/internal/aggregate"
	"LaunchTracker/internal/app"
	"LaunchTracker/internal/config"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/usecase"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func newScanCmd(c *cli) *cobra.Command {
	var (
		mode   string
		tiers  []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Collect launches once and print them",
		Long: `Loads the developer roster, fetches each developer in turn and prints the
aggregated launches. Fetch failures are listed as warnings after the results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatTable, formatJSON)
			}
			if mode != "" {
				if mode != config.ModeLive && mode != config.ModeMock {
					return fmt.Errorf("unknown mode %q (want %s or %s)", mode, config.ModeLive, config.ModeMock)
				}
				c.cfg.Tracker.Mode = mode
			}
			if len(tiers) > 0 {
				c.cfg.Tracker.Tiers = tiers
			}

			application, err := app.New(c.cfg, c.logger, nil)
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			progress := func(done, total int, dev domain.Developer) {
				if done < total {
					fmt.Fprintf(errOut, "[%d/%d] %s\n", done+1, total, dev.Name)
				}
			}

			snap, err := application.Scan(cmd.Context(), aggregate.NewTierSet(application.Tiers()...), progress)
			if err != nil {
				return err
			}

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			return printTable(cmd.OutOrStdout(), snap, application.Tiers())
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Data mode: live or mock (overrides config)")
	cmd.Flags().StringSliceVar(&tiers, "tier", nil, `Tiers to show, e.g. --tier "Tier 1" --tier "Tier 2"`)
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "Output format: table or json")
	return cmd
}

func printTable(w io.Writer, snap usecase.Snapshot, tiers []domain.Tier) error {
	if snap.Mode == config.ModeMock {
		fmt.Fprintln(w, "Demo data: randomly generated, not real announcements.")
	}

	groups := aggregate.GroupByTier(snap.Records)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tier := range tiers {
		records := groups[tier]
		fmt.Fprintf(tw, "\n%s (%d)\n", tier, len(records))
		if len(records) == 0 {
			continue
		}
		fmt.Fprintln(tw, "PROJECT\tDEVELOPER\tLOCATION\tPRICE\tUNITS\tTYPES\tDATE")
		for _, rec := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				rec.ProjectName, rec.Developer, rec.Location, rec.Price,
				rec.Units, strings.Join(rec.UnitTypes, ", "), rec.Date)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(snap.Records) == 0 {
		fmt.Fprintln(w, "\nNo launches found for the selected tiers.")
	}
	for _, warning := range snap.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}
