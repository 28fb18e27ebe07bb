package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"LaunchTracker/internal/aggregate"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/infrastructure/feed"
)

func newParseXMLCmd(_ *cli) *cobra.Command {
	var (
		developer string
		tier      string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "parse-xml <file|->",
		Short: "Turn saved feed XML into launch records",
		Long: `Parses an RSS or Atom document from a file (or stdin with "-") and prints the
launch records it yields as JSON. With --developer and --tier the records are
stamped the same way a live collection would stamp them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open feed: %w", err)
				}
				defer f.Close()
				in = f
			}

			items, err := feed.ParseXML(in, limit)
			if err != nil {
				return err
			}

			seed := uint64(time.Now().UnixNano())
			rnd := rand.New(rand.NewPCG(seed, seed>>1))
			records := make([]domain.LaunchRecord, 0, len(items))
			for _, item := range items {
				records = append(records, feed.BuildLaunch(item, domain.SourceUpload, rnd))
			}

			if name := strings.TrimSpace(developer); name != "" {
				t, err := domain.ParseTier(tier)
				if err != nil {
					return &domain.ParseError{Source: "tier flag", Err: err}
				}
				dev := domain.Developer{Name: name, Tier: t}
				records, err = aggregate.Aggregate([]domain.Developer{dev}, aggregate.Launches{name: records})
				if err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}

	cmd.Flags().StringVar(&developer, "developer", "", "Developer to stamp on each record")
	cmd.Flags().StringVar(&tier, "tier", "", `Tier of --developer, e.g. "Tier 1"`)
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum items to read (0 keeps every item)")
	return cmd
}
