package parser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"LaunchTracker/internal/config"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/infrastructure/feed"
	"LaunchTracker/internal/ports"
	"LaunchTracker/internal/scanner"
)

// DefaultScanner handles developers without a site entry.
const DefaultScanner = "news"

// StrategySource implements LaunchSource via registered scanner strategies.
type StrategySource struct {
	fetchers map[string]*feed.Fetcher
	sites    map[string]config.SiteConfig
	logger   *slog.Logger
}

var _ ports.LaunchSource = (*StrategySource)(nil)

// NewStrategySource wraps every registered scanner in a feed.Fetcher sharing opts.
// Sites are keyed by developer name, case-insensitively.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, opts feed.Options, log *slog.Logger) *StrategySource {
	fetchers := map[string]*feed.Fetcher{}
	if reg != nil {
		for _, name := range reg.Names() {
			sc, err := reg.Resolve(name)
			if err != nil {
				continue
			}
			o := opts
			o.Source = sourceFor(name)
			fetchers[name] = feed.NewFetcher(sc, o)
		}
	}

	bySite := make(map[string]config.SiteConfig, len(sites))
	for _, site := range sites {
		bySite[siteKey(site.Developer)] = site
	}

	return &StrategySource{
		fetchers: fetchers,
		sites:    bySite,
		logger:   log,
	}
}

// Launches resolves the developer's strategy and fetches its launches.
// Fetch failures are reported by the fetcher; only configuration errors are returned.
func (s *StrategySource) Launches(ctx context.Context, dev domain.Developer) ([]domain.LaunchRecord, error) {
	req := scanner.Request{Developer: dev}
	name := DefaultScanner
	if site, ok := s.sites[siteKey(dev.Name)]; ok {
		if site.Scanner != "" {
			name = site.Scanner
		}
		req.URL = site.URL
		req.Options = site.Options
	}

	fetcher, ok := s.fetchers[name]
	if !ok {
		return nil, fmt.Errorf("developer %s: scanner %s is not registered", dev.Name, name)
	}

	s.debug("fetch developer", "developer", dev.Name, "scanner", name)
	records := fetcher.Launches(ctx, req)
	s.debug("developer produced launches", "developer", dev.Name, "count", len(records))
	return records, nil
}

func sourceFor(scannerName string) domain.Source {
	if scannerName == "html" {
		return domain.SourceHTML
	}
	return domain.SourceNews
}

func siteKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
