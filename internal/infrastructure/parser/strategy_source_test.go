package parser

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"LaunchTracker/internal/config"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/infrastructure/feed"
	"LaunchTracker/internal/report"
	"LaunchTracker/internal/scanner"
)

type fakeScanner struct {
	name  string
	items []domain.RawItem
	err   error
	reqs  []scanner.Request
}

func (f *fakeScanner) Name() string { return f.name }

func (f *fakeScanner) Scan(_ context.Context, req scanner.Request) ([]domain.RawItem, error) {
	f.reqs = append(f.reqs, req)
	return f.items, f.err
}

func TestStrategySourceRoutesBySite(t *testing.T) {
	t.Parallel()

	news := &fakeScanner{name: "news", items: []domain.RawItem{{Title: "Tower One - 1BR"}}}
	html := &fakeScanner{name: "html", items: []domain.RawItem{{Title: "Site Launch - Villa"}}}
	reg := scanner.NewRegistry()
	reg.Register(news)
	reg.Register(html)

	sites := []config.SiteConfig{{Developer: " emaar ", Scanner: "html", URL: "https://emaar.example.org", Options: map[string]string{"item": ".card"}}}
	src := NewStrategySource(reg, sites, feed.Options{Rand: rand.New(rand.NewPCG(3, 4))}, nil)

	records, err := src.Launches(context.Background(), domain.Developer{Name: "Emaar", Tier: domain.Tier1})
	if err != nil {
		t.Fatalf("Launches returned error: %v", err)
	}
	if len(records) != 1 || records[0].Source != domain.SourceHTML || records[0].ProjectName != "Site Launch" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if len(html.reqs) != 1 || html.reqs[0].URL != "https://emaar.example.org" || html.reqs[0].Options["item"] != ".card" {
		t.Fatalf("unexpected html requests: %+v", html.reqs)
	}

	records, err = src.Launches(context.Background(), domain.Developer{Name: "Danube", Tier: domain.Tier2})
	if err != nil {
		t.Fatalf("Launches returned error: %v", err)
	}
	if len(records) != 1 || records[0].Source != domain.SourceNews {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestStrategySourceFetchFailureIsReported(t *testing.T) {
	t.Parallel()

	reg := scanner.NewRegistry()
	reg.Register(&fakeScanner{name: "news", err: errors.New("connection refused")})
	collector := report.NewCollector(nil)

	src := NewStrategySource(reg, nil, feed.Options{Reporter: collector}, nil)
	records, err := src.Launches(context.Background(), domain.Developer{Name: "DevA", Tier: domain.Tier1})
	if err != nil {
		t.Fatalf("fetch failures must not be returned: %v", err)
	}
	if len(records) != 0 || len(collector.Errors()) != 1 {
		t.Fatalf("expected no records and one report, got %d records, %d reports", len(records), len(collector.Errors()))
	}
}

func TestStrategySourceUnknownScanner(t *testing.T) {
	t.Parallel()

	sites := []config.SiteConfig{{Developer: "DevA", Scanner: "ftp"}}
	src := NewStrategySource(scanner.NewRegistry(), sites, feed.Options{}, nil)

	if _, err := src.Launches(context.Background(), domain.Developer{Name: "DevA"}); err == nil {
		t.Fatalf("expected configuration error")
	}
}
