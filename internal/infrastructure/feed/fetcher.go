package feed

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/extract"
	"LaunchTracker/internal/observability"
	"LaunchTracker/internal/ports"
	"LaunchTracker/internal/scanner"
)

const (
	defaultMaxItems = 2
	minUnits        = 50
	maxUnits        = 500
)

// Options configures a Fetcher.
type Options struct {
	MaxItems int
	Reporter ports.Reporter
	Recorder ports.FetchRecorder
	Rand     *rand.Rand
	Source   domain.Source
}

// Fetcher runs one scanner per developer and never returns an error to the caller:
// failures are reported once and produce an empty result.
type Fetcher struct {
	scanner  scanner.Scanner
	maxItems int
	reporter ports.Reporter
	recorder ports.FetchRecorder
	rnd      *rand.Rand
	source   domain.Source
}

// NewFetcher wraps sc. A nil Rand is seeded from the clock.
func NewFetcher(sc scanner.Scanner, opts Options) *Fetcher {
	if opts.MaxItems <= 0 {
		opts.MaxItems = defaultMaxItems
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if opts.Source == "" {
		opts.Source = domain.SourceNews
	}
	return &Fetcher{
		scanner:  sc,
		maxItems: opts.MaxItems,
		reporter: opts.Reporter,
		recorder: opts.Recorder,
		rnd:      opts.Rand,
		source:   opts.Source,
	}
}

// FetchDeveloper is Fetch for a bare developer name.
func (f *Fetcher) FetchDeveloper(ctx context.Context, name string) []domain.RawItem {
	return f.Fetch(ctx, scanner.Request{Developer: domain.Developer{Name: name}})
}

// Fetch returns at most MaxItems raw items for req.
func (f *Fetcher) Fetch(ctx context.Context, req scanner.Request) []domain.RawItem {
	items, err := f.scanner.Scan(ctx, req)
	if err != nil {
		var fetchErr *domain.FetchError
		if !errors.As(err, &fetchErr) {
			err = &domain.FetchError{Developer: req.Developer.Name, Op: f.scanner.Name(), Err: err}
		}
		f.observe(observability.OutcomeError)
		if f.reporter != nil {
			f.reporter.Report(ctx, err)
		}
		return nil
	}

	f.observe(observability.OutcomeOK)
	if len(items) > f.maxItems {
		items = items[:f.maxItems]
	}
	return items
}

// Launches fetches and converts items into launch records for req's developer.
func (f *Fetcher) Launches(ctx context.Context, req scanner.Request) []domain.LaunchRecord {
	items := f.Fetch(ctx, req)
	if len(items) == 0 {
		return nil
	}
	records := make([]domain.LaunchRecord, 0, len(items))
	for _, item := range items {
		records = append(records, BuildLaunch(item, f.source, f.rnd))
	}
	return records
}

func (f *Fetcher) observe(outcome string) {
	if f.recorder != nil {
		f.recorder.ObserveFetch(outcome)
	}
}

// BuildLaunch turns a raw item into a launch record. Developer and tier are left
// for the aggregator to stamp.
func BuildLaunch(item domain.RawItem, source domain.Source, rnd *rand.Rand) domain.LaunchRecord {
	details := extract.Extract(item.Title)

	return domain.LaunchRecord{
		ProjectName: ProjectName(item.Title),
		Location:    details.Location,
		Price:       details.Price,
		UnitTypes:   details.UnitTypes,
		Units:       minUnits + rnd.IntN(maxUnits-minUnits+1),
		Image:       domain.PlaceholderImages[rnd.IntN(len(domain.PlaceholderImages))],
		Date:        NormalizeDate(item.PubDate),
		SourceURL:   item.Link,
		Source:      source,
	}
}

// ProjectName keeps the part of title before the first "-".
func ProjectName(title string) string {
	name, _, _ := strings.Cut(title, "-")
	name = strings.TrimSpace(name)
	if name == "" {
		return strings.TrimSpace(title)
	}
	return name
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// NormalizeDate renders known feed date formats as 2006-01-02 and keeps anything else verbatim.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range pubDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return value
}
