package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"LaunchTracker/internal/aggregate"
	"LaunchTracker/internal/config"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/mock"
	"LaunchTracker/internal/ports"
	"LaunchTracker/internal/report"
)

// Snapshot is one complete collection run.
type Snapshot struct {
	RunID       string                `json:"runId"`
	Mode        string                `json:"mode"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Developers  int                   `json:"developers"`
	Records     []domain.LaunchRecord `json:"records"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// Progress is told about each developer before it is fetched.
type Progress func(done, total int, dev domain.Developer)

// TrackerDeps wires the launch sources into the tracker.
type TrackerDeps struct {
	Source   ports.LaunchSource
	Mock     *mock.Generator
	Errors   *report.Collector
	Recorder ports.SnapshotRecorder
	Logger   *slog.Logger
	Mode     string
	Pause    time.Duration
	Sleep    func(ctx context.Context, d time.Duration) error
	Now      func() time.Time
}

// Tracker collects launches for a roster, one developer at a time.
type Tracker struct {
	source   ports.LaunchSource
	mock     *mock.Generator
	errors   *report.Collector
	recorder ports.SnapshotRecorder
	logger   *slog.Logger
	mode     string
	pause    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// NewTracker constructs the collection use case. Pause is clamped to config.MinPause.
func NewTracker(deps TrackerDeps) *Tracker {
	t := &Tracker{
		source:   deps.Source,
		mock:     deps.Mock,
		errors:   deps.Errors,
		recorder: deps.Recorder,
		logger:   deps.Logger,
		mode:     deps.Mode,
		pause:    deps.Pause,
		sleep:    deps.Sleep,
		now:      deps.Now,
	}
	if t.mode == "" {
		t.mode = config.ModeLive
	}
	if t.pause < config.MinPause {
		t.pause = config.MinPause
	}
	if t.sleep == nil {
		t.sleep = sleepContext
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.errors == nil {
		t.errors = report.NewCollector(nil)
	}
	return t
}

// Mode reports whether the tracker serves live or mock data.
func (t *Tracker) Mode() string {
	return t.mode
}

// Collect gathers launches for developers and aggregates them. A SchemaError or a
// cancelled context aborts the run with no snapshot; fetch failures become warnings.
func (t *Tracker) Collect(ctx context.Context, developers []domain.Developer, progress Progress) (Snapshot, error) {
	start := t.now()
	runID := uuid.NewString()
	t.errors.Drain()

	// Reject an unusable roster before any upstream request.
	if _, err := aggregate.Aggregate(developers, nil); err != nil {
		return Snapshot{}, fmt.Errorf("validate roster: %w", err)
	}

	var (
		per aggregate.Launches
		err error
	)
	switch t.mode {
	case config.ModeMock:
		per = t.collectMock(developers, progress)
	default:
		per, err = t.collectLive(ctx, developers, progress)
		if err != nil {
			return Snapshot{}, err
		}
	}

	records, err := aggregate.Aggregate(developers, per)
	if err != nil {
		return Snapshot{}, fmt.Errorf("aggregate launches: %w", err)
	}

	snap := Snapshot{
		RunID:       runID,
		Mode:        t.mode,
		GeneratedAt: t.now(),
		Developers:  len(developers),
		Records:     records,
	}
	for _, e := range t.errors.Drain() {
		snap.Warnings = append(snap.Warnings, e.Error())
	}

	elapsed := snap.GeneratedAt.Sub(start)
	if t.recorder != nil {
		t.recorder.ObserveSnapshot(aggregate.CountByTier(records), elapsed)
	}
	t.info("collection finished", "run", runID, "mode", t.mode, "developers", len(developers),
		"records", len(records), "warnings", len(snap.Warnings), "elapsed", elapsed)

	return snap, nil
}

func (t *Tracker) collectLive(ctx context.Context, developers []domain.Developer, progress Progress) (aggregate.Launches, error) {
	if t.source == nil {
		return nil, fmt.Errorf("no launch source configured")
	}

	per := make(aggregate.Launches, len(developers))
	for i, dev := range developers {
		if i > 0 {
			if err := t.sleep(ctx, t.pause); err != nil {
				return nil, fmt.Errorf("collect launches: %w", err)
			}
		}
		if progress != nil {
			progress(i, len(developers), dev)
		}

		launches, err := t.source.Launches(ctx, dev)
		if err != nil {
			t.errors.Report(ctx, &domain.FetchError{Developer: dev.Name, Op: "resolve", Err: err})
			continue
		}
		per[dev.Name] = append(per[dev.Name], launches...)
	}
	if progress != nil && len(developers) > 0 {
		progress(len(developers), len(developers), domain.Developer{})
	}
	return per, nil
}

func (t *Tracker) collectMock(developers []domain.Developer, progress Progress) aggregate.Launches {
	gen := t.mock
	if gen == nil {
		gen = mock.NewGenerator(nil, t.now)
	}
	if progress != nil && len(developers) > 0 {
		progress(len(developers), len(developers), domain.Developer{})
	}
	return gen.PerDeveloper(developers)
}

func (t *Tracker) info(msg string, args ...interface{}) {
	if t.logger != nil {
		t.logger.Info(msg, args...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
