package ports

import (
	"context"
	"time"

	"LaunchTracker/internal/domain"
)

// LaunchSource yields launches for a single developer.
type LaunchSource interface {
	Launches(ctx context.Context, dev domain.Developer) ([]domain.LaunchRecord, error)
}

// Reporter receives recoverable errors so the UI can surface them.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// FetchRecorder counts outbound feed requests by outcome.
type FetchRecorder interface {
	ObserveFetch(outcome string)
}

// SnapshotRecorder tracks refresh results.
type SnapshotRecorder interface {
	ObserveSnapshot(perTier map[domain.Tier]int, elapsed time.Duration)
}

// Scheduler controls when refreshes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
