package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/ports"
)

// RosterLoader returns the current developer table.
type RosterLoader func() ([]domain.Developer, error)

// Board holds the latest snapshot, or the error that prevented one, for readers.
type Board struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	err      error
}

// Publish replaces the current state.
func (b *Board) Publish(snap *Snapshot, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.err = err
		b.snapshot = nil
		return
	}
	b.snapshot = snap
	b.err = nil
}

// Current returns the latest snapshot (nil before the first refresh) and error.
func (b *Board) Current() (*Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot, b.err
}

// Refresher wires the scheduler driver with the tracker use case.
type Refresher struct {
	driver  ports.Scheduler
	tracker *Tracker
	load    RosterLoader
	board   *Board
	logger  *slog.Logger
}

// NewRefresher returns a helper to start/stop recurring refreshes.
func NewRefresher(driver ports.Scheduler, tracker *Tracker, load RosterLoader, board *Board, logger *slog.Logger) *Refresher {
	return &Refresher{driver: driver, tracker: tracker, load: load, board: board, logger: logger}
}

// RefreshOnce reloads the roster, collects and publishes the result.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	developers, err := r.load()
	if err != nil {
		r.publish(nil, err)
		return err
	}

	snap, err := r.tracker.Collect(ctx, developers, r.progress)
	if err != nil {
		r.publish(nil, err)
		return err
	}
	r.publish(&snap, nil)
	return nil
}

// Start registers RefreshOnce with the provided scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	if r.driver == nil || r.tracker == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if err := r.RefreshOnce(ctx); err != nil && r.logger != nil {
			r.logger.Error("refresh failed", "trigger", trigger.Format(time.RFC3339), "error", err)
		}
	}

	return r.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}

	return r.driver.Stop(ctx)
}

func (r *Refresher) publish(snap *Snapshot, err error) {
	if r.board != nil {
		r.board.Publish(snap, err)
	}
}

func (r *Refresher) progress(done, total int, dev domain.Developer) {
	if r.logger == nil {
		return
	}
	if done == total {
		r.logger.Debug("collection progress", "done", done, "total", total)
		return
	}
	r.logger.Debug("collection progress", "done", done, "total", total, "developer", dev.Name)
}
