package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestIntervalSchedulerRunsImmediatelyAndTicks(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(10 * time.Millisecond)
	var runs atomic.Int32
	ran := make(chan struct{}, 16)

	if err := s.Start(context.Background(), func(time.Time) {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	for i := 0; i < 3; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("job did not run %d times", i+1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runs.Load() != after {
		t.Fatalf("job kept running after Stop")
	}

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("second Stop returned error: %v", err)
	}
}

func TestIntervalSchedulerStopsOnContext(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	if err := s.Start(ctx, func(time.Time) { close(started) }); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	<-started
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
}

func TestIntervalSchedulerNilJob(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(0)
	if s.interval != 5*time.Minute {
		t.Fatalf("unexpected default interval: %v", s.interval)
	}
	if err := s.Start(context.Background(), nil); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
}
