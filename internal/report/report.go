// Package report delivers recoverable errors to logs and to the UI.
package report

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/ports"
)

// LogReporter writes each reported error as a warning.
type LogReporter struct {
	logger *slog.Logger
}

var _ ports.Reporter = (*LogReporter)(nil)

// NewLogReporter wraps logger; nil means slog.Default.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Report logs err with its kind and developer when known.
func (r *LogReporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	args := []any{"kind", Kind(err), "error", err}
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		args = append(args, "developer", fetchErr.Developer)
	}
	r.logger.WarnContext(ctx, "recoverable error", args...)
}

// Collector keeps reported errors in memory so they can be rendered next to results.
type Collector struct {
	mu   sync.Mutex
	errs []error
	next ports.Reporter
}

var _ ports.Reporter = (*Collector)(nil)

// NewCollector forwards to next (may be nil) after recording.
func NewCollector(next ports.Reporter) *Collector {
	return &Collector{next: next}
}

// Report records err and forwards it.
func (c *Collector) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()

	if c.next != nil {
		c.next.Report(ctx, err)
	}
}

// Drain returns everything reported so far and clears the collector.
func (c *Collector) Drain() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := c.errs
	c.errs = nil
	return errs
}

// Errors returns a copy of everything reported so far.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// Messages renders the reported errors as strings.
func (c *Collector) Messages() []string {
	errs := c.Errors()
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// Kind names the error category used in logs and API payloads.
func Kind(err error) string {
	var (
		schemaErr *domain.SchemaError
		fetchErr  *domain.FetchError
		parseErr  *domain.ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrRosterMissing):
		return "roster_missing"
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "internal"
	}
}
