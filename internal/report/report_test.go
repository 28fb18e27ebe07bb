package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/logging"
)

func TestKind(t *testing.T) {
	t.Parallel()

	cases := map[string]error{
		"roster_missing": fmt.Errorf("%w: x.csv", domain.ErrRosterMissing),
		"schema":         &domain.SchemaError{Missing: []string{"Tier"}},
		"fetch":          fmt.Errorf("wrapped: %w", &domain.FetchError{Developer: "A", Op: "feed", Err: errors.New("boom")}),
		"parse":          &domain.ParseError{Err: errors.New("bad xml")},
		"internal":       errors.New("other"),
	}
	for want, err := range cases {
		if got := Kind(err); got != want {
			t.Fatalf("Kind(%v) = %s, want %s", err, got, want)
		}
	}
}

func TestCollectorForwards(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	collector := NewCollector(NewLogReporter(logging.NewWriter(&buf, "debug")))

	collector.Report(context.Background(), nil)
	collector.Report(context.Background(), &domain.FetchError{Developer: "DevA", Op: "feed", Err: errors.New("status 500")})

	if got := len(collector.Errors()); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if msg := collector.Messages()[0]; !strings.Contains(msg, "DevA") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if out := buf.String(); !strings.Contains(out, "developer=DevA") || !strings.Contains(out, "kind=fetch") {
		t.Fatalf("unexpected log output: %s", out)
	}
}
