package scanner

import (
	"context"
	"testing"

	"LaunchTracker/internal/domain"
)

type stubScanner struct {
	name string
}

func (s stubScanner) Name() string { return s.name }

func (s stubScanner) Scan(context.Context, Request) ([]domain.RawItem, error) {
	return []domain.RawItem{{Title: s.name}}, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubScanner{name: "news"})
	reg.Register(stubScanner{name: "html"})

	sc, err := reg.Resolve("news")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if sc.Name() != "news" {
		t.Fatalf("unexpected scanner: %s", sc.Name())
	}

	if _, err := reg.Resolve("missing"); err == nil {
		t.Fatalf("expected error for unregistered scanner")
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "html" || names[1] != "news" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestRegistryZeroValueRegister(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(stubScanner{name: "mock"})
	if _, err := reg.Resolve("mock"); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
}
