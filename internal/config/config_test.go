package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg := LoadFile("")

	if cfg.Tracker.Mode != ModeLive {
		t.Fatalf("unexpected mode: %s", cfg.Tracker.Mode)
	}
	if cfg.Feed.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Feed.Timeout)
	}
	if cfg.Feed.MaxItems != 2 {
		t.Fatalf("unexpected max items: %d", cfg.Feed.MaxItems)
	}
	if cfg.Scheduler.Interval != 5*time.Minute {
		t.Fatalf("unexpected interval: %v", cfg.Scheduler.Interval)
	}
	if cfg.Scheduler.Location() == nil {
		t.Fatalf("expected bound location")
	}
}

func TestLoadFileMergesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.yaml")
	raw := `
roster:
  path: /data/devs.csv
tracker:
  mode: MOCK
  pause: 100ms
  seed: 42
feed:
  maxItems: 5
sites:
  - developer: Emaar
    scanner: html
    url: https://example.org/launches
    options:
      item: article
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadFile(path)

	if cfg.Roster.Path != "/data/devs.csv" {
		t.Fatalf("unexpected roster path: %s", cfg.Roster.Path)
	}
	if cfg.Tracker.Mode != ModeMock {
		t.Fatalf("unexpected mode: %s", cfg.Tracker.Mode)
	}
	if cfg.Tracker.Pause != MinPause {
		t.Fatalf("pause should be clamped to %v, got %v", MinPause, cfg.Tracker.Pause)
	}
	if cfg.Tracker.Seed != 42 {
		t.Fatalf("unexpected seed: %d", cfg.Tracker.Seed)
	}
	if cfg.Feed.MaxItems != 5 {
		t.Fatalf("unexpected max items: %d", cfg.Feed.MaxItems)
	}
	if cfg.Feed.Timeout != 5*time.Second {
		t.Fatalf("default timeout should survive merge, got %v", cfg.Feed.Timeout)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Options["item"] != "article" {
		t.Fatalf("unexpected sites: %+v", cfg.Sites)
	}
}

func TestLoadFileEnvOverrides(t *testing.T) {
	t.Setenv(rosterPathEnv, "/env/roster.csv")
	t.Setenv(addrEnv, ":9999")

	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Roster.Path != "/env/roster.csv" {
		t.Fatalf("unexpected roster path: %s", cfg.Roster.Path)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
}
