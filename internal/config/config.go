package config

import (
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "Asia/Dubai"
	fallbackZone    = "UTC"
	configPathEnv   = "LAUNCH_TRACKER_CONFIG"
	rosterPathEnv   = "LAUNCH_TRACKER_ROSTER"
	modeEnv         = "LAUNCH_TRACKER_MODE"
	logLevelEnv     = "LAUNCH_TRACKER_LOG_LEVEL"
	addrEnv         = "LAUNCH_TRACKER_ADDR"

	// MinPause is the shortest delay allowed between successive feed requests.
	MinPause = 500 * time.Millisecond
)

// Tracker modes.
const (
	ModeLive = "live"
	ModeMock = "mock"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Roster    RosterConfig    `yaml:"roster"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Feed      FeedConfig      `yaml:"feed"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Server    ServerConfig    `yaml:"server"`
	Sites     []SiteConfig    `yaml:"sites"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// RosterConfig points at the developer CSV.
type RosterConfig struct {
	Path string `yaml:"path"`
}

// TrackerConfig controls how launches are collected.
type TrackerConfig struct {
	Mode  string        `yaml:"mode"`
	Pause time.Duration `yaml:"pause"`
	Tiers []string      `yaml:"tiers"`
	Seed  int64         `yaml:"seed"`
}

// FeedConfig describes the news search endpoint.
type FeedConfig struct {
	// Endpoint holds a single %s verb replaced by the escaped search query.
	Endpoint       string        `yaml:"endpoint"`
	QuerySuffix    string        `yaml:"querySuffix"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxItems       int           `yaml:"maxItems"`
	UserAgent      string        `yaml:"userAgent"`
	AcceptLanguage string        `yaml:"acceptLanguage"`
}

// SchedulerConfig defines how often the server refreshes its snapshot.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.UTC
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Title string `yaml:"title"`
}

// SiteConfig binds a developer to a scanner strategy other than the news feed.
type SiteConfig struct {
	Developer string            `yaml:"developer"`
	Scanner   string            `yaml:"scanner"`
	URL       string            `yaml:"url"`
	Options   map[string]string `yaml:"options"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	return LoadFile(os.Getenv(configPathEnv))
}

// LoadFile is Load with an explicit path; an empty path means defaults only.
func LoadFile(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(rosterPathEnv); v != "" {
		c.Roster.Path = v
	}

	if v := os.Getenv(modeEnv); v != "" {
		c.Tracker.Mode = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(addrEnv); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) normalize() {
	c.Tracker.Mode = strings.ToLower(strings.TrimSpace(c.Tracker.Mode))
	if c.Tracker.Mode != ModeMock {
		c.Tracker.Mode = ModeLive
	}
	if c.Tracker.Pause < MinPause {
		c.Tracker.Pause = MinPause
	}
	if c.Feed.MaxItems <= 0 {
		c.Feed.MaxItems = defaultConfig().Feed.MaxItems
	}
	if c.Feed.Timeout <= 0 {
		c.Feed.Timeout = defaultConfig().Feed.Timeout
	}
	if c.Scheduler.Interval <= 0 {
		c.Scheduler.Interval = defaultConfig().Scheduler.Interval
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, fallbackZone)
		loc = time.UTC
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Roster.Path != "" {
		base.Roster.Path = override.Roster.Path
	}

	if override.Tracker.Mode != "" {
		base.Tracker.Mode = override.Tracker.Mode
	}
	if override.Tracker.Pause != 0 {
		base.Tracker.Pause = override.Tracker.Pause
	}
	if len(override.Tracker.Tiers) > 0 {
		base.Tracker.Tiers = override.Tracker.Tiers
	}
	if override.Tracker.Seed != 0 {
		base.Tracker.Seed = override.Tracker.Seed
	}

	if override.Feed.Endpoint != "" {
		base.Feed.Endpoint = override.Feed.Endpoint
	}
	if override.Feed.QuerySuffix != "" {
		base.Feed.QuerySuffix = override.Feed.QuerySuffix
	}
	if override.Feed.Timeout != 0 {
		base.Feed.Timeout = override.Feed.Timeout
	}
	if override.Feed.MaxItems != 0 {
		base.Feed.MaxItems = override.Feed.MaxItems
	}
	if override.Feed.UserAgent != "" {
		base.Feed.UserAgent = override.Feed.UserAgent
	}
	if override.Feed.AcceptLanguage != "" {
		base.Feed.AcceptLanguage = override.Feed.AcceptLanguage
	}

	if override.Scheduler.Interval != 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.Title != "" {
		base.Server.Title = override.Server.Title
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Roster:  RosterConfig{Path: "developers.csv"},
		Tracker: TrackerConfig{
			Mode:  ModeLive,
			Pause: MinPause,
			Tiers: []string{"Tier 1", "Tier 2", "Tier 3"},
		},
		Feed: FeedConfig{
			Endpoint:       "https://news.google.com/rss/search?q=%s&hl=en-AE&gl=AE&ceid=AE:en",
			QuerySuffix:    "real estate launch UAE",
			Timeout:        5 * time.Second,
			MaxItems:       2,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			AcceptLanguage: "en-US,en;q=0.9",
		},
		Scheduler: SchedulerConfig{Interval: 5 * time.Minute, Timezone: defaultTimezone},
		Server:    ServerConfig{Addr: ":8080", Title: "UAE Developer Launch Tracker"},
	}
}
