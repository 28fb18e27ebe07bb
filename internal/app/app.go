package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"LaunchTracker/internal/aggregate"
	"LaunchTracker/internal/config"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/infrastructure/feed"
	"LaunchTracker/internal/infrastructure/parser"
	"LaunchTracker/internal/infrastructure/scheduler"
	"LaunchTracker/internal/logging"
	"LaunchTracker/internal/mock"
	"LaunchTracker/internal/observability"
	"LaunchTracker/internal/report"
	"LaunchTracker/internal/roster"
	"LaunchTracker/internal/scanner"
	"LaunchTracker/internal/usecase"
	"LaunchTracker/internal/web"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	tiers     []domain.Tier
	metrics   *observability.Collector
	tracker   *usecase.Tracker
	board     *usecase.Board
	refresher *usecase.Refresher
	server    *web.Server
}

// New builds the application. A nil registerer gives the app a private registry.
func New(cfg config.Config, baseLogger *slog.Logger, reg prometheus.Registerer) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	selected, err := aggregate.ParseTierSet(cfg.Tracker.Tiers)
	if err != nil {
		return nil, fmt.Errorf("config tiers: %w", err)
	}
	tiers := selected.Sorted()
	if len(tiers) == 0 {
		tiers = domain.AllTiers
	}

	metrics, err := observability.NewCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	errs := report.NewCollector(report.NewLogReporter(baseLogger.With("component", "report")))
	rnd := newRand(cfg.Tracker.Seed)
	loc := cfg.Scheduler.Location()
	now := func() time.Time { return time.Now().In(loc) }

	client := &http.Client{Timeout: cfg.Feed.Timeout}
	registry := scanner.NewRegistry()
	registry.Register(feed.NewNewsScanner(client, cfg.Feed))
	registry.Register(parser.NewHTMLScanner(client, baseLogger.With("component", "scanner.html")))

	source := parser.NewStrategySource(registry, cfg.Sites, feed.Options{
		MaxItems: cfg.Feed.MaxItems,
		Reporter: errs,
		Recorder: metrics,
		Rand:     rnd,
	}, baseLogger.With("component", "source"))

	tracker := usecase.NewTracker(usecase.TrackerDeps{
		Source:   source,
		Mock:     mock.NewGenerator(rnd, now),
		Errors:   errs,
		Recorder: metrics,
		Logger:   baseLogger.With("component", "tracker"),
		Mode:     cfg.Tracker.Mode,
		Pause:    cfg.Tracker.Pause,
		Now:      now,
	})

	board := &usecase.Board{}
	loader := func() ([]domain.Developer, error) { return roster.Load(cfg.Roster.Path) }
	refresher := usecase.NewRefresher(
		scheduler.NewIntervalScheduler(cfg.Scheduler.Interval),
		tracker, loader, board,
		baseLogger.With("component", "refresher"),
	)

	server := web.NewServer(board, web.Options{
		Title:        cfg.Server.Title,
		DefaultTiers: tiers,
		Location:     loc,
		Metrics:      metrics.Handler(),
	}, baseLogger.With("component", "web"))

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		tiers:     tiers,
		metrics:   metrics,
		tracker:   tracker,
		board:     board,
		refresher: refresher,
		server:    server,
	}, nil
}

// Tiers returns the configured default tier selection.
func (a *Application) Tiers() []domain.Tier {
	return a.tiers
}

// Handler exposes the HTTP surface without starting a listener.
func (a *Application) Handler() http.Handler {
	return a.server
}

// Scan loads the roster and performs one collection run over the developers whose
// tier is selected. A nil selection collects every developer.
func (a *Application) Scan(ctx context.Context, selected aggregate.TierSet, progress usecase.Progress) (usecase.Snapshot, error) {
	developers, err := roster.Load(a.cfg.Roster.Path)
	if err != nil {
		return usecase.Snapshot{}, err
	}
	if selected != nil {
		developers = aggregate.FilterDevelopers(developers, selected)
	}
	return a.tracker.Collect(ctx, developers, progress)
}

// Serve starts the refresh schedule and the HTTP server, and blocks until ctx is done
// or the listener fails.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("start refresher: %w", err)
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", srv.Addr, "mode", a.tracker.Mode())
		serveErr <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown", "error", err)
	}
	if err := a.refresher.Stop(shutdownCtx); err != nil {
		a.logger.Error("refresher shutdown", "error", err)
	}
	return runErr
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s>>1))
}
