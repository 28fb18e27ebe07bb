// Package web is the presentation boundary: a 3-column HTML grid and a JSON API
// over the latest snapshot.
package web

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"LaunchTracker/internal/aggregate"
	"LaunchTracker/internal/config"
	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/infrastructure/feed"
	"LaunchTracker/internal/report"
	"LaunchTracker/internal/usecase"
)

const maxUploadBytes = 1 << 20

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"join": func(units []string) string { return strings.Join(units, ", ") },
}).Parse(indexHTML))

// Options is the explicit render configuration.
type Options struct {
	Title        string
	DefaultTiers []domain.Tier
	// MaxItems caps uploads sent without a limit parameter; zero keeps every item.
	MaxItems int
	// Location renders timestamps; nil means UTC.
	Location *time.Location
	Metrics  http.Handler
}

// Server serves the dashboard from a Board.
type Server struct {
	board  *usecase.Board
	opts   Options
	logger *slog.Logger
	mux    *http.ServeMux

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// NewServer registers all routes.
func NewServer(board *usecase.Board, opts Options, logger *slog.Logger) *Server {
	if len(opts.DefaultTiers) == 0 {
		opts.DefaultTiers = domain.AllTiers
	}
	if opts.Title == "" {
		opts.Title = "UAE Developer Launch Tracker"
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	seed := uint64(time.Now().UnixNano())
	s := &Server{
		board:  board,
		opts:   opts,
		logger: logger,
		mux:    http.NewServeMux(),
		rnd:    rand.New(rand.NewPCG(seed, seed>>1)),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/launches", s.handleLaunches)
	s.mux.HandleFunc("POST /api/parse", s.handleParse)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		s.mux.Handle("GET /metrics", opts.Metrics)
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type tierOption struct {
	Label    string
	Selected bool
}

type indexView struct {
	Title       string
	TierOptions []tierOption
	Records     []domain.LaunchRecord
	Warnings    []string
	Error       string
	Pending     bool
	Demo        bool
	GeneratedAt string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	selected, err := s.selectedTiers(r)
	view := indexView{Title: s.opts.Title}
	for _, t := range domain.AllTiers {
		view.TierOptions = append(view.TierOptions, tierOption{Label: t.String(), Selected: selected.Has(t)})
	}

	snap, boardErr := s.board.Current()
	switch {
	case err != nil:
		view.Error = err.Error()
	case boardErr != nil:
		view.Error = userMessage(boardErr)
	case snap == nil:
		view.Pending = true
	default:
		view.Records = aggregate.FilterByTier(snap.Records, selected)
		view.Warnings = snap.Warnings
		view.Demo = snap.Mode == config.ModeMock
		view.GeneratedAt = snap.GeneratedAt.In(s.opts.Location).Format(time.RFC1123)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, view); err != nil {
		s.logError("render index", err)
	}
}

type launchesResponse struct {
	RunID       string                `json:"runId"`
	Mode        string                `json:"mode"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Tiers       []domain.Tier         `json:"tiers"`
	Records     []domain.LaunchRecord `json:"records"`
	Warnings    []string              `json:"warnings,omitempty"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) handleLaunches(w http.ResponseWriter, r *http.Request) {
	selected, err := s.selectedTiers(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, &domain.ParseError{Source: "tier filter", Err: err})
		return
	}

	snap, boardErr := s.board.Current()
	if boardErr != nil {
		s.writeError(w, statusFor(boardErr), boardErr)
		return
	}
	if snap == nil {
		s.writeJSON(w, http.StatusAccepted, errorResponse{Kind: "pending", Message: "first collection still running"})
		return
	}

	s.writeJSON(w, http.StatusOK, launchesResponse{
		RunID:       snap.RunID,
		Mode:        snap.Mode,
		GeneratedAt: snap.GeneratedAt,
		Tiers:       selected.Sorted(),
		Records:     aggregate.FilterByTier(snap.Records, selected),
		Warnings:    snap.Warnings,
	})
}

type parseResponse struct {
	Limit   int                   `json:"limit,omitempty"`
	Records []domain.LaunchRecord `json:"records"`
}

// handleParse turns user-supplied feed XML into launch records. Optional developer and
// tier query parameters stamp the records through the aggregator; limit caps the items
// read and is echoed back.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	defer body.Close()

	limit := s.opts.MaxItems
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, &domain.ParseError{Source: "limit", Err: fmt.Errorf("invalid limit %q", raw)})
			return
		}
		limit = n
	}

	items, err := feed.ParseXML(body, limit)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.rndMu.Lock()
	records := make([]domain.LaunchRecord, 0, len(items))
	for _, item := range items {
		records = append(records, feed.BuildLaunch(item, domain.SourceUpload, s.rnd))
	}
	s.rndMu.Unlock()

	if name := strings.TrimSpace(r.URL.Query().Get("developer")); name != "" {
		tier, err := domain.ParseTier(r.URL.Query().Get("tier"))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, &domain.ParseError{Source: "tier", Err: err})
			return
		}
		dev := domain.Developer{Name: name, Tier: tier}
		records, err = aggregate.Aggregate([]domain.Developer{dev}, aggregate.Launches{name: records})
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, parseResponse{Limit: limit, Records: records})
}

func (s *Server) selectedTiers(r *http.Request) (aggregate.TierSet, error) {
	labels := r.URL.Query()["tier"]
	if len(labels) == 0 {
		return aggregate.NewTierSet(s.opts.DefaultTiers...), nil
	}
	return aggregate.ParseTierSet(labels)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logError("request failed", err)
	}
	s.writeJSON(w, status, errorResponse{Kind: report.Kind(err), Message: userMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logError("encode response", err)
	}
}

func (s *Server) logError(msg string, err error) {
	if s.logger != nil {
		s.logger.Error(msg, "error", err)
	}
}

func statusFor(err error) int {
	switch report.Kind(err) {
	case "roster_missing":
		return http.StatusServiceUnavailable
	case "schema":
		return http.StatusUnprocessableEntity
	case "parse":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	switch report.Kind(err) {
	case "roster_missing":
		return "Developer file missing: " + err.Error()
	case "schema":
		return "Developer table is unusable: " + err.Error()
	default:
		return err.Error()
	}
}
