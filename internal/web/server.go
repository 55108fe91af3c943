package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"benchdata/internal/benchmark"
	"benchdata/internal/metrics"
)

// Server serves the dataset read-only for dashboards.
type Server struct {
	store   benchmark.Store
	metrics *metrics.Metrics
	port    int

	// AlertThreshold decides which newly seen entries count as alerts.
	AlertThreshold float64

	mu      sync.RWMutex
	dataset *benchmark.Dataset
	loaded  time.Time
}

// NewServer creates a new web server. m may be nil.
func NewServer(store benchmark.Store, m *metrics.Metrics, port int) *Server {
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &Server{
		store:          store,
		metrics:        m,
		port:           port,
		AlertThreshold: benchmark.DefaultAlertThreshold,
	}
}

// Reload reads the dataset from the store into the cache. The previous
// dataset keeps being served when the load fails.
func (s *Server) Reload() error {
	d, err := s.store.Load()
	s.metrics.RecordReload(err)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.dataset
	s.dataset = d
	s.loaded = time.Now()
	s.mu.Unlock()

	s.metrics.ObserveDataset(d)
	if old != nil {
		s.recordAppends(old, d)
	}
	return nil
}

// recordAppends counts entries of d whose commit was not in old.
func (s *Server) recordAppends(old, d *benchmark.Dataset) {
	for _, suite := range d.Suites() {
		entries, _ := d.Entries.Get(suite)
		prev, _ := old.Entries.Get(suite)
		known := make(map[string]struct{}, len(prev))
		for _, e := range prev {
			known[e.Commit.ID] = struct{}{}
		}
		for i, e := range entries {
			if _, ok := known[e.Commit.ID]; ok {
				continue
			}
			var alerts []benchmark.Comparison
			if i > 0 {
				alerts = benchmark.Alerts(benchmark.Compare(entries[i-1], e), s.AlertThreshold)
			}
			s.metrics.RecordAppend(suite, alerts)
		}
	}
}

func (s *Server) current() *benchmark.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Handler returns the routes wrapped in request tracking.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /data.js", s.handleDataJS)
	mux.HandleFunc("GET /api/dataset", s.handleDataset)
	mux.HandleFunc("GET /api/suites", s.handleSuites)
	mux.HandleFunc("GET /api/suites/{suite}/entries", s.handleEntries)
	mux.HandleFunc("GET /api/suites/{suite}/series", s.handleSeries)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return s.metrics.RequestTrackingMiddleware(mux)
}

// Start loads the dataset and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Reload(); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	// Bind to localhost for security
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting dashboard server", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type suiteSummary struct {
	Name     string `json:"name"`
	Entries  int    `json:"entries"`
	LastDate int64  `json:"lastDate,omitempty"`
}

func (s *Server) handleDataJS(w http.ResponseWriter, r *http.Request) {
	d := s.current()
	if d == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	if err := benchmark.Encode(w, d); err != nil {
		slog.Error("failed to encode data.js", "error", err)
	}
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	d := s.current()
	if d == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := benchmark.EncodeJSON(w, d); err != nil {
		slog.Error("failed to encode dataset", "error", err)
	}
}

func (s *Server) handleSuites(w http.ResponseWriter, r *http.Request) {
	d := s.current()
	if d == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	suites := make([]suiteSummary, 0, d.Entries.Len())
	for _, name := range d.Suites() {
		entries, _ := d.Entries.Get(name)
		sum := suiteSummary{Name: name, Entries: len(entries)}
		if len(entries) > 0 {
			sum.LastDate = entries[len(entries)-1].Date
		}
		suites = append(suites, sum)
	}
	writeJSON(w, suites)
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	d := s.current()
	if d == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := d.Suite(r.PathValue("suite"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if entries == nil {
		entries = []benchmark.Entry{}
	}
	writeJSON(w, entries)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	d := s.current()
	if d == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	bench := r.URL.Query().Get("bench")
	if bench == "" {
		http.Error(w, "bench query parameter is required", http.StatusBadRequest)
		return
	}

	points, err := d.Series(r.PathValue("suite"), bench)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if points == nil {
		points = []benchmark.Point{}
	}
	writeJSON(w, points)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded.IsZero() {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{
		"status":   "ok",
		"loadedAt": loaded.UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
